package tokens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrNoToken = errors.New("no token in request")

type tokenQuery struct {
	Token string `form:"token"`
}

// FromRequest reads a player token from the Authorization bearer header or,
// for websocket clients that cannot set headers, the token query parameter.
// ErrNoToken means the request carried neither.
func FromRequest(c *gin.Context, secret []byte) (*Payload, error) {
	raw, err := rawToken(c)
	if err != nil {
		return nil, err
	}

	return ParseJWTToken(raw, secret)
}

func rawToken(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		fields := strings.Fields(header)

		if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
			return "", fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
		}

		return fields[1], nil
	}

	var query tokenQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if query.Token == "" {
		return "", ErrNoToken
	}

	return query.Token, nil
}
