package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/wordle-duel/tokens"
)

// AuthMiddleware admits requests carrying a valid player token and stores
// its payload for the handler.
func (s *Server) AuthMiddleware(c *gin.Context) {
	payload, err := tokens.FromRequest(c, []byte(s.config.JWTSecret))

	switch {
	case errors.Is(err, tokens.ErrNoToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("invalid bearer token"))
		return
	}

	c.Set(authPayloadKey, payload)
	c.Next()
}
