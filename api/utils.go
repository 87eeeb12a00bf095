package api

import (
	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/wordle-duel/tokens"
)

const internalErrorMessage = "Something went wrong!"

const authPayloadKey = "auth_payload"

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// successBody wraps every 2xx answer so clients can read data the same way
// on each endpoint.
type successBody[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type authData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func errorResponse(msg string) errorBody {
	return errorBody{Status: "error", Message: msg}
}

func successResponse[T any](msg string, data T) successBody[T] {
	return successBody[T]{Status: "success", Message: msg, Data: data}
}

// authPayload returns what AuthMiddleware stored for this request.
func authPayload(c *gin.Context) (*tokens.Payload, bool) {
	v, ok := c.Get(authPayloadKey)
	if !ok {
		return nil, false
	}

	payload, ok := v.(*tokens.Payload)
	return payload, ok
}
