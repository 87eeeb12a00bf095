package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/judgegodwins/wordle-duel/session"
	"github.com/judgegodwins/wordle-duel/tokens"
	"github.com/rs/zerolog/log"
)

const inspectTimeout = 2 * time.Second

type usernameRequest struct {
	Username string `json:"username" binding:"required,max=32"`
}

// Generates a token using the username passed as request body
func (s *Server) TokenGenerator(c *gin.Context) {
	var data usernameRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	payload := tokens.Payload{
		ID:       uuid.NewString(),
		Username: data.Username,
	}

	token, err := tokens.NewJWTToken(payload, []byte(s.config.JWTSecret), tokens.DefaultTTL)

	if err != nil {
		log.Error().Err(err).Msg("cannot sign token")
		c.JSON(http.StatusInternalServerError, errorResponse(internalErrorMessage))
		return
	}

	c.JSON(http.StatusOK, successResponse("Auth data", authData{
		ID:       payload.ID,
		Username: payload.Username,
		Token:    token,
	}))
}

func (s *Server) GetTokenData(c *gin.Context) {
	payload, ok := authPayload(c)

	if !ok {
		log.Error().Msg("value in auth_payload key of request context could not be casted to *tokens.Payload")
		c.JSON(http.StatusInternalServerError, errorResponse(internalErrorMessage))
		return
	}

	c.JSON(http.StatusOK, successResponse("success", payload))
}

type checkRoomRequest struct {
	Code string `uri:"code" binding:"required"`
}

func (s *Server) CheckRoom(c *gin.Context) {
	var data checkRoomRequest

	if err := c.ShouldBindUri(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), inspectTimeout)
	defer cancel()

	info, err := s.coordinator.Inspect(ctx, data.Code)

	switch {
	case errors.Is(err, session.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, errorResponse("room not found"))
		return
	case err != nil:
		log.Error().Err(err).Str("room", data.Code).Msg("error inspecting room")
		c.JSON(http.StatusInternalServerError, errorResponse(internalErrorMessage))
		return
	}

	c.JSON(http.StatusOK, successResponse("room data", info))
}
