package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/wordle-duel/session"
	"github.com/judgegodwins/wordle-duel/util"
	"github.com/judgegodwins/wordle-duel/ws"
	"github.com/rs/cors"
)

type Server struct {
	config      *util.Config
	wsManager   *ws.Manager
	coordinator *session.Coordinator
	router      *gin.Engine
}

func NewServer(config *util.Config, wsManager *ws.Manager) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		config:      config,
		wsManager:   wsManager,
		coordinator: wsManager.Coordinator(),
		router:      router,
	}

	router.GET("/ws", server.wsManager.ServeWS)
	router.POST("/auth/username", server.TokenGenerator)
	router.GET("/auth/me", server.AuthMiddleware, server.GetTokenData)
	router.GET("/rooms/:code", server.CheckRoom)

	return server
}

// Handler is the router wrapped in the CORS policy.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(s.router)
}

func (s *Server) Start() error {
	return http.ListenAndServe(fmt.Sprintf(":%v", s.config.Port), s.Handler())
}
