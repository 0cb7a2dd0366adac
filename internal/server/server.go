package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaki95/songripper/config"
	"github.com/jaki95/songripper/internal/render"
	"github.com/jaki95/songripper/internal/storage"
)

// Server serves the staging page and the fragments it swaps in
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	store  storage.Storage
}

// New creates a new HTTP server instance
func New(cfg *config.Config, store storage.Storage) *Server {
	server := &Server{
		cfg:   cfg,
		store: store,
	}
	server.router = gin.Default()
	server.setupRoutes(server.router)
	return server
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(render.Templates())
	router.Use(noCache())

	router.GET("/health", s.health)

	router.GET("/", s.index)
	router.GET("/staging", s.staging)
	router.POST("/delete", s.deleteStaging)

	router.GET(render.EditPath, s.editForm)
	router.PUT(render.EditPath, s.editTrack)
	router.POST("/bulk-edit", s.bulkEdit)
}

// Handler returns the server's http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(port string) error {
	slog.Info("Starting staging server", "port", port, "storage", s.cfg.Storage.Type)
	return s.router.Run(":" + port)
}
