// Package api provides the HTTP API server for c4board. It exposes the
// project/model CRUD, backup/restore and health endpoints consumed by the
// diagram editor and the admin CLI.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/c4board/c4board/internal/config"
	"github.com/c4board/c4board/internal/domain/backup"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
)

// Server represents the c4board API server.
type Server struct {
	echo     *echo.Echo
	projects *project.Service
	models   *model.Service
	backups  *backup.Service
	config   *config.Config
	logger   *slog.Logger
}

// New creates a new API server instance.
func New(cfg *config.Config, projects *project.Service, models *model.Service, backups *backup.Service, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler(logger)

	server := &Server{
		echo:     e,
		projects: projects,
		models:   models,
		backups:  backups,
		config:   cfg,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	s.echo.Use(middleware.RequestID())

	if s.config.Server.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Server.RateLimit),
		)))
	}
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	apiGroup := s.echo.Group("/api")

	apiGroup.GET("/projects", s.listProjects)
	apiGroup.POST("/projects", s.createProject)
	apiGroup.PUT("/projects/:id", s.updateProject)
	apiGroup.DELETE("/projects/:id", s.deleteProject)

	apiGroup.GET("/projects/:id/models", s.listModels)
	apiGroup.POST("/projects/:id/models", s.createModel)
	apiGroup.GET("/models/:id", s.getModel)
	apiGroup.PUT("/models/:id", s.updateModel)
	apiGroup.DELETE("/models/:id", s.deleteModel)

	apiGroup.GET("/backup", s.exportBackup)
	apiGroup.POST("/restore", s.restoreBackup)
	apiGroup.GET("/status", s.status)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("starting API server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}

// ServeHTTP allows Server to implement http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
