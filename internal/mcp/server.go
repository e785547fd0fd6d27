// Package mcp exposes c4board's project and model operations as MCP tools,
// so an assistant can browse and edit architecture diagrams over stdio.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/c4board/c4board/internal/domain/backup"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
)

// Version is reported to MCP clients during the initialize handshake.
const Version = "0.1.0"

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
}

// ModelService defines model operations needed by MCP.
type ModelService interface {
	Create(ctx context.Context, projectID string, req model.CreateRequest) (*model.Detail, error)
	Get(ctx context.Context, id string) (*model.Detail, error)
	Update(ctx context.Context, id string, req model.UpdateRequest) (*model.Detail, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, projectID string) ([]model.Summary, error)
}

// BackupService defines the health surface needed by MCP.
type BackupService interface {
	Status(ctx context.Context) *backup.StatusReport
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Models   ModelService
	Backups  BackupService
}

// Config contains server configuration.
type Config struct {
	Services Services
	// AuthToken, when non-empty, is required as a bearer token on every
	// tool call. Empty disables auth (local single-user setups).
	AuthToken string
	Logger    *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "c4board",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	if cfg.AuthToken != "" {
		server.AddReceivingMiddleware(authMiddleware(cfg.AuthToken))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services))

	return server
}
