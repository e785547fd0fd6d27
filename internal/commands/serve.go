package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c4board/c4board/internal/api"
	"github.com/c4board/c4board/internal/domain/backup"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/sqlite"
)

// Version is the CLI version reported by --version and to MCP clients.
const Version = "0.1.0"

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the c4board HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		db, services, err := openServices(logger)
		if err != nil {
			return err
		}
		defer db.Close()

		server := api.New(&cfg, services.projects, services.models, services.backups, logger)

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-stop:
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		return server.Shutdown(ctx)
	},
}

// services bundles the domain layer built over one database.
type services struct {
	projects *project.Service
	models   *model.Service
	backups  *backup.Service
}

// openServices opens the configured database, applies migrations and builds
// the domain services over it.
func openServices(logger *slog.Logger) (*sqlite.DB, services, error) {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, services{}, fmt.Errorf("preparing database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, services{}, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, services{}, fmt.Errorf("running migrations: %w", err)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	modelRepo := sqlite.NewModelRepository(db)
	backupRepo := sqlite.NewBackupRepository(db)

	return db, services{
		projects: project.NewService(projectRepo, logger),
		models:   model.NewService(modelRepo, projectRepo, logger),
		backups:  backup.NewService(projectRepo, modelRepo, backupRepo, db, logger),
	}, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
