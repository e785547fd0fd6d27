// Package testserver boots a complete c4board API server over an in-memory
// database for cross-package tests.
package testserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c4board/c4board/internal/api"
	"github.com/c4board/c4board/internal/client"
	"github.com/c4board/c4board/internal/config"
	"github.com/c4board/c4board/internal/domain/backup"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/sqlite"
)

// TestServer is a running API server plus handles on its internals.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Projects *project.Service
	Models   *model.Service
	Backups  *backup.Service
}

// New starts a server backed by a shared-cache in-memory database named after
// the test, so parallel tests never see each other's data.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.DiscardHandler)

	projectRepo := sqlite.NewProjectRepository(db)
	modelRepo := sqlite.NewModelRepository(db)
	backupRepo := sqlite.NewBackupRepository(db)

	projects := project.NewService(projectRepo, logger)
	models := model.NewService(modelRepo, projectRepo, logger)
	backups := backup.NewService(projectRepo, modelRepo, backupRepo, db, logger)

	cfg := &config.Config{}
	apiServer := api.New(cfg, projects, models, backups, logger)
	server := httptest.NewServer(apiServer)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Projects: projects,
		Models:   models,
		Backups:  backups,
	}
}

// Client returns an API client pointed at the server.
func (ts *TestServer) Client(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.New(ts.Server.URL)
	require.NoError(t, err)
	return c
}

// ClientWithHTTP returns an API client that issues requests through the given
// http.Client, so tests can interpose transports.
func (ts *TestServer) ClientWithHTTP(t *testing.T, httpClient *http.Client) *client.Client {
	t.Helper()
	c, err := client.NewWithHTTPClient(ts.Server.URL, httpClient)
	require.NoError(t, err)
	return c
}
