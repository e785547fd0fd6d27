package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/c4board/c4board/internal/config"
	"github.com/c4board/c4board/internal/domain/backup"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/sqlite"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newTestServer wires a full server over an in-memory database.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	logger := discardLogger()
	projectRepo := sqlite.NewProjectRepository(db)
	modelRepo := sqlite.NewModelRepository(db)
	backupRepo := sqlite.NewBackupRepository(db)

	projects := project.NewService(projectRepo, logger)
	models := model.NewService(modelRepo, projectRepo, logger)
	backups := backup.NewService(projectRepo, modelRepo, backupRepo, db, logger)

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	return New(cfg, projects, models, backups, logger)
}

// doJSON performs a request against the server with an optional JSON body.
func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

func TestStatusOK(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decodeJSON[backup.StatusReport](t, rec)
	require.Equal(t, backup.StatusOK, report.DB.Status)
	require.Empty(t, report.DB.Error)
}

func TestStatusDatabaseDown(t *testing.T) {
	s := newTestServer(t)
	s.backups = backup.NewService(nil, nil, nil, failingPinger{}, discardLogger())

	rec := doJSON(t, s, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	report := decodeJSON[backup.StatusReport](t, rec)
	require.Equal(t, backup.StatusDown, report.DB.Status)
	require.Contains(t, report.DB.Error, "connection refused")
}

func TestUnknownRouteReturnsErrorBody(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeJSON[ErrorResponse](t, rec)
	require.NotEmpty(t, body.Error)
}
