package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c4board/c4board/internal/c4"
	"github.com/c4board/c4board/internal/client"
	"github.com/c4board/c4board/internal/domain/backup"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
)

// recordingServer captures the last request and plays back a canned response.
type recordingServer struct {
	method string
	path   string
	body   []byte

	status  int
	payload any
}

func newRecordingServer(t *testing.T, status int, payload any) (*recordingServer, *client.Client) {
	t.Helper()

	rs := &recordingServer{status: status, payload: payload}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.method = r.Method
		rs.path = r.URL.Path
		rs.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rs.status)
		if rs.payload != nil {
			_ = json.NewEncoder(w).Encode(rs.payload)
		}
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	require.NoError(t, err)
	return rs, c
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := client.New("")
	require.Error(t, err)
}

func TestListProjects(t *testing.T) {
	desc := "with description"
	rs, c := newRecordingServer(t, http.StatusOK, []project.Project{
		{ID: "p1", Name: "First", Description: &desc, ModelCount: 2},
	})

	projects, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, rs.method)
	require.Equal(t, "/api/projects", rs.path)
	require.Len(t, projects, 1)
	require.Equal(t, "First", projects[0].Name)
	require.Equal(t, 2, projects[0].ModelCount)
}

func TestCreateProjectSendsBody(t *testing.T) {
	rs, c := newRecordingServer(t, http.StatusCreated, project.Project{ID: "p1", Name: "New"})

	created, err := c.CreateProject(context.Background(), project.CreateRequest{Name: "New"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, rs.method)
	require.Equal(t, "/api/projects", rs.path)
	require.JSONEq(t, `{"name":"New"}`, string(rs.body))
	require.Equal(t, "p1", created.ID)
}

func TestUpdateProjectPath(t *testing.T) {
	rs, c := newRecordingServer(t, http.StatusOK, project.Project{ID: "p1", Name: "Renamed"})

	_, err := c.UpdateProject(context.Background(), "p1", project.UpdateRequest{Name: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, rs.method)
	require.Equal(t, "/api/projects/p1", rs.path)
}

func TestDeleteProjectNoContent(t *testing.T) {
	rs, c := newRecordingServer(t, http.StatusNoContent, nil)

	require.NoError(t, c.DeleteProject(context.Background(), "p1"))
	require.Equal(t, http.MethodDelete, rs.method)
	require.Equal(t, "/api/projects/p1", rs.path)
}

func TestModelEndpointPaths(t *testing.T) {
	detail := model.Detail{
		Summary: model.Summary{ID: "m1", ProjectID: "p1", Name: "View"},
		Model:   c4.Empty(),
	}

	rs, c := newRecordingServer(t, http.StatusOK, []model.Summary{detail.Summary})
	_, err := c.ListModels(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "/api/projects/p1/models", rs.path)

	rs, c = newRecordingServer(t, http.StatusCreated, detail)
	created, err := c.CreateModel(context.Background(), "p1", model.CreateRequest{Name: "View"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, rs.method)
	require.Equal(t, "/api/projects/p1/models", rs.path)
	require.NotNil(t, created.Model.Systems)

	rs, c = newRecordingServer(t, http.StatusOK, detail)
	_, err = c.GetModel(context.Background(), "m1")
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, rs.method)
	require.Equal(t, "/api/models/m1", rs.path)

	rs, c = newRecordingServer(t, http.StatusOK, detail)
	name := "Renamed"
	_, err = c.UpdateModel(context.Background(), "m1", model.UpdateRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, rs.method)
	require.Equal(t, "/api/models/m1", rs.path)
	require.JSONEq(t, `{"name":"Renamed"}`, string(rs.body))

	rs, c = newRecordingServer(t, http.StatusNoContent, nil)
	require.NoError(t, c.DeleteModel(context.Background(), "m1"))
	require.Equal(t, http.MethodDelete, rs.method)
	require.Equal(t, "/api/models/m1", rs.path)
}

func TestNotFoundBecomesAPIError(t *testing.T) {
	_, c := newRecordingServer(t, http.StatusNotFound, map[string]string{"error": "model not found"})

	_, err := c.GetModel(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, client.IsNotFound(err))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "model not found", apiErr.Message)
}

func TestErrorMessageFallsBackToStatusText(t *testing.T) {
	_, c := newRecordingServer(t, http.StatusInternalServerError, nil)

	_, err := c.ListProjects(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "Internal Server Error", apiErr.Message)
	require.False(t, client.IsNotFound(err))
}

func TestBackupRoundTrip(t *testing.T) {
	archive := backup.Archive{
		BackupVersion: backup.Version,
		Projects:      []project.Project{{ID: "p1", Name: "Core"}},
		Models:        []model.Detail{},
	}

	rs, c := newRecordingServer(t, http.StatusOK, archive)
	got, err := c.ExportBackup(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/api/backup", rs.path)
	require.Equal(t, backup.Version, got.BackupVersion)

	rs, c = newRecordingServer(t, http.StatusOK, backup.RestoreResult{Status: backup.StatusOK, Projects: 1})
	result, err := c.Restore(context.Background(), archive)
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, rs.method)
	require.Equal(t, "/api/restore", rs.path)
	require.Equal(t, 1, result.Projects)
}

func TestStatusDecodesDegradedReport(t *testing.T) {
	_, c := newRecordingServer(t, http.StatusServiceUnavailable, backup.StatusReport{
		DB: backup.DBStatus{Status: backup.StatusDown, Error: "disk gone"},
	})

	report, err := c.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, backup.StatusDown, report.DB.Status)
	require.Equal(t, "disk gone", report.DB.Error)
}

func TestStatusHealthy(t *testing.T) {
	rs, c := newRecordingServer(t, http.StatusOK, backup.StatusReport{
		DB: backup.DBStatus{Status: backup.StatusOK, LatencyMs: 3},
	})

	report, err := c.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/api/status", rs.path)
	require.Equal(t, backup.StatusOK, report.DB.Status)
}
