package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/c4board/c4board/internal/domain/backup"
)

// ExportBackup downloads a full archive of the server's data.
func (c *Client) ExportBackup(ctx context.Context) (*backup.Archive, error) {
	var archive backup.Archive
	if err := c.do(ctx, http.MethodGet, "/api/backup", nil, &archive); err != nil {
		return nil, err
	}
	return &archive, nil
}

// Restore replaces the server's data with the archive's contents.
func (c *Client) Restore(ctx context.Context, archive backup.Archive) (*backup.RestoreResult, error) {
	var result backup.RestoreResult
	if err := c.do(ctx, http.MethodPost, "/api/restore", archive, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status fetches the server's health report. The server answers 503 when the
// database is unreachable but still sends a report body, so that case is
// decoded rather than treated as an error.
func (c *Client) Status(ctx context.Context) (*backup.StatusReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/status", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request GET /api/status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, newAPIError(resp)
	}

	var report backup.StatusReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &report, nil
}
