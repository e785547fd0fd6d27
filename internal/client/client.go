// Package client provides a typed HTTP client for the c4board API. The
// workspace controller, sync engine and admin CLI commands all talk to the
// server through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every API request issued by the client.
const DefaultTimeout = 30 * time.Second

// Client talks to a running c4board server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given API base URL.
func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// NewWithHTTPClient creates a client that issues requests through the given
// http.Client. Useful for custom timeouts and tests.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	c, err := New(baseURL)
	if err != nil {
		return nil, err
	}
	c.httpClient = httpClient
	return c, nil
}

// do issues one API request. A non-nil body is sent as JSON and a non-nil out
// receives the decoded response. Failure statuses become an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
