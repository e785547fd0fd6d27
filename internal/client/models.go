package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/c4board/c4board/internal/domain/model"
)

// ListModels fetches the model summaries of one project.
func (c *Client) ListModels(ctx context.Context, projectID string) ([]model.Summary, error) {
	var summaries []model.Summary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%s/models", projectID), nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// CreateModel creates a model inside a project.
func (c *Client) CreateModel(ctx context.Context, projectID string, req model.CreateRequest) (*model.Detail, error) {
	var created model.Detail
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/projects/%s/models", projectID), req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetModel fetches one model with its full diagram payload.
func (c *Client) GetModel(ctx context.Context, id string) (*model.Detail, error) {
	var detail model.Detail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/models/%s", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateModel applies a partial update to a model.
func (c *Client) UpdateModel(ctx context.Context, id string, req model.UpdateRequest) (*model.Detail, error) {
	var updated model.Detail
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/models/%s", id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteModel deletes a model.
func (c *Client) DeleteModel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/models/%s", id), nil, nil)
}
