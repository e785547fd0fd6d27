package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/c4board/c4board/internal/domain/project"
)

// ListProjects fetches all projects with their model counts.
func (c *Client) ListProjects(ctx context.Context) ([]project.Project, error) {
	var projects []project.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	var created project.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject replaces a project's name and description.
func (c *Client) UpdateProject(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error) {
	var updated project.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%s", id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject deletes a project and all of its models.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%s", id), nil, nil)
}
