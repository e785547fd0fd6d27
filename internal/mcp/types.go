package mcp

import "github.com/c4board/c4board/internal/c4"

type CreateProjectParams struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type GetProjectParams struct {
	ID string `json:"id"`
}

type ListModelsParams struct {
	ProjectID string `json:"project_id"`
}

type CreateModelParams struct {
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Model       *c4.Model `json:"model,omitempty"`
}

type GetModelParams struct {
	ID string `json:"id"`
}

type UpdateModelParams struct {
	ID          string    `json:"id"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Model       *c4.Model `json:"model,omitempty"`
}

type DeleteModelParams struct {
	ID string `json:"id"`
}

// DeleteResult acknowledges a successful delete, which otherwise has no body.
type DeleteResult struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
