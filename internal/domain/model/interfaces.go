package model

import (
	"context"

	"github.com/c4board/c4board/internal/domain/project"
)

// Repository provides persistence for models.
type Repository interface {
	Create(ctx context.Context, detail *Detail) error
	Get(ctx context.Context, id string) (*Detail, error)
	Update(ctx context.Context, detail *Detail) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]Summary, error)
}

// ProjectRepository is the slice of project persistence the model service
// needs to verify a parent project exists.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}
