package backup

import (
	"context"

	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
)

// ProjectLister lists every project for export.
type ProjectLister interface {
	List(ctx context.Context) ([]project.Project, error)
}

// ModelExporter lists every model at full detail for export.
type ModelExporter interface {
	AllDetails(ctx context.Context) ([]model.Detail, error)
}

// Restorer atomically replaces all stored projects and models.
type Restorer interface {
	ReplaceAll(ctx context.Context, projects []project.Project, models []model.Detail) error
}

// Pinger checks database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
