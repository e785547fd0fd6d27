package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/c4board/c4board/internal/c4"
	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/repository"
)

// Service handles model operations.
type Service struct {
	models   Repository
	projects ProjectRepository
	logger   *slog.Logger
}

// NewService creates a new model service.
func NewService(models Repository, projects ProjectRepository, logger *slog.Logger) *Service {
	return &Service{models: models, projects: projects, logger: logger}
}

// CreateRequest defines model creation inputs. A nil Model defaults to an
// empty diagram.
type CreateRequest struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Model       *c4.Model `json:"model,omitempty"`
}

// UpdateRequest defines a partial model update. Nil fields are left
// untouched; at least one must be set.
type UpdateRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Model       *c4.Model `json:"model,omitempty"`
}

// IsEmpty reports whether the request patches nothing.
func (r UpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Model == nil
}

func validateName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("name is required"),
		validation.Length(1, 200),
	)
}

// Create creates a model inside a project.
func (s *Service) Create(ctx context.Context, projectID string, req CreateRequest) (*Detail, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("checking project: %w", err)
	}

	diagram := c4.Empty()
	if req.Model != nil {
		diagram = req.Model.Normalize()
	}

	now := time.Now().UTC()
	detail := &Detail{
		Summary: Summary{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Name:        req.Name,
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Model: diagram,
	}

	if err := s.models.Create(ctx, detail); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating model: %w", err)
	}

	return detail, nil
}

// Get fetches a model with its full diagram payload.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	detail, err := s.models.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("getting model: %w", err)
	}
	return detail, nil
}

// Update applies a partial update and returns the resulting detail.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Detail, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validateName(trimmed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		req.Name = &trimmed
	}

	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		detail.Name = *req.Name
	}
	if req.Description != nil {
		detail.Description = req.Description
	}
	if req.Model != nil {
		detail.Model = req.Model.Normalize()
	}
	detail.UpdatedAt = time.Now().UTC()

	if err := s.models.Update(ctx, detail); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("updating model: %w", err)
	}

	return detail, nil
}

// Delete removes a model.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.models.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrModelNotFound
		}
		return fmt.Errorf("deleting model: %w", err)
	}
	return nil
}

// List returns the model summaries for a project. An unknown project yields
// an empty listing rather than an error.
func (s *Service) List(ctx context.Context, projectID string) ([]Summary, error) {
	return s.models.ListByProject(ctx, projectID)
}
