package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/c4board/c4board/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateRequest defines project update inputs. Description replaces the
// stored value; omitting it clears the field.
type UpdateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func validateName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("name is required"),
		validation.Length(1, 200),
	)
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	proj := &Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Update replaces a project's name and description.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	proj.Name = req.Name
	proj.Description = req.Description
	proj.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return proj, nil
}

// Delete removes a project and, through the schema's cascade, its models.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// List returns all projects with their model counts.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}
