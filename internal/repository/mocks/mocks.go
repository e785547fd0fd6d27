package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
)

// ProjectRepository is a testify mock satisfying project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ModelRepository is a testify mock satisfying model.Repository.
type ModelRepository struct {
	mock.Mock
}

func (m *ModelRepository) Create(ctx context.Context, detail *model.Detail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *ModelRepository) Get(ctx context.Context, id string) (*model.Detail, error) {
	args := m.Called(ctx, id)
	if detail, ok := args.Get(0).(*model.Detail); ok {
		return detail, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ModelRepository) Update(ctx context.Context, detail *model.Detail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *ModelRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ModelRepository) ListByProject(ctx context.Context, projectID string) ([]model.Summary, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]model.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ModelRepository) AllDetails(ctx context.Context) ([]model.Detail, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]model.Detail); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// BackupRepository is a testify mock satisfying the backup service interfaces.
type BackupRepository struct {
	mock.Mock
}

func (m *BackupRepository) ReplaceAll(ctx context.Context, projects []project.Project, models []model.Detail) error {
	args := m.Called(ctx, projects, models)
	return args.Error(0)
}
