package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/repository"
	"github.com/c4board/c4board/internal/repository/mocks"
)

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil)

	_, err := svc.Create(ctx, project.CreateRequest{Name: ""})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_CreateAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	desc := "payments platform"
	proj, err := svc.Create(ctx, project.CreateRequest{Name: "Core", Description: &desc})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "Core", proj.Name)
	require.Equal(t, &desc, proj.Description)
	require.False(t, proj.CreatedAt.IsZero())
	require.Equal(t, proj.CreatedAt, proj.UpdatedAt)
	require.Zero(t, proj.ModelCount)
}

func TestProjectService_UpdateUnknownProject(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	_, err := svc.Update(ctx, "missing", project.UpdateRequest{Name: "Renamed"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_UpdateReplacesDescription(t *testing.T) {
	ctx := context.Background()

	old := "old text"
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", Name: "Core", Description: &old}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Update(ctx, "p1", project.UpdateRequest{Name: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, "Renamed", proj.Name)
	require.Nil(t, proj.Description)
}

func TestProjectService_DeleteUnknownProject(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Delete", ctx, "missing").Return(repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	err := svc.Delete(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}
