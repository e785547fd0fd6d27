package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/c4board/c4board/internal/c4"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/repository"
	"github.com/c4board/c4board/internal/repository/mocks"
)

func TestModelService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	svc := model.NewService(&mocks.ModelRepository{}, &mocks.ProjectRepository{}, nil)
	_, err := svc.Create(ctx, "p1", model.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestModelService_CreateUnknownProject(t *testing.T) {
	ctx := context.Background()

	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := model.NewService(&mocks.ModelRepository{}, projects, nil)
	_, err := svc.Create(ctx, "missing", model.CreateRequest{Name: "System View"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestModelService_CreateDefaultsToEmptyDiagram(t *testing.T) {
	ctx := context.Background()

	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", Name: "Core"}, nil)
	models := &mocks.ModelRepository{}
	models.On("Create", ctx, mock.Anything).Return(nil)

	svc := model.NewService(models, projects, nil)
	detail, err := svc.Create(ctx, "p1", model.CreateRequest{Name: "System View"})
	require.NoError(t, err)
	require.NotEmpty(t, detail.ID)
	require.Equal(t, "p1", detail.ProjectID)
	require.True(t, detail.Model.IsEmpty())
	require.Equal(t, c4.LevelSystem, detail.Model.ViewLevel)
}

func TestModelService_UpdateRequiresAField(t *testing.T) {
	ctx := context.Background()

	svc := model.NewService(&mocks.ModelRepository{}, &mocks.ProjectRepository{}, nil)
	_, err := svc.Update(ctx, "m1", model.UpdateRequest{})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestModelService_UpdatePartial(t *testing.T) {
	ctx := context.Background()

	desc := "context diagram"
	existing := &model.Detail{
		Summary: model.Summary{ID: "m1", ProjectID: "p1", Name: "Old", Description: &desc},
		Model:   c4.Empty(),
	}
	models := &mocks.ModelRepository{}
	models.On("Get", ctx, "m1").Return(existing, nil)
	models.On("Update", ctx, mock.Anything).Return(nil)

	svc := model.NewService(models, &mocks.ProjectRepository{}, nil)
	name := "System View"
	detail, err := svc.Update(ctx, "m1", model.UpdateRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "System View", detail.Name)
	require.Equal(t, &desc, detail.Description, "untouched fields survive")
}

func TestModelService_GetUnknownModel(t *testing.T) {
	ctx := context.Background()

	models := &mocks.ModelRepository{}
	models.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := model.NewService(models, &mocks.ProjectRepository{}, nil)
	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, model.ErrModelNotFound)
}
