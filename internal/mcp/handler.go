package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
)

// Handler dispatches MCP tool calls to domain services.
type Handler struct {
	projects ProjectService
	models   ModelService
	backups  BackupService
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services) *Handler {
	return &Handler{
		projects: services.Projects,
		models:   services.Models,
		backups:  services.Backups,
	}
}

// Handle dispatches a tool call to the matching domain service.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_projects":
		projects, err := h.projects.List(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return projects, nil
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		created, err := h.projects.Create(ctx, project.CreateRequest{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return created, nil
	case "get_project":
		var req GetProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.projects.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "list_models":
		var req ListModelsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		summaries, err := h.models.List(ctx, req.ProjectID)
		if err != nil {
			return nil, mapError(err)
		}
		return summaries, nil
	case "create_model":
		var req CreateModelParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		created, err := h.models.Create(ctx, req.ProjectID, model.CreateRequest{
			Name:        req.Name,
			Description: req.Description,
			Model:       req.Model,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return created, nil
	case "get_model":
		var req GetModelParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		detail, err := h.models.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return detail, nil
	case "update_model":
		var req UpdateModelParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		updated, err := h.models.Update(ctx, req.ID, model.UpdateRequest{
			Name:        req.Name,
			Description: req.Description,
			Model:       req.Model,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return updated, nil
	case "delete_model":
		var req DeleteModelParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.models.Delete(ctx, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResult{Deleted: true, ID: req.ID}, nil
	case "get_status":
		return h.backups.Status(ctx), nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
