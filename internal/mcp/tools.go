package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// diagramSchema is the shared schema fragment for a flat C4 diagram payload.
func diagramSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Flat C4 diagram: systems, containers, components and codeElements arrays with parent references by id, plus viewLevel",
	}
}

// buildToolCatalog returns all available MCP tools.
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Projects
		{
			Name:        "list_projects",
			Description: "List all projects with their model counts",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "create_project",
			Description: "Create a new project to group diagram models",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Project display name",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Project description",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "get_project",
			Description: "Get details for a specific project",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Project ID",
					},
				},
				"required": []string{"id"},
			},
		},

		// Models
		{
			Name:        "list_models",
			Description: "List the diagram models of a project (summaries, no diagram payload)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID",
					},
				},
				"required": []string{"project_id"},
			},
		},
		{
			Name:        "create_model",
			Description: "Create a diagram model inside a project; the diagram defaults to empty",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID the model belongs to",
					},
					"name": map[string]any{
						"type":        "string",
						"description": "Model display name",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Model description",
					},
					"model": diagramSchema(),
				},
				"required": []string{"project_id", "name"},
			},
		},
		{
			Name:        "get_model",
			Description: "Get a model with its full diagram payload",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Model ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "update_model",
			Description: "Update a model's name, description or diagram; omitted fields are left untouched",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Model ID",
					},
					"name": map[string]any{
						"type":        "string",
						"description": "New model name",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "New model description",
					},
					"model": diagramSchema(),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "delete_model",
			Description: "Delete a model",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Model ID",
					},
				},
				"required": []string{"id"},
			},
		},

		// Health
		{
			Name:        "get_status",
			Description: "Check server health and database latency",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// registerTools registers the catalog against the SDK server, bridging each
// call into the dispatch handler.
func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, def := range buildToolCatalog() {
		def := def

		schema, err := toolSchema(def)
		if err != nil {
			panic(fmt.Sprintf("invalid schema for tool %s: %v", def.Name, err))
		}

		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: schema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil && req.Params.Arguments != nil {
				raw, err := json.Marshal(req.Params.Arguments)
				if err != nil {
					return nil, fmt.Errorf("invalid arguments: %w", err)
				}
				args = raw
			}

			result, err := handler.Handle(ctx, def.Name, args)
			if err != nil {
				return toolError(err)
			}

			data, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("marshal result: %w", err)
			}
			return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
			}, nil
		})
	}
}

// toolSchema converts a catalog schema into the SDK's schema type.
func toolSchema(def ToolDefinition) (*jsonschema.Schema, error) {
	data, err := json.Marshal(def.InputSchema)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// toolError renders a domain failure as a structured in-band tool result, so
// the assistant can read the code and recovery hint instead of a bare string.
func toolError(err error) (*sdkmcp.CallToolResult, error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, marshalErr := json.Marshal(apiErr)
	if marshalErr != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}
