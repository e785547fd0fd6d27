package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `c4board stores hierarchical architecture diagrams as Projects → Models.

Core concepts:
- Project: a named container for diagram models; listings carry a derived modelCount.
- Model: one C4 diagram stored flat: independent systems/containers/components/codeElements
  arrays whose entries reference their parent by id. No nested trees.
- Summary vs detail: list_models returns summaries without the diagram payload; fetch the
  payload with get_model only when you need to read or edit it.

Rules of engagement:
1) Orient: list_projects, then list_models for the project you care about.
2) Read before writing: get_model returns the full diagram; update_model replaces whatever
   fields you send, so send the complete diagram back when editing it.
3) Keep parent references consistent: a container's systemId, a component's containerId and a
   code element's componentId must name an existing block in the same diagram.
4) delete_model is permanent; there is no undo.

Docs (progressive disclosure):
- c4board://docs/index (what to read when)
- c4board://docs/diagram-format (the flat C4 payload, field by field)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "c4board://docs/index",
		Name:        "docs_index",
		Title:       "c4board docs index",
		Description: "Entry point for agent-facing docs: what exists and what to read.",
		Content: `# c4board: Agent Docs Index

Keep your baseline context small and load deeper docs only when needed.

## Quick start (no deep docs)

1. list_projects → pick or create_project
2. list_models → pick or create_model
3. get_model → read the diagram
4. update_model → write it back (full diagram, not a patch)

## When to read more

- You are about to edit a diagram payload → read c4board://docs/diagram-format first.
- get_status reports db.status "down" → the server's database is unreachable; retrying
  tool calls will not help until it recovers.

## Known limitations

- No undo: delete_model and update_model are immediate and permanent.
- Single-writer: the server assumes one active editor per model; concurrent edits from a
  human session and an agent session can overwrite each other.
`,
	},
	{
		URI:         "c4board://docs/diagram-format",
		Name:        "docs_diagram_format",
		Title:       "Flat C4 diagram format",
		Description: "Field-by-field reference for the model payload accepted by create_model and update_model.",
		Content: `# Flat C4 diagram format

A diagram is four flat arrays plus the view state:

    {
      "systems":      [SystemBlock...],
      "containers":   [ContainerBlock...],
      "components":   [ComponentBlock...],
      "codeElements": [CodeBlock...],
      "viewLevel":    "system" | "container" | "component" | "code",
      "activeSystemId":    "optional id",
      "activeContainerId": "optional id",
      "activeComponentId": "optional id"
    }

Every block has: id, name, optional description and technology, a position
{x, y}, and a connections array. Connections are {targetId, label?, technology?,
bidirectional?} and must point at a block on the same level.

Parent references (all required, all by id):

- ContainerBlock.systemId → a SystemBlock
- ComponentBlock.containerId → a ContainerBlock
- CodeBlock.componentId → a ComponentBlock; CodeBlock also carries codeType
  (class, interface, function, ...)

Children are NOT nested inside parents. To add a container to a system, append
to the top-level containers array with systemId set. An empty diagram is all
four arrays empty with viewLevel "system".
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
