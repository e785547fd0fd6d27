package c4

// ViewLevel identifies which of the four C4 levels a diagram is showing.
type ViewLevel string

const (
	LevelSystem    ViewLevel = "system"
	LevelContainer ViewLevel = "container"
	LevelComponent ViewLevel = "component"
	LevelCode      ViewLevel = "code"
)

// Position is a block's placement on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Connection is a directed edge from the owning block to another block.
type Connection struct {
	TargetID      string `json:"targetId"`
	Label         string `json:"label,omitempty"`
	Technology    string `json:"technology,omitempty"`
	Bidirectional bool   `json:"bidirectional,omitempty"`
}

// SystemBlock is a top-level system.
type SystemBlock struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Technology  string       `json:"technology,omitempty"`
	Position    Position     `json:"position"`
	Connections []Connection `json:"connections"`
}

// ContainerBlock is a deployable unit inside a system.
type ContainerBlock struct {
	ID          string       `json:"id"`
	SystemID    string       `json:"systemId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Technology  string       `json:"technology,omitempty"`
	Position    Position     `json:"position"`
	Connections []Connection `json:"connections"`
}

// ComponentBlock is a structural element inside a container.
type ComponentBlock struct {
	ID          string       `json:"id"`
	ContainerID string       `json:"containerId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Technology  string       `json:"technology,omitempty"`
	Position    Position     `json:"position"`
	Connections []Connection `json:"connections"`
}

// CodeBlock is a code-level element inside a component.
type CodeBlock struct {
	ID          string       `json:"id"`
	ComponentID string       `json:"componentId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CodeType    string       `json:"codeType,omitempty"`
	Position    Position     `json:"position"`
	Connections []Connection `json:"connections"`
}

// Model is a complete diagram. Each level is a flat array and child blocks
// reference their parent by id; there is no nested tree to deep-copy on edit.
type Model struct {
	Systems           []SystemBlock    `json:"systems"`
	Containers        []ContainerBlock `json:"containers"`
	Components        []ComponentBlock `json:"components"`
	CodeElements      []CodeBlock      `json:"codeElements"`
	ViewLevel         ViewLevel        `json:"viewLevel"`
	ActiveSystemID    string           `json:"activeSystemId,omitempty"`
	ActiveContainerID string           `json:"activeContainerId,omitempty"`
	ActiveComponentID string           `json:"activeComponentId,omitempty"`
}

// Empty returns a blank model at the system level. Slices are non-nil so the
// model marshals with empty arrays rather than nulls.
func Empty() Model {
	return Model{
		Systems:      []SystemBlock{},
		Containers:   []ContainerBlock{},
		Components:   []ComponentBlock{},
		CodeElements: []CodeBlock{},
		ViewLevel:    LevelSystem,
	}
}

// IsEmpty reports whether the model has no blocks at any level.
func (m Model) IsEmpty() bool {
	return len(m.Systems) == 0 && len(m.Containers) == 0 &&
		len(m.Components) == 0 && len(m.CodeElements) == 0
}

// Clone returns a deep copy of the model.
func (m Model) Clone() Model {
	out := m
	out.Systems = make([]SystemBlock, len(m.Systems))
	for i, b := range m.Systems {
		b.Connections = cloneConnections(b.Connections)
		out.Systems[i] = b
	}
	out.Containers = make([]ContainerBlock, len(m.Containers))
	for i, b := range m.Containers {
		b.Connections = cloneConnections(b.Connections)
		out.Containers[i] = b
	}
	out.Components = make([]ComponentBlock, len(m.Components))
	for i, b := range m.Components {
		b.Connections = cloneConnections(b.Connections)
		out.Components[i] = b
	}
	out.CodeElements = make([]CodeBlock, len(m.CodeElements))
	for i, b := range m.CodeElements {
		b.Connections = cloneConnections(b.Connections)
		out.CodeElements[i] = b
	}
	return out
}

func cloneConnections(conns []Connection) []Connection {
	if conns == nil {
		return nil
	}
	out := make([]Connection, len(conns))
	copy(out, conns)
	return out
}

// Normalize fills nil slices with empty ones and defaults the view level.
// Payloads arriving over the wire may omit any of them.
func (m Model) Normalize() Model {
	if m.Systems == nil {
		m.Systems = []SystemBlock{}
	}
	if m.Containers == nil {
		m.Containers = []ContainerBlock{}
	}
	if m.Components == nil {
		m.Components = []ComponentBlock{}
	}
	if m.CodeElements == nil {
		m.CodeElements = []CodeBlock{}
	}
	if m.ViewLevel == "" {
		m.ViewLevel = LevelSystem
	}
	return m
}
