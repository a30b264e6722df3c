package n8n

// Workflow is an n8n workflow definition as returned by the REST API.
type Workflow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Active      bool           `json:"active"`
	Nodes       []Node         `json:"nodes"`
	Connections Connections    `json:"connections"`
	Settings    map[string]any `json:"settings,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	UpdatedAt   string         `json:"updatedAt,omitempty"`
}

// Node is a single step in a workflow.
type Node struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	TypeVersion float64        `json:"typeVersion,omitempty"`
	Position    [2]float64     `json:"position"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
}

// Connections maps a source node name to its outgoing links, grouped
// by connection type ("main", "ai_tool", ...). The outer slice index
// is the source output port; the inner slice lists that port's
// targets.
type Connections map[string]map[string][][]Link

// Link is one edge in the workflow graph. Node is the target node's
// name, Index the target input port.
type Link struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// workflowList is the envelope n8n wraps list responses in.
type workflowList struct {
	Data []Workflow `json:"data"`
}
