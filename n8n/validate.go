package n8n

import (
	"fmt"
	"sort"
)

// Validation summarizes structural checks on a workflow.
type Validation struct {
	Valid           bool     `json:"valid"`
	Issues          []string `json:"issues"`
	NodeCount       int      `json:"node_count"`
	ConnectionCount int      `json:"connection_count"`
}

// Validate checks the workflow for structural problems: missing
// required fields, nodes without IDs, and duplicate node IDs. Graph
// consistency is checked separately by [Workflow.BrokenConnections].
func (w *Workflow) Validate() Validation {
	var issues []string

	if w.Name == "" {
		issues = append(issues, "missing required field: name")
	}
	if w.Nodes == nil {
		issues = append(issues, "missing required field: nodes")
	}
	if w.Connections == nil {
		issues = append(issues, "missing required field: connections")
	}

	seen := make(map[string]bool, len(w.Nodes))
	dup := make(map[string]bool)
	withoutID := 0
	for _, n := range w.Nodes {
		if n.ID == "" {
			withoutID++
			continue
		}
		if seen[n.ID] && !dup[n.ID] {
			dup[n.ID] = true
			issues = append(issues, fmt.Sprintf("duplicate node ID: %s", n.ID))
		}
		seen[n.ID] = true
	}
	if withoutID > 0 {
		issues = append(issues, fmt.Sprintf("%d node(s) without an ID", withoutID))
	}

	return Validation{
		Valid:           len(issues) == 0,
		Issues:          issues,
		NodeCount:       len(w.Nodes),
		ConnectionCount: len(w.Connections),
	}
}

// BrokenConnections returns a description of every edge that
// references a node not present in the workflow. Connections identify
// nodes by name in the n8n wire format, so lookups are by Node.Name.
func (w *Workflow) BrokenConnections() []string {
	names := make(map[string]bool, len(w.Nodes))
	for _, n := range w.Nodes {
		names[n.Name] = true
	}

	sources := make([]string, 0, len(w.Connections))
	for source := range w.Connections {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var issues []string
	for _, source := range sources {
		if !names[source] {
			issues = append(issues, fmt.Sprintf("connection from unknown node: %s", source))
			continue
		}
		byType := w.Connections[source]
		types := make([]string, 0, len(byType))
		for ct := range byType {
			types = append(types, ct)
		}
		sort.Strings(types)
		for _, ct := range types {
			for _, targets := range byType[ct] {
				for _, link := range targets {
					if !names[link.Node] {
						issues = append(issues, fmt.Sprintf("connection to unknown node: %s", link.Node))
					}
				}
			}
		}
	}
	return issues
}
