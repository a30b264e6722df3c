package n8n

import (
	"strings"
	"testing"
)

func validWorkflow() *Workflow {
	return &Workflow{
		ID:     "wf1",
		Name:   "Page Audit",
		Active: true,
		Nodes: []Node{
			{ID: "a", Name: "Start", Type: "n8n-nodes-base.start"},
			{ID: "b", Name: "Fetch", Type: "n8n-nodes-base.httpRequest"},
		},
		Connections: Connections{
			"Start": {
				"main": [][]Link{{{Node: "Fetch", Type: "main", Index: 0}}},
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	v := validWorkflow().Validate()
	if !v.Valid {
		t.Fatalf("valid workflow reported issues: %v", v.Issues)
	}
	if v.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", v.NodeCount)
	}
	if v.ConnectionCount != 1 {
		t.Errorf("ConnectionCount = %d, want 1", v.ConnectionCount)
	}
}

func TestValidate_Issues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Workflow)
		want   string
	}{
		{"missing name", func(w *Workflow) { w.Name = "" }, "missing required field: name"},
		{"missing nodes", func(w *Workflow) { w.Nodes = nil }, "missing required field: nodes"},
		{"missing connections", func(w *Workflow) { w.Connections = nil }, "missing required field: connections"},
		{"duplicate id", func(w *Workflow) { w.Nodes[1].ID = "a" }, "duplicate node ID: a"},
		{"node without id", func(w *Workflow) { w.Nodes[0].ID = "" }, "1 node(s) without an ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWorkflow()
			tt.mutate(w)
			v := w.Validate()
			if v.Valid {
				t.Fatal("expected invalid")
			}
			found := false
			for _, issue := range v.Issues {
				if issue == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("issues %v missing %q", v.Issues, tt.want)
			}
		})
	}
}

func TestValidate_DuplicateReportedOnce(t *testing.T) {
	w := validWorkflow()
	w.Nodes = append(w.Nodes, Node{ID: "a", Name: "Third"}, Node{ID: "a", Name: "Fourth"})
	v := w.Validate()
	count := 0
	for _, issue := range v.Issues {
		if issue == "duplicate node ID: a" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate reported %d times, want 1", count)
	}
}

func TestBrokenConnections_None(t *testing.T) {
	if issues := validWorkflow().BrokenConnections(); len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

func TestBrokenConnections(t *testing.T) {
	w := validWorkflow()
	w.Connections["Ghost"] = map[string][][]Link{
		"main": {{{Node: "Fetch", Type: "main", Index: 0}}},
	}
	w.Connections["Start"]["main"][0] = append(
		w.Connections["Start"]["main"][0],
		Link{Node: "Missing", Type: "main", Index: 0},
	)

	issues := w.BrokenConnections()
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2: %v", len(issues), issues)
	}
	if issues[0] != "connection from unknown node: Ghost" {
		t.Errorf("issues[0] = %q", issues[0])
	}
	if issues[1] != "connection to unknown node: Missing" {
		t.Errorf("issues[1] = %q", issues[1])
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Page Audit", "Page Audit"},
		{"report: v2!", "report v2"},
		{"a/b\\c", "abc"},
		{"trailing.  ", "trailing"},
		{"под_контролем", "под_контролем"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeName_NoSeparators(t *testing.T) {
	if got := sanitizeName("x/../../etc/passwd"); strings.ContainsAny(got, "/\\.") {
		t.Errorf("sanitized name still has separators: %q", got)
	}
}
