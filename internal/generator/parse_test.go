package generator

import (
	"testing"
)

func TestParseCompletionPlainJSON(t *testing.T) {
	text := `{
		"title": "Learn Rust",
		"description": "Systems programming",
		"nodes": [
			{"id": "a", "label": "Ownership", "position": {"x": 100, "y": 50}},
			{"id": "b", "label": "Lifetimes"}
		],
		"edges": [{"source": "a", "target": "b"}]
	}`
	title, desc, g, err := ParseCompletion(text)
	if err != nil {
		t.Fatalf("ParseCompletion() unexpected error: %v", err)
	}
	if title != "Learn Rust" || desc != "Systems programming" {
		t.Errorf("title/description = %q/%q", title, desc)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(g.Nodes))
	}
	if len(g.Edges) != 1 || g.Edges[0].Source != "a" || g.Edges[0].Target != "b" {
		t.Errorf("edges = %v", g.Edges)
	}
}

func TestParseCompletionFenced(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bare fence", "```\n{\"nodes\":[{\"id\":\"a\",\"label\":\"X\"}]}\n```"},
		{"json language tag", "```json\n{\"nodes\":[{\"id\":\"a\",\"label\":\"X\"}]}\n```"},
		{"surrounding whitespace", "  \n```json\n{\"nodes\":[{\"id\":\"a\",\"label\":\"X\"}]}\n```  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, g, err := ParseCompletion(tt.text)
			if err != nil {
				t.Fatalf("ParseCompletion() unexpected error: %v", err)
			}
			if len(g.Nodes) != 1 || g.Nodes[0].Label != "X" {
				t.Errorf("nodes = %v", g.Nodes)
			}
		})
	}
}

func TestParseCompletionInvalidJSON(t *testing.T) {
	if _, _, _, err := ParseCompletion("sure, here is your roadmap:"); err == nil {
		t.Error("ParseCompletion() accepted non-JSON text")
	}
}

func TestParseCompletionNoNodes(t *testing.T) {
	if _, _, _, err := ParseCompletion(`{"nodes": []}`); err != ErrNoNodes {
		t.Errorf("ParseCompletion() error = %v, want ErrNoNodes", err)
	}
}

func TestParseCompletionDefaults(t *testing.T) {
	_, _, g, err := ParseCompletion(`{"nodes": [{}, {"title": "From Title"}]}`)
	if err != nil {
		t.Fatalf("ParseCompletion() unexpected error: %v", err)
	}
	if g.Nodes[0].Label != "Topic 1" {
		t.Errorf("default label = %q, want %q", g.Nodes[0].Label, "Topic 1")
	}
	if g.Nodes[1].Label != "From Title" {
		t.Errorf("label from title field = %q", g.Nodes[1].Label)
	}
	if g.Nodes[0].ID != "node-1" || g.Nodes[1].ID != "node-2" {
		t.Errorf("generated ids = %q, %q", g.Nodes[0].ID, g.Nodes[1].ID)
	}
	if g.Nodes[1].Position.Y <= g.Nodes[0].Position.Y {
		t.Error("default layout should stack nodes downward")
	}
}

func TestParseCompletionDuplicateIDs(t *testing.T) {
	_, _, g, err := ParseCompletion(`{"nodes": [{"id":"x","label":"A"},{"id":"x","label":"B"}]}`)
	if err != nil {
		t.Fatalf("ParseCompletion() unexpected error: %v", err)
	}
	if g.Nodes[0].ID == g.Nodes[1].ID {
		t.Errorf("duplicate id survived: %q", g.Nodes[0].ID)
	}
}

func TestParseCompletionDuplicateGeneratedID(t *testing.T) {
	// The model uses a generated-style id literally, twice.  The naive
	// positional replacement for the second node would collide with the
	// first again.
	_, _, g, err := ParseCompletion(`{"nodes": [{"id":"node-2"},{"id":"node-2"}]}`)
	if err != nil {
		t.Fatalf("ParseCompletion() unexpected error: %v", err)
	}
	seen := map[string]bool{}
	for _, n := range g.Nodes {
		if seen[n.ID] {
			t.Fatalf("duplicate id survived: %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range g.Edges {
		if e.Source == e.Target {
			t.Errorf("self-loop edge synthesized: %q -> %q", e.Source, e.Target)
		}
	}
}

func TestParseCompletionPositionClamped(t *testing.T) {
	_, _, g, err := ParseCompletion(`{"nodes": [{"id":"a","label":"A","position":{"x":-50,"y":99999}}]}`)
	if err != nil {
		t.Fatalf("ParseCompletion() unexpected error: %v", err)
	}
	p := g.Nodes[0].Position
	if p.X != 0 || p.Y != canvasMax {
		t.Errorf("position = %+v, want clamped to [0, %v]", p, canvasMax)
	}
}

func TestParseCompletionEdgeValidation(t *testing.T) {
	text := `{
		"nodes": [{"id":"a","label":"A"},{"id":"b","label":"B"},{"id":"c","label":"C"}],
		"edges": [
			{"source":"a","target":"b"},
			{"source":"a","target":"b"},
			{"source":"a","target":"a"},
			{"source":"a","target":"ghost"},
			{"source":"","target":"b"}
		]
	}`
	_, _, g, err := ParseCompletion(text)
	if err != nil {
		t.Fatalf("ParseCompletion() unexpected error: %v", err)
	}
	if len(g.Edges) != 1 {
		t.Errorf("edges = %v, want only the one valid edge", g.Edges)
	}
}

func TestParseCompletionSynthesizesChain(t *testing.T) {
	// Every edge is invalid, so a sequential chain must be synthesized.
	text := `{
		"nodes": [{"id":"a","label":"A"},{"id":"b","label":"B"},{"id":"c","label":"C"}],
		"edges": [{"source":"a","target":"ghost"}]
	}`
	_, _, g, err := ParseCompletion(text)
	if err != nil {
		t.Fatalf("ParseCompletion() unexpected error: %v", err)
	}
	want := []Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}
	if len(g.Edges) != len(want) {
		t.Fatalf("edges = %v, want %v", g.Edges, want)
	}
	for i := range want {
		if g.Edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, g.Edges[i], want[i])
		}
	}
}

func TestParseCompletionResourceDefaults(t *testing.T) {
	text := `{"nodes": [{"id":"a","label":"A","resources":[
		{"title":"Doc","url":"https://example.com"},
		{"title":"","url":""}
	]}]}`
	_, _, g, err := ParseCompletion(text)
	if err != nil {
		t.Fatalf("ParseCompletion() unexpected error: %v", err)
	}
	rs := g.Nodes[0].Resources
	if len(rs) != 1 {
		t.Fatalf("resources = %v, want the empty one dropped", rs)
	}
	if rs[0].Type != "article" {
		t.Errorf("default resource type = %q, want article", rs[0].Type)
	}
}
