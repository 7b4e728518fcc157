// Package generator produces roadmap drafts from three sources: bundled
// templates, user-supplied topic lists, and external LLM completions.  A
// draft bundles the persistable roadmap document with the visual graph the
// client feeds to its diagram widget; the graph itself is never stored
// server-side.
package generator

import (
    "time"

    "github.com/skillpath/skillpath/internal/model"
)

// Position is a node's 2-D layout coordinate. Coordinates are clamped to
// the canvas bounds during parsing.
type Position struct {
    X float64 `json:"x"`
    Y float64 `json:"y"`
}

// Node is one topic in the visual graph.
type Node struct {
    ID            string           `json:"id"`
    Label         string           `json:"label"`
    Description   string           `json:"description"`
    Position      Position         `json:"position"`
    Resources     []model.Resource `json:"resources"`
    EstimatedTime string           `json:"estimatedTime"`
    Difficulty    string           `json:"difficulty"`
}

// Edge connects two nodes by id.
type Edge struct {
    Source string `json:"source"`
    Target string `json:"target"`
}

// Graph is the node/edge structure handed to the client renderer.
type Graph struct {
    Nodes []Node `json:"nodes"`
    Edges []Edge `json:"edges"`
}

// Draft is an unpersisted generation result.  The caller saves the roadmap
// through the normal create endpoint; the graph rides along for rendering.
type Draft struct {
    Roadmap model.Roadmap `json:"roadmap"`
    Graph   Graph         `json:"graph"`
}

// buildDraft converts a graph into a roadmap document: one step per node in
// graph order, defaults filled and progress zeroed.
func buildDraft(title, description, topic, difficulty string, duration model.Duration, gen model.Generation, g Graph) Draft {
    steps := make([]model.Step, 0, len(g.Nodes))
    for _, n := range g.Nodes {
        steps = append(steps, model.Step{
            ID:            n.ID,
            Title:         n.Label,
            Description:   n.Description,
            Resources:     n.Resources,
            EstimatedTime: n.EstimatedTime,
            Difficulty:    n.Difficulty,
        })
    }
    rm := model.Roadmap{
        Title:       title,
        Description: description,
        Topic:       topic,
        Difficulty:  difficulty,
        Duration:    duration,
        Steps:       steps,
        Tags:        []string{},
        Generation:  gen,
        Version:     1,
        CreatedAt:   time.Now().UTC(),
    }
    // Every node carries an id by the time a draft is built, so steps
    // inherit node ids verbatim and toggles address the same ids the
    // renderer uses for clicks.
    rm.NormalizeSteps()
    rm.RecomputeProgress()
    return Draft{Roadmap: rm, Graph: g}
}
