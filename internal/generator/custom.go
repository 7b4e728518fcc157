package generator

import (
    "errors"
    "fmt"
    "strings"

    "github.com/skillpath/skillpath/internal/model"
)

// ErrNoTopics is returned when a custom build request carries no topics.
var ErrNoTopics = errors.New("at least one topic is required")

// FromTopics builds a straight-line roadmap directly from a user-supplied
// ordered topic list: one node per topic, edges threaded
// topic[i] -> topic[i+1].  Blank entries are skipped.
func FromTopics(title, topic, difficulty string, duration model.Duration, topics []string) (Draft, error) {
    cleaned := make([]string, 0, len(topics))
    for _, t := range topics {
        if t = strings.TrimSpace(t); t != "" {
            cleaned = append(cleaned, t)
        }
    }
    if len(cleaned) == 0 {
        return Draft{}, ErrNoTopics
    }
    if title == "" {
        title = cleaned[0] + " Roadmap"
    }
    g := Graph{Nodes: make([]Node, 0, len(cleaned))}
    for i, t := range cleaned {
        g.Nodes = append(g.Nodes, Node{
            ID:         fmt.Sprintf("custom-%d", i+1),
            Label:      t,
            Position:   Position{X: defaultNodeX, Y: float64(i) * defaultNodeGapY},
            Difficulty: difficulty,
        })
    }
    g.Edges = chainEdges(g.Nodes)
    return buildDraft(title, "", topic, difficulty, duration,
        model.Generation{Source: model.SourceUser}, g), nil
}
