package generator

import (
    "encoding/json"
    "errors"
    "fmt"
    "strings"

    "github.com/skillpath/skillpath/internal/model"
)

// Canvas bounds node positions are clamped into.
const (
    canvasMax       = 2000.0
    defaultNodeX    = 400.0
    defaultNodeGapY = 140.0
)

// ErrNoNodes is returned when a completion parses as JSON but carries no
// usable nodes array.
var ErrNoNodes = errors.New("completion contains no nodes")

// rawGraph mirrors the loosely-typed JSON shape models tend to return.
// Everything is optional; parsing fills defaults exhaustively rather than
// trusting the model's output.
type rawGraph struct {
    Title       string    `json:"title"`
    Description string    `json:"description"`
    Nodes       []rawNode `json:"nodes"`
    Edges       []rawEdge `json:"edges"`
}

type rawNode struct {
    ID            string        `json:"id"`
    Label         string        `json:"label"`
    Title         string        `json:"title"` // some models emit "title" instead of "label"
    Description   string        `json:"description"`
    Position      *Position     `json:"position"`
    Resources     []rawResource `json:"resources"`
    EstimatedTime string        `json:"estimatedTime"`
    Difficulty    string        `json:"difficulty"`
}

type rawResource struct {
    Title string `json:"title"`
    URL   string `json:"url"`
    Type  string `json:"type"`
}

type rawEdge struct {
    Source string `json:"source"`
    Target string `json:"target"`
}

// ParseCompletion turns an LLM completion into a validated graph.  The text
// may be wrapped in fenced code blocks.  Every absent node field is
// defaulted, positions are clamped into the canvas, and edges are checked
// against the realized node-id set (both endpoints must exist and differ).
// When no usable edges survive, a strictly sequential chain is synthesized
// across the nodes in their given order so the graph is always connected.
func ParseCompletion(text string) (title, description string, g Graph, err error) {
    var raw rawGraph
    if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
        return "", "", Graph{}, fmt.Errorf("completion is not valid JSON: %w", err)
    }
    if len(raw.Nodes) == 0 {
        return "", "", Graph{}, ErrNoNodes
    }

    g.Nodes = make([]Node, 0, len(raw.Nodes))
    ids := make(map[string]bool, len(raw.Nodes))
    suffix := 0
    for i, rn := range raw.Nodes {
        n := normalizeNode(rn, i)
        // Duplicate or recycled ids get a generated replacement.  The
        // counter keeps advancing past replacements the model already used
        // as literal ids, so the realized id set is always unique.
        for n.ID == "" || ids[n.ID] {
            suffix++
            n.ID = fmt.Sprintf("node-%d", suffix)
        }
        ids[n.ID] = true
        g.Nodes = append(g.Nodes, n)
    }

    g.Edges = validEdges(raw.Edges, ids)
    if len(g.Edges) == 0 {
        g.Edges = chainEdges(g.Nodes)
    }
    return raw.Title, raw.Description, g, nil
}

// normalizeNode fills every absent field of one raw node.
func normalizeNode(rn rawNode, idx int) Node {
    label := rn.Label
    if label == "" {
        label = rn.Title
    }
    if label == "" {
        label = fmt.Sprintf("Topic %d", idx+1)
    }
    pos := Position{X: defaultNodeX, Y: float64(idx) * defaultNodeGapY}
    if rn.Position != nil {
        pos = clamp(*rn.Position)
    }
    n := Node{
        ID:            strings.TrimSpace(rn.ID),
        Label:         label,
        Description:   rn.Description,
        Position:      pos,
        EstimatedTime: rn.EstimatedTime,
        Difficulty:    rn.Difficulty,
    }
    for _, rr := range rn.Resources {
        if rr.URL == "" && rr.Title == "" {
            continue
        }
        typ := rr.Type
        if typ == "" {
            typ = "article"
        }
        n.Resources = append(n.Resources, model.Resource{Title: rr.Title, URL: rr.URL, Type: typ})
    }
    return n
}

// validEdges keeps edges whose endpoints both exist and differ, deduplicated.
func validEdges(raw []rawEdge, ids map[string]bool) []Edge {
    out := make([]Edge, 0, len(raw))
    seen := make(map[string]bool, len(raw))
    for _, e := range raw {
        if e.Source == "" || e.Target == "" || e.Source == e.Target {
            continue
        }
        if !ids[e.Source] || !ids[e.Target] {
            continue
        }
        key := e.Source + "\x00" + e.Target
        if seen[key] {
            continue
        }
        seen[key] = true
        out = append(out, Edge{Source: e.Source, Target: e.Target})
    }
    return out
}

// chainEdges threads node[i] -> node[i+1], visiting every node exactly once.
func chainEdges(nodes []Node) []Edge {
    if len(nodes) < 2 {
        return []Edge{}
    }
    out := make([]Edge, 0, len(nodes)-1)
    for i := 0; i < len(nodes)-1; i++ {
        out = append(out, Edge{Source: nodes[i].ID, Target: nodes[i+1].ID})
    }
    return out
}

func clamp(p Position) Position {
    if p.X < 0 {
        p.X = 0
    } else if p.X > canvasMax {
        p.X = canvasMax
    }
    if p.Y < 0 {
        p.Y = 0
    } else if p.Y > canvasMax {
        p.Y = canvasMax
    }
    return p
}

// stripFences removes a surrounding Markdown code fence, with or without a
// language tag, from a completion.
func stripFences(s string) string {
    s = strings.TrimSpace(s)
    if !strings.HasPrefix(s, "```") {
        return s
    }
    s = strings.TrimPrefix(s, "```")
    // Drop a language tag like "json" on the fence line.
    if i := strings.IndexByte(s, '\n'); i >= 0 {
        first := strings.TrimSpace(s[:i])
        if first == "" || !strings.ContainsAny(first, "{[") {
            s = s[i+1:]
        }
    }
    s = strings.TrimSuffix(strings.TrimSpace(s), "```")
    return strings.TrimSpace(s)
}
