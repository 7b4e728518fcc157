package generator

import (
    "strings"
    "text/template"

    "github.com/skillpath/skillpath/internal/model"
)

// promptTemplate renders the natural-language instruction sent to the
// completion provider.  The response contract (bare JSON, nodes/edges
// shape) is spelled out explicitly because parsing is strict about the
// top-level structure even while defaulting individual fields.
var promptTemplate = template.Must(template.New("roadmap").Parse(strings.TrimSpace(`
You are a curriculum designer. Create a learning roadmap for the topic "{{.Topic}}".
Target difficulty: {{.Difficulty}}. Target duration: {{.Duration.Value}} {{.Duration.Unit}}.
{{- if .Focus}}
Focus areas: {{.Focus}}.
{{- end}}
{{- if .Requirements}}
Additional requirements: {{.Requirements}}.
{{- end}}

Respond with a single JSON object and nothing else. Do not wrap it in a code fence.
The object must have this shape:

{
  "title": "...",
  "description": "...",
  "nodes": [
    {
      "id": "node-1",
      "label": "topic name",
      "description": "what to learn and why",
      "estimatedTime": "2 weeks",
      "difficulty": "{{.Difficulty}}",
      "position": {"x": 400, "y": 0},
      "resources": [{"title": "...", "url": "https://...", "type": "article"}]
    }
  ],
  "edges": [{"source": "node-1", "target": "node-2"}]
}

Produce between 6 and 12 nodes ordered from fundamentals to advanced material.
Every edge must connect two existing node ids, pointing from prerequisite to dependent.
`)))

// promptData is the input to the prompt template.
type promptData struct {
    Topic        string
    Difficulty   string
    Duration     model.Duration
    Focus        string
    Requirements string
}

// BuildPrompt renders the generation prompt for an AI-mode request.
func BuildPrompt(topic, difficulty string, duration model.Duration, focus, requirements string) (string, error) {
    var b strings.Builder
    err := promptTemplate.Execute(&b, promptData{
        Topic:        topic,
        Difficulty:   difficulty,
        Duration:     duration,
        Focus:        focus,
        Requirements: requirements,
    })
    if err != nil {
        return "", err
    }
    return b.String(), nil
}
