package generator

import (
    "context"
    "errors"
    "fmt"

    "github.com/skillpath/skillpath/internal/config"
    "github.com/skillpath/skillpath/internal/llm"
    "github.com/skillpath/skillpath/internal/model"
)

// Generation modes selectable by the caller.
const (
    ModeTemplate = "template"
    ModeCustom   = "custom"
    ModeAI       = "ai"
)

// ErrUnknownMode is returned for a mode outside the supported set.
var ErrUnknownMode = errors.New("unknown generation mode")

// ErrNoTopic is returned when an ai-mode request carries no topic.
var ErrNoTopic = errors.New("topic is required for ai generation")

// Request carries everything a generation call can need; which fields
// matter depends on Mode.
type Request struct {
    Mode         string         `json:"mode"`
    TemplateID   string         `json:"templateId"`   // template mode
    Topics       []string       `json:"topics"`       // custom mode, ordered
    Title        string         `json:"title"`        // custom mode, optional
    Topic        string         `json:"topic"`        // ai mode
    Focus        string         `json:"focus"`        // ai mode, optional
    Requirements string         `json:"requirements"` // ai mode, optional
    Difficulty   string         `json:"difficulty"`
    Duration     model.Duration `json:"estimatedDuration"`
}

// Service produces roadmap drafts.  The LLM client and its provider config
// are injected at construction; only AI-mode requests touch the network.
type Service struct {
    llm   *llm.Client
    model string
}

// New builds a generation service for the given provider configuration.
func New(cfg config.LLMConfig) *Service {
    return &Service{llm: llm.New(cfg), model: cfg.Model}
}

// Generate dispatches on the request mode and returns an unpersisted draft.
// Defaults: difficulty falls back to beginner, duration to 3 months.
func (s *Service) Generate(ctx context.Context, req Request) (Draft, error) {
    if !model.ValidDifficulty(req.Difficulty) {
        req.Difficulty = model.DifficultyBeginner
    }
    if req.Duration.Value <= 0 {
        req.Duration = model.Duration{Value: 3, Unit: "months"}
    }
    switch req.Mode {
    case ModeTemplate:
        return FromTemplate(req.TemplateID, req.Difficulty, req.Duration)
    case ModeCustom:
        return FromTopics(req.Title, req.Topic, req.Difficulty, req.Duration, req.Topics)
    case ModeAI:
        return s.generateAI(ctx, req)
    default:
        return Draft{}, ErrUnknownMode
    }
}

// generateAI runs the prompt/completion/parse round trip.  There is no
// retry: a provider failure or unparseable completion is terminal and the
// user resubmits manually.
func (s *Service) generateAI(ctx context.Context, req Request) (Draft, error) {
    if req.Topic == "" {
        return Draft{}, ErrNoTopic
    }
    prompt, err := BuildPrompt(req.Topic, req.Difficulty, req.Duration, req.Focus, req.Requirements)
    if err != nil {
        return Draft{}, err
    }
    completion, err := s.llm.Complete(ctx, prompt)
    if err != nil {
        return Draft{}, err
    }
    title, description, g, err := ParseCompletion(completion)
    if err != nil {
        return Draft{}, err
    }
    if title == "" {
        title = fmt.Sprintf("%s Roadmap", req.Topic)
    }
    draft := buildDraft(title, description, req.Topic, req.Difficulty, req.Duration,
        model.Generation{Source: model.SourceAI, Model: s.model, Prompt: prompt}, g)
    return draft, nil
}
