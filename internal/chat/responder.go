// Package chat produces assistant replies for the per-node chat sidebar.
// The shipped implementation is deliberate keyword-matched templating with
// no network call; Responder is an interface so a real model-backed
// implementation can replace it without touching the HTTP layer.
package chat

import (
    "fmt"
    "strings"
)

// Message is one entry of a node's chat transcript.
type Message struct {
    Role    string `json:"role"` // "user" or "assistant"
    Content string `json:"content"`
}

// Responder turns a transcript and the selected topic into a reply.
type Responder interface {
    Respond(history []Message, topic string) string
}

// TemplateResponder answers from a fixed rule set: the latest user message
// is scanned for keywords and the first matching rule's template is
// rendered with the topic.
type TemplateResponder struct{}

func NewTemplateResponder() *TemplateResponder { return &TemplateResponder{} }

// rule pairs trigger keywords with a reply template.  %s is the topic.
type rule struct {
    keywords []string
    reply    string
}

var rules = []rule{
    {[]string{"what", "explain", "mean"},
        "%s is one step of your roadmap. Start with the basics: read the attached resources in order, and make sure you can explain the core idea in your own words before moving on."},
    {[]string{"resource", "book", "course", "video", "link"},
        "The resources attached to %s are a good starting point. Work through them in the order listed; articles first for the concepts, then any course or video for practice."},
    {[]string{"how long", "time", "duration", "weeks"},
        "Most learners spend the estimated time shown on %s, but it varies. If you already know adjacent material you can move faster; the estimate assumes starting from scratch."},
    {[]string{"stuck", "hard", "difficult", "confus", "help"},
        "When %s feels hard, narrow the scope: pick the single smallest sub-topic you can't explain yet, and look for a worked example of just that. Revisiting the prerequisite steps often helps too."},
    {[]string{"next", "after", "then"},
        "Once you can apply %s in a small project of your own, mark the step complete and follow the outgoing edge in the graph - that's the next step the roadmap recommends."},
    {[]string{"project", "practice", "exercise"},
        "Build something tiny with %s. A project you finish in an afternoon teaches more than one you abandon in a week; scale up only after the small one works."},
}

const fallback = "I can help you with %s. Ask about what it covers, which resources to use, how long it takes, or what to do when you're stuck."

// Respond scans the most recent user message for keywords and renders the
// matching template.  An empty history gets the fallback prompt.
func (t *TemplateResponder) Respond(history []Message, topic string) string {
    if topic == "" {
        topic = "this step"
    }
    last := ""
    for i := len(history) - 1; i >= 0; i-- {
        if history[i].Role == "user" {
            last = strings.ToLower(history[i].Content)
            break
        }
    }
    for _, r := range rules {
        for _, kw := range r.keywords {
            if strings.Contains(last, kw) {
                return fmt.Sprintf(r.reply, topic)
            }
        }
    }
    return fmt.Sprintf(fallback, topic)
}
