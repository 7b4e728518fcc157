package chat

import (
	"strings"
	"testing"
)

func TestRespondKeywordRouting(t *testing.T) {
	r := NewTemplateResponder()

	tests := []struct {
		name     string
		message  string
		fragment string // expected substring of the reply
	}{
		{"definition question", "What does this actually mean?", "explain the core idea"},
		{"resource question", "Any good book on this?", "resources attached to"},
		{"time question", "How long will this take?", "estimated time"},
		{"stuck", "I'm stuck and confused", "narrow the scope"},
		{"next step", "What should I learn next?", "outgoing edge"},
		{"practice", "Got a practice exercise?", "Build something tiny"},
		{"unmatched", "zzz qqq", "Ask about what it covers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Respond([]Message{{Role: "user", Content: tt.message}}, "Goroutines")
			if !strings.Contains(got, tt.fragment) {
				t.Errorf("Respond(%q) = %q, want it to contain %q", tt.message, got, tt.fragment)
			}
			if !strings.Contains(got, "Goroutines") {
				t.Errorf("Respond(%q) does not mention the topic", tt.message)
			}
		})
	}
}

func TestRespondUsesLatestUserMessage(t *testing.T) {
	r := NewTemplateResponder()
	history := []Message{
		{Role: "user", Content: "how long does this take?"},
		{Role: "assistant", Content: "a while"},
		{Role: "user", Content: "ok, I'm stuck now"},
	}
	got := r.Respond(history, "CSS")
	if !strings.Contains(got, "narrow the scope") {
		t.Errorf("Respond() = %q, want the reply for the latest user message", got)
	}
}

func TestRespondEmptyTopicAndHistory(t *testing.T) {
	r := NewTemplateResponder()
	got := r.Respond(nil, "")
	if !strings.Contains(got, "this step") {
		t.Errorf("Respond() = %q, want the default topic placeholder", got)
	}
}
