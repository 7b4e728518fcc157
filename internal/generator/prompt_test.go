package generator

import (
	"strings"
	"testing"

	"github.com/skillpath/skillpath/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	p, err := BuildPrompt("distributed systems", model.DifficultyAdvanced,
		model.Duration{Value: 6, Unit: "months"}, "consensus", "prefer papers over videos")
	if err != nil {
		t.Fatalf("BuildPrompt() unexpected error: %v", err)
	}
	for _, want := range []string{
		`"distributed systems"`,
		"advanced",
		"6 months",
		"Focus areas: consensus.",
		"Additional requirements: prefer papers over videos.",
		`"nodes"`,
		`"edges"`,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptOmitsEmptySections(t *testing.T) {
	p, err := BuildPrompt("go", model.DifficultyBeginner, model.Duration{Value: 3, Unit: "months"}, "", "")
	if err != nil {
		t.Fatalf("BuildPrompt() unexpected error: %v", err)
	}
	if strings.Contains(p, "Focus areas") || strings.Contains(p, "Additional requirements") {
		t.Error("empty optional sections should not be rendered")
	}
}
