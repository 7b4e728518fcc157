package generator

import (
	"testing"

	"github.com/skillpath/skillpath/internal/model"
)

func TestTemplatesSorted(t *testing.T) {
	ts := Templates()
	if len(ts) == 0 {
		t.Fatal("Templates() returned an empty catalog")
	}
	for i := 1; i < len(ts); i++ {
		if ts[i-1].ID >= ts[i].ID {
			t.Errorf("catalog not sorted: %q before %q", ts[i-1].ID, ts[i].ID)
		}
	}
	for _, tpl := range ts {
		if len(tpl.Topics) == 0 {
			t.Errorf("template %q has no topics", tpl.ID)
		}
	}
}

func TestFromTemplate(t *testing.T) {
	dur := model.Duration{Value: 3, Unit: "months"}
	draft, err := FromTemplate("backend-go", model.DifficultyIntermediate, dur)
	if err != nil {
		t.Fatalf("FromTemplate() unexpected error: %v", err)
	}

	rm := draft.Roadmap
	if rm.Generation.Source != model.SourceTemplate {
		t.Errorf("Generation.Source = %q, want %q", rm.Generation.Source, model.SourceTemplate)
	}
	if rm.Difficulty != model.DifficultyIntermediate {
		t.Errorf("Difficulty = %q", rm.Difficulty)
	}
	if rm.Duration != dur {
		t.Errorf("Duration = %+v, want %+v", rm.Duration, dur)
	}
	if len(rm.Steps) != len(draft.Graph.Nodes) {
		t.Fatalf("steps = %d, nodes = %d", len(rm.Steps), len(draft.Graph.Nodes))
	}
	for i, s := range rm.Steps {
		if s.ID != draft.Graph.Nodes[i].ID {
			t.Errorf("step %d id %q does not match node id %q", i, s.ID, draft.Graph.Nodes[i].ID)
		}
		if s.Completed {
			t.Errorf("step %d starts completed", i)
		}
	}
	if len(draft.Graph.Edges) != len(draft.Graph.Nodes)-1 {
		t.Errorf("edge count = %d, want chain of %d", len(draft.Graph.Edges), len(draft.Graph.Nodes)-1)
	}
	if rm.Progress.Percentage != 0 || rm.Progress.TotalSteps != len(rm.Steps) {
		t.Errorf("progress = %+v", rm.Progress)
	}
	if len(rm.Tags) == 0 {
		t.Error("template tags were not applied")
	}
}

func TestFromTemplateUnknown(t *testing.T) {
	if _, err := FromTemplate("no-such-template", model.DifficultyBeginner, model.Duration{}); err != ErrTemplateNotFound {
		t.Errorf("FromTemplate() error = %v, want ErrTemplateNotFound", err)
	}
}
