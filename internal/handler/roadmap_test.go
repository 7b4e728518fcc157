package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skillpath/skillpath/internal/model"
	"github.com/skillpath/skillpath/internal/repository"
)

func testContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestListQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  repository.RoadmapQuery
	}{
		{"defaults", "", repository.RoadmapQuery{Page: 1, PageSize: defaultPageSize}},
		{"explicit paging", "page=3&limit=20", repository.RoadmapQuery{Page: 3, PageSize: 20}},
		{"limit capped", "limit=500", repository.RoadmapQuery{Page: 1, PageSize: maxPageSize}},
		{"bad values ignored", "page=-2&limit=zero", repository.RoadmapQuery{Page: 1, PageSize: defaultPageSize}},
		{"search and difficulty", "search=go&difficulty=advanced",
			repository.RoadmapQuery{Page: 1, PageSize: defaultPageSize, Search: "go", Difficulty: "advanced"}},
		{"unknown difficulty dropped", "difficulty=expert", repository.RoadmapQuery{Page: 1, PageSize: defaultPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(t, http.MethodGet, "/api/roadmaps?"+tt.query, "")
			got := listQuery(c)
			if got.Page != tt.want.Page || got.PageSize != tt.want.PageSize ||
				got.Search != tt.want.Search || got.Difficulty != tt.want.Difficulty {
				t.Errorf("listQuery() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestListQueryTags(t *testing.T) {
	c, _ := testContext(t, http.MethodGet, "/api/roadmaps?tags=go,%20web%20,,api", "")
	got := listQuery(c)
	want := []string{"go", "web", "api"}
	if len(got.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", got.Tags, want)
	}
	for i := range want {
		if got.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, got.Tags[i], want[i])
		}
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		pageSize  int
		total     int64
		wantPages int64
	}{
		{"empty", 10, 0, 0},
		{"exact fit", 10, 30, 3},
		{"remainder", 10, 31, 4},
		{"less than one page", 10, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := paginate(1, tt.pageSize, tt.total)
			if meta.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", meta.Pages, tt.wantPages)
			}
			if meta.Total != tt.total {
				t.Errorf("Total = %d, want %d", meta.Total, tt.total)
			}
		})
	}
}

func TestRoadmapBodyValidate(t *testing.T) {
	valid := func() roadmapBody {
		return roadmapBody{Title: "Learn Go", Steps: []model.Step{{Title: "Basics"}}}
	}

	tests := []struct {
		name   string
		mutate func(*roadmapBody)
		wantOK bool
	}{
		{"valid", func(b *roadmapBody) {}, true},
		{"missing title", func(b *roadmapBody) { b.Title = "  " }, false},
		{"no steps", func(b *roadmapBody) { b.Steps = nil }, false},
		{"untitled step", func(b *roadmapBody) { b.Steps = []model.Step{{Title: " "}} }, false},
		{"bad difficulty", func(b *roadmapBody) { b.Difficulty = "expert" }, false},
		{"explicit difficulty", func(b *roadmapBody) { b.Difficulty = model.DifficultyAdvanced }, true},
		{"ai generation", func(b *roadmapBody) {
			b.Generation = &model.Generation{Source: model.SourceAI, Model: "gpt-4o-mini", Prompt: "learn go"}
		}, true},
		{"template generation", func(b *roadmapBody) {
			b.Generation = &model.Generation{Source: model.SourceTemplate}
		}, true},
		{"bad generation source", func(b *roadmapBody) {
			b.Generation = &model.Generation{Source: "scraped"}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(&b)
			c, rec := testContext(t, http.MethodPost, "/api/roadmaps", "")
			ok, _ := b.validate(c)
			if ok != tt.wantOK {
				t.Fatalf("validate() ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK && rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRoadmapBodyValidateDefaults(t *testing.T) {
	b := roadmapBody{Title: " Learn Go ", Steps: []model.Step{{Title: "Basics"}}}
	c, _ := testContext(t, http.MethodPost, "/api/roadmaps", "")
	if ok, _ := b.validate(c); !ok {
		t.Fatal("validate() rejected a valid body")
	}
	if b.Title != "Learn Go" {
		t.Errorf("title not trimmed: %q", b.Title)
	}
	if b.Difficulty != model.DifficultyBeginner {
		t.Errorf("default difficulty = %q, want beginner", b.Difficulty)
	}
	if b.Tags == nil {
		t.Error("nil tags should become an empty slice")
	}
}

func TestRoadmapBodyGeneration(t *testing.T) {
	b := roadmapBody{Title: "Learn Go", Steps: []model.Step{{Title: "Basics"}}}
	if got := b.generation(); got.Source != model.SourceUser {
		t.Errorf("default generation source = %q, want %q", got.Source, model.SourceUser)
	}

	// A generated draft posted back keeps its provenance.
	b.Generation = &model.Generation{Source: model.SourceAI, Model: "gpt-4o-mini", Prompt: "learn go in 8 weeks"}
	got := b.generation()
	if got.Source != model.SourceAI || got.Model != "gpt-4o-mini" || got.Prompt != "learn go in 8 weeks" {
		t.Errorf("generation() = %+v, want the draft block preserved", got)
	}
}

func TestHealth(t *testing.T) {
	c, rec := testContext(t, http.MethodGet, "/api/health", "")
	if err := Health(c); err != nil {
		t.Fatalf("Health() unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, key := range []string{"status", "uptime", "timestamp"} {
		if !strings.Contains(body, key) {
			t.Errorf("health body missing %q: %s", key, body)
		}
	}
}
