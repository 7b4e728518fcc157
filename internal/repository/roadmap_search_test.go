package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var roadmapTestColumns = []string{
	"id", "owner_id", "title", "description", "topic", "difficulty",
	"duration_value", "duration_unit", "steps", "tags", "is_public",
	"shared_with", "liked_by", "forked_from", "completed_steps",
	"total_steps", "progress_pct", "gen_source", "gen_model", "gen_prompt",
	"version", "created_at", "updated_at",
}

func addRoadmapRow(rows *sqlmock.Rows, id, owner uint64, title string, isPublic bool) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, owner, title, "", "go", "beginner",
		6, "weeks", []byte(`[]`), []byte(`["go"]`), isPublic,
		[]byte(`[]`), []byte(`[]`), nil, 0, 0, 0,
		"user", "", "", 1, now, now)
}

func TestListPublicOnlyFiltersInSQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoadmapRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM roadmaps WHERE is_public = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	// The visibility predicate is baked into the statement, so a private
	// roadmap can never reach the public listing.
	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmaps WHERE is_public = TRUE ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?")).
		WithArgs(10, 0).
		WillReturnRows(addRoadmapRow(sqlmock.NewRows(roadmapTestColumns), 1, 2, "Learn Go", true))

	out, total, err := repo.List(context.Background(), RoadmapQuery{PublicOnly: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if total != 1 || len(out) != 1 {
		t.Fatalf("List() = %d rows, total %d, want 1 and 1", len(out), total)
	}
	if !out[0].IsPublic {
		t.Error("listed roadmap is not public")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListOwnerScope(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoadmapRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM roadmaps WHERE owner_id = ?")).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmaps WHERE owner_id = ? ORDER BY")).
		WithArgs(uint64(2), 10, 0).
		WillReturnRows(addRoadmapRow(sqlmock.NewRows(roadmapTestColumns), 4, 2, "Mine", false))

	out, _, err := repo.List(context.Background(), RoadmapQuery{OwnerID: 2, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].OwnerID != 2 {
		t.Fatalf("List() rows = %+v, want the owner's roadmap", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListTagFilterUsesJSONOverlap(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoadmapRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("JSON_OVERLAPS(tags, CAST(? AS JSON))")).
		WithArgs(`["go","web"]`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("JSON_OVERLAPS(tags, CAST(? AS JSON))")).
		WithArgs(`["go","web"]`, 10, 0).
		WillReturnRows(sqlmock.NewRows(roadmapTestColumns))

	out, total, err := repo.List(context.Background(), RoadmapQuery{Tags: []string{"go", "web"}, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if total != 0 || len(out) != 0 {
		t.Errorf("List() = %d rows, total %d, want none", len(out), total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
