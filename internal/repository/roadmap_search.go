package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/skillpath/skillpath/internal/model"
)

// RoadmapQuery defines filters & pagination for listing roadmaps.
type RoadmapQuery struct {
	OwnerID    uint64   // restrict to one owner's roadmaps when non-zero
	PublicOnly bool     // restrict to is_public rows
	Search     string   // free-text match across title/description/topic
	Difficulty string   // exact difficulty filter
	Tags       []string // at least one tag must intersect
	Page       int
	PageSize   int
}

func (r *RoadmapRepo) List(ctx context.Context, q RoadmapQuery) ([]model.Roadmap, int64, error) {
	where := []string{}
	args := []any{}

	if q.OwnerID != 0 {
		where = append(where, "owner_id = ?")
		args = append(args, q.OwnerID)
	}
	if q.PublicOnly {
		where = append(where, "is_public = TRUE")
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(topic) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.Difficulty != "" {
		where = append(where, "difficulty = ?")
		args = append(args, q.Difficulty)
	}
	if len(q.Tags) > 0 {
		// JSON_OVERLAPS matches any intersection between the stored tag
		// array and the requested one.
		tagJSON, err := json.Marshal(q.Tags)
		if err != nil {
			return nil, 0, err
		}
		where = append(where, "JSON_OVERLAPS(tags, CAST(? AS JSON))")
		args = append(args, string(tagJSON))
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM roadmaps WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := "SELECT " + roadmapColumns + " FROM roadmaps WHERE " + cond +
		" ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Roadmap, 0, limit)
	for rows.Next() {
		m, err := scanRoadmap(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
