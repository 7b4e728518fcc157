package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/skillpath/skillpath/internal/model"
)

// RoadmapRepo persists roadmap documents.  Scalar fields live in columns;
// the step list, tags, sharing list and liking set are JSON columns so a
// save replaces the whole document in one statement, matching the
// last-writer-wins semantics the rest of the system assumes.
type RoadmapRepo struct{ DB *sql.DB }

func NewRoadmapRepo(db *sql.DB) *RoadmapRepo { return &RoadmapRepo{DB: db} }

const roadmapColumns = `id,owner_id,title,description,topic,difficulty,
	duration_value,duration_unit,steps,tags,is_public,shared_with,liked_by,
	forked_from,completed_steps,total_steps,progress_pct,
	gen_source,gen_model,gen_prompt,version,created_at,updated_at`

// scanRoadmap reads one row into a model.Roadmap, decoding the JSON
// columns.  Nil JSON slices are normalized to empty ones so API responses
// always carry arrays.
func scanRoadmap(row interface{ Scan(...any) error }) (model.Roadmap, error) {
	var (
		m                          model.Roadmap
		steps, tags, shared, likes []byte
		forked                     []byte
	)
	err := row.Scan(&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.Topic,
		&m.Difficulty, &m.Duration.Value, &m.Duration.Unit,
		&steps, &tags, &m.IsPublic, &shared, &likes, &forked,
		&m.Progress.CompletedSteps, &m.Progress.TotalSteps, &m.Progress.Percentage,
		&m.Generation.Source, &m.Generation.Model, &m.Generation.Prompt,
		&m.Version, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Roadmap{}, err
	}
	_ = json.Unmarshal(steps, &m.Steps)
	_ = json.Unmarshal(tags, &m.Tags)
	_ = json.Unmarshal(shared, &m.SharedWith)
	_ = json.Unmarshal(likes, &m.LikedBy)
	if len(forked) > 0 {
		var f model.ForkInfo
		if json.Unmarshal(forked, &f) == nil && f.OriginalID != 0 {
			m.Fork = &f
		}
	}
	if m.Steps == nil {
		m.Steps = []model.Step{}
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.SharedWith == nil {
		m.SharedWith = []model.ShareEntry{}
	}
	if m.LikedBy == nil {
		m.LikedBy = []uint64{}
	}
	return m, nil
}

// encode marshals the document-valued fields of a roadmap for storage.
func encode(m *model.Roadmap) (steps, tags, shared, likes, forked []byte, err error) {
	if steps, err = json.Marshal(m.Steps); err != nil {
		return
	}
	if tags, err = json.Marshal(m.Tags); err != nil {
		return
	}
	if shared, err = json.Marshal(m.SharedWith); err != nil {
		return
	}
	if likes, err = json.Marshal(m.LikedBy); err != nil {
		return
	}
	if m.Fork != nil {
		forked, err = json.Marshal(m.Fork)
	}
	return
}

// Create inserts a roadmap and populates its ID and timestamps.
func (r *RoadmapRepo) Create(ctx context.Context, m *model.Roadmap) error {
	steps, tags, shared, likes, forked, err := encode(m)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO roadmaps (owner_id,title,description,topic,difficulty,
			duration_value,duration_unit,steps,tags,is_public,shared_with,liked_by,
			forked_from,completed_steps,total_steps,progress_pct,
			gen_source,gen_model,gen_prompt,version)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.OwnerID, m.Title, m.Description, m.Topic, m.Difficulty,
		m.Duration.Value, m.Duration.Unit, steps, tags, m.IsPublic, shared, likes,
		nullable(forked), m.Progress.CompletedSteps, m.Progress.TotalSteps, m.Progress.Percentage,
		m.Generation.Source, m.Generation.Model, m.Generation.Prompt, m.Version)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	// Follow-up SELECT fills the DB-generated timestamps so callers return
	// a fully populated record.
	saved, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	m.CreatedAt = saved.CreatedAt
	m.UpdatedAt = saved.UpdatedAt
	return nil
}

// GetByID fetches a roadmap by id.
func (r *RoadmapRepo) GetByID(ctx context.Context, id uint64) (model.Roadmap, error) {
	m, err := scanRoadmap(r.DB.QueryRowContext(ctx,
		"SELECT "+roadmapColumns+" FROM roadmaps WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Roadmap{}, ErrRoadmapNotFound
	}
	return m, err
}

// Save replaces the whole roadmap row.  Progress and version are persisted
// as already computed by the caller; this method does not bump anything
// itself so toggles and full updates share it.
func (r *RoadmapRepo) Save(ctx context.Context, m *model.Roadmap) error {
	steps, tags, shared, likes, forked, err := encode(m)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE roadmaps SET title=?,description=?,topic=?,difficulty=?,
			duration_value=?,duration_unit=?,steps=?,tags=?,is_public=?,
			shared_with=?,liked_by=?,forked_from=?,
			completed_steps=?,total_steps=?,progress_pct=?,
			gen_source=?,gen_model=?,gen_prompt=?,version=?
		WHERE id=?`,
		m.Title, m.Description, m.Topic, m.Difficulty,
		m.Duration.Value, m.Duration.Unit, steps, tags, m.IsPublic,
		shared, likes, nullable(forked),
		m.Progress.CompletedSteps, m.Progress.TotalSteps, m.Progress.Percentage,
		m.Generation.Source, m.Generation.Model, m.Generation.Prompt, m.Version,
		m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 for a no-op update of an existing row, so
		// confirm absence before reporting not-found.
		if _, getErr := r.GetByID(ctx, m.ID); getErr != nil {
			return getErr
		}
	}
	return nil
}

// Delete hard-deletes a roadmap.
func (r *RoadmapRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM roadmaps WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoadmapNotFound
	}
	return nil
}

// DeleteByOwner removes every roadmap a user owns; used by account deletion.
func (r *RoadmapRepo) DeleteByOwner(ctx context.Context, ownerID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM roadmaps WHERE owner_id=?", ownerID)
	return err
}

// nullable converts an empty JSON blob into a SQL NULL.
func nullable(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
