package handler

import (
	"context"  // background contexts for fire-and-forget event publishing
	"errors"   // sentinel comparisons against repository errors
	"net/http" // HTTP status codes
	"strconv"  // query parameter parsing
	"strings"  // tag list splitting
	"time"     // event timestamps

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/skillpath/skillpath/internal/httpx"
	"github.com/skillpath/skillpath/internal/middleware"
	"github.com/skillpath/skillpath/internal/model"
	"github.com/skillpath/skillpath/internal/queue"
	"github.com/skillpath/skillpath/internal/repository"
	"github.com/skillpath/skillpath/internal/service"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// RoadmapHandler bundles dependencies for roadmap CRUD and social endpoints.
type RoadmapHandler struct {
	Repo  *repository.RoadmapRepo
	Users *repository.UserRepo // share targets are checked for existence
}

func NewRoadmapHandler(r *repository.RoadmapRepo, u *repository.UserRepo) *RoadmapHandler {
	return &RoadmapHandler{Repo: r, Users: u}
}

// roadmapBody is the write shape accepted by Create and Update.  Progress,
// likes, share list and fork metadata are never taken from the client.
// Generation metadata is accepted on create only, so a generated draft
// posted back keeps its source, model and prompt; updates leave the stored
// value untouched.
type roadmapBody struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Topic       string            `json:"topic"`
	Difficulty  string            `json:"difficulty"`
	Duration    model.Duration    `json:"estimatedDuration"`
	Steps       []model.Step      `json:"steps"`
	Tags        []string          `json:"tags"`
	IsPublic    bool              `json:"isPublic"`
	Generation  *model.Generation `json:"generation"`
}

// generation resolves the metadata recorded on create.  Drafts round-trip
// their block; a plain create defaults to a user-authored roadmap.
func (b *roadmapBody) generation() model.Generation {
	if b.Generation == nil {
		return model.Generation{Source: model.SourceUser}
	}
	return *b.Generation
}

// validate normalizes the body in place.  On failure it writes the 400
// response and reports false; the handler must stop without writing again.
func (b *roadmapBody) validate(c echo.Context) (bool, error) {
	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" {
		return false, httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation, "title is required", "title")
	}
	if len(b.Steps) == 0 {
		return false, httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation, "a roadmap needs at least one step", "steps")
	}
	if b.Difficulty == "" {
		b.Difficulty = model.DifficultyBeginner
	}
	if !model.ValidDifficulty(b.Difficulty) {
		return false, httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"difficulty must be beginner, intermediate or advanced", "difficulty")
	}
	for i := range b.Steps {
		if strings.TrimSpace(b.Steps[i].Title) == "" {
			return false, httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation, "every step needs a title", "steps")
		}
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.Generation != nil {
		switch b.Generation.Source {
		case model.SourceUser, model.SourceAI, model.SourceTemplate:
		default:
			return false, httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
				"generation source must be user, ai or template", "generation")
		}
	}
	return true, nil
}

// listQuery reads pagination and filter parameters off the request.
func listQuery(c echo.Context) repository.RoadmapQuery {
	q := repository.RoadmapQuery{Page: 1, PageSize: defaultPageSize}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		if v > maxPageSize {
			v = maxPageSize
		}
		q.PageSize = v
	}
	q.Search = strings.TrimSpace(c.QueryParam("search"))
	if d := c.QueryParam("difficulty"); model.ValidDifficulty(d) {
		q.Difficulty = d
	}
	if raw := c.QueryParam("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.Tags = append(q.Tags, t)
			}
		}
	}
	return q
}

type pageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func paginate(page, pageSize int, total int64) pageMeta {
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return pageMeta{Page: page, Limit: pageSize, Total: total, Pages: pages}
}

// List returns the caller's own roadmaps, or the public catalogue when
// ?public=true.  The public listing works without authentication and never
// exposes private roadmaps regardless of who asks.
func (h *RoadmapHandler) List(c echo.Context) error {
	q := listQuery(c)

	if c.QueryParam("public") == "true" {
		q.PublicOnly = true
	} else {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
		}
		q.OwnerID = u.ID
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	items, total, err := h.Repo.List(ctx, q)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"roadmaps": items, "pagination": paginate(q.Page, q.PageSize, total)})
}

// ListPublic is the anonymous catalogue endpoint.  It always filters to
// public roadmaps so the response is safe to cache by route and query.
func (h *RoadmapHandler) ListPublic(c echo.Context) error {
	q := listQuery(c)
	q.PublicOnly = true

	ctx, cancel := reqContext(c)
	defer cancel()
	items, total, err := h.Repo.List(ctx, q)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"roadmaps": items, "pagination": paginate(q.Page, q.PageSize, total)})
}

// load fetches a roadmap and maps the missing-row case to a 404.  The bool
// reports whether the caller should return the already-written error.
func (h *RoadmapHandler) load(c echo.Context, id uint64) (model.Roadmap, bool, error) {
	ctx, cancel := reqContext(c)
	defer cancel()
	m, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return model.Roadmap{}, false, httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "roadmap not found")
		}
		return model.Roadmap{}, false, internalError(c, err)
	}
	return m, true, nil
}

// Get returns a single roadmap.  Private roadmaps are visible to the owner,
// admins and users on the share list; everyone may read public ones.
func (h *RoadmapHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid roadmap id")
	}
	m, ok, err := h.load(c, id)
	if !ok {
		return err
	}
	u, authed := middleware.CurrentUser(c)
	var uid uint64
	isAdmin := false
	if authed {
		uid, isAdmin = u.ID, u.Role == model.RoleAdmin
	}
	if !m.CanView(uid, isAdmin) {
		return httpx.Fail(c, http.StatusForbidden, httpx.CodeForbidden, "you do not have access to this roadmap")
	}
	return c.JSON(http.StatusOK, echo.Map{"roadmap": m})
}

// Create stores a new roadmap owned by the caller.
func (h *RoadmapHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	var body roadmapBody
	if err := c.Bind(&body); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}
	if ok, err := body.validate(c); !ok {
		return err
	}

	m := model.Roadmap{
		OwnerID:     u.ID,
		Title:       body.Title,
		Description: strings.TrimSpace(body.Description),
		Topic:       strings.TrimSpace(body.Topic),
		Difficulty:  body.Difficulty,
		Duration:    body.Duration,
		Steps:       body.Steps,
		Tags:        body.Tags,
		IsPublic:    body.IsPublic,
		SharedWith:  []model.ShareEntry{},
		LikedBy:     []uint64{},
		Generation:  body.generation(),
		Version:     1,
	}
	m.NormalizeSteps()
	m.RecomputeProgress()

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Repo.Create(ctx, &m); err != nil {
		return internalError(c, err)
	}

	go func() {
		_ = service.PublishActivity(context.Background(), queue.ActivityEvent{
			Kind:         queue.ActivityRoadmapCreated,
			UserID:       u.ID,
			Username:     u.Username,
			RoadmapID:    m.ID,
			RoadmapTitle: m.Title,
			OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"roadmap": m})
}

// Update replaces the document wholesale.  Only the owner or an admin may
// replace a roadmap; an "edit" share grant does not extend this far.  Likes,
// shares, fork metadata and generation info survive the replacement.
func (h *RoadmapHandler) Update(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid roadmap id")
	}
	var body roadmapBody
	if err := c.Bind(&body); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}
	if ok, err := body.validate(c); !ok {
		return err
	}

	m, ok, err := h.load(c, id)
	if !ok {
		return err
	}
	if m.OwnerID != u.ID && u.Role != model.RoleAdmin {
		return httpx.Fail(c, http.StatusForbidden, httpx.CodeNotOwner, "only the owner can modify this roadmap")
	}

	m.Title = body.Title
	m.Description = strings.TrimSpace(body.Description)
	m.Topic = strings.TrimSpace(body.Topic)
	m.Difficulty = body.Difficulty
	m.Duration = body.Duration
	m.Steps = body.Steps
	m.Tags = body.Tags
	m.IsPublic = body.IsPublic
	m.Version++
	m.NormalizeSteps()
	m.RecomputeProgress()

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Repo.Save(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "roadmap not found")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"roadmap": m})
}

// Delete removes a roadmap.  Owner or admin only.
func (h *RoadmapHandler) Delete(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid roadmap id")
	}
	m, ok, err := h.load(c, id)
	if !ok {
		return err
	}
	if m.OwnerID != u.ID && u.Role != model.RoleAdmin {
		return httpx.Fail(c, http.StatusForbidden, httpx.CodeNotOwner, "only the owner can delete this roadmap")
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "roadmap not found")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "roadmap deleted"})
}
