package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillpath/skillpath/internal/httpx"
	"github.com/skillpath/skillpath/internal/middleware"
	"github.com/skillpath/skillpath/internal/model"
	"github.com/skillpath/skillpath/internal/queue"
	"github.com/skillpath/skillpath/internal/repository"
	"github.com/skillpath/skillpath/internal/service"
)

// Like toggles the caller's like on a roadmap they can view.
func (h *RoadmapHandler) Like(c echo.Context) error {
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
	if !m.CanView(u.ID, u.Role == model.RoleAdmin) {
		return httpx.Fail(c, http.StatusForbidden, httpx.CodeForbidden, "you do not have access to this roadmap")
	}

	liked := m.ToggleLike(u.ID)

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Repo.Save(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "roadmap not found")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "likeCount": len(m.LikedBy)})
}

// Fork copies a viewable roadmap into the caller's collection.  The copy is
// private, its steps start incomplete and it records where it came from.
func (h *RoadmapHandler) Fork(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid roadmap id")
	}
	src, ok, err := h.load(c, id)
	if !ok {
		return err
	}
	if !src.CanView(u.ID, u.Role == model.RoleAdmin) {
		return httpx.Fail(c, http.StatusForbidden, httpx.CodeForbidden, "you do not have access to this roadmap")
	}

	steps := make([]model.Step, len(src.Steps))
	copy(steps, src.Steps)
	for i := range steps {
		steps[i].Completed = false
		steps[i].CompletedAt = nil
	}

	fork := model.Roadmap{
		OwnerID:     u.ID,
		Title:       src.Title,
		Description: src.Description,
		Topic:       src.Topic,
		Difficulty:  src.Difficulty,
		Duration:    src.Duration,
		Steps:       steps,
		Tags:        append([]string{}, src.Tags...),
		IsPublic:    false,
		SharedWith:  []model.ShareEntry{},
		LikedBy:     []uint64{},
		Fork:        &model.ForkInfo{OriginalID: src.ID, ForkedBy: u.ID, ForkedAt: time.Now().UTC()},
		Generation:  src.Generation,
		Version:     1,
	}
	fork.RecomputeProgress()

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Repo.Create(ctx, &fork); err != nil {
		return internalError(c, err)
	}

	go func() {
		_ = service.PublishActivity(context.Background(), queue.ActivityEvent{
			Kind:         queue.ActivityRoadmapForked,
			UserID:       u.ID,
			Username:     u.Username,
			RoadmapID:    fork.ID,
			RoadmapTitle: fork.Title,
			OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"roadmap": fork})
}

// Share grants another user view or edit access to a private roadmap.
// Sharing with a user who already has a grant updates the permission.
func (h *RoadmapHandler) Share(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid roadmap id")
	}
	var req struct {
		UserID     uint64 `json:"userId"`
		Permission string `json:"permission"`
	}
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "userId is required")
	}
	if req.Permission == "" {
		req.Permission = model.PermissionView
	}
	if req.Permission != model.PermissionView && req.Permission != model.PermissionEdit {
		return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"permission must be view or edit", "permission")
	}

	m, ok, err := h.load(c, id)
	if !ok {
		return err
	}
	if m.OwnerID != u.ID && u.Role != model.RoleAdmin {
		return httpx.Fail(c, http.StatusForbidden, httpx.CodeNotOwner, "only the owner can share this roadmap")
	}
	if req.UserID == m.OwnerID {
		return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"the owner already has full access", "userId")
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return httpx.FailField(c, http.StatusNotFound, httpx.CodeNotFound, "user not found", "userId")
		}
		return internalError(c, err)
	}

	updated := false
	for i := range m.SharedWith {
		if m.SharedWith[i].UserID == req.UserID {
			m.SharedWith[i].Permission = req.Permission
			updated = true
			break
		}
	}
	if !updated {
		m.SharedWith = append(m.SharedWith, model.ShareEntry{UserID: req.UserID, Permission: req.Permission})
	}

	if err := h.Repo.Save(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "roadmap not found")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sharedWith": m.SharedWith})
}

// Unshare revokes a user's access grant.  Revoking a grant that does not
// exist is a no-op so the call is idempotent.
func (h *RoadmapHandler) Unshare(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid roadmap id")
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid user id")
	}

	m, ok, err := h.load(c, id)
	if !ok {
		return err
	}
	if m.OwnerID != u.ID && u.Role != model.RoleAdmin {
		return httpx.Fail(c, http.StatusForbidden, httpx.CodeNotOwner, "only the owner can share this roadmap")
	}

	kept := m.SharedWith[:0]
	for _, e := range m.SharedWith {
		if e.UserID != targetID {
			kept = append(kept, e)
		}
	}
	m.SharedWith = kept

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Repo.Save(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "roadmap not found")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sharedWith": m.SharedWith})
}
