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

// ToggleStep marks a single step complete or not complete and returns the
// recomputed progress.  Owners, admins and users with an "edit" share grant
// may toggle; read-only viewers may not.
func (h *RoadmapHandler) ToggleStep(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid roadmap id")
	}
	stepID := c.Param("stepId")
	if stepID == "" {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid step id")
	}
	var req struct {
		Completed bool `json:"isCompleted"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}

	m, ok, err := h.load(c, id)
	if !ok {
		return err
	}
	if !m.CanEdit(u.ID, u.Role == model.RoleAdmin) {
		return httpx.Fail(c, http.StatusForbidden, httpx.CodeForbidden, "you cannot modify this roadmap")
	}

	step := m.FindStep(stepID)
	if step == nil {
		return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "step not found")
	}
	step.Completed = req.Completed
	if req.Completed {
		now := time.Now().UTC()
		step.CompletedAt = &now
	} else {
		step.CompletedAt = nil
	}
	m.RecomputeProgress()

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Repo.Save(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "roadmap not found")
		}
		return internalError(c, err)
	}

	if req.Completed {
		go func(stepTitle string, pct int) {
			_ = service.PublishActivity(context.Background(), queue.ActivityEvent{
				Kind:         queue.ActivityStepCompleted,
				UserID:       u.ID,
				Username:     u.Username,
				RoadmapID:    m.ID,
				RoadmapTitle: m.Title,
				StepID:       stepID,
				StepTitle:    stepTitle,
				Percentage:   pct,
				OccurredAt:   time.Now().UTC().Format(time.RFC3339),
			})
		}(step.Title, m.Progress.Percentage)
	}

	return c.JSON(http.StatusOK, echo.Map{"step": *step, "progress": m.Progress})
}
