package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillpath/skillpath/internal/generator"
	"github.com/skillpath/skillpath/internal/httpx"
	"github.com/skillpath/skillpath/internal/llm"
	"github.com/skillpath/skillpath/internal/middleware"
)

// GenerateHandler exposes roadmap generation: built-in templates, custom
// topic lists and AI-backed drafts.
type GenerateHandler struct {
	Gen *generator.Service
}

func NewGenerateHandler(g *generator.Service) *GenerateHandler {
	return &GenerateHandler{Gen: g}
}

// Templates lists the built-in roadmap templates.
func (h *GenerateHandler) Templates(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"templates": generator.Templates()})
}

// Generate produces a roadmap draft plus its graph layout.  The draft is
// returned to the client for review and is not persisted; saving it goes
// through the normal create endpoint.
func (h *GenerateHandler) Generate(c echo.Context) error {
	if _, ok := middleware.CurrentUser(c); !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	var req generator.Request
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}

	// AI calls can take well over the usual DB budget; rely on the client
	// connection context instead of the 5s timeout.
	draft, err := h.Gen.Generate(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, generator.ErrUnknownMode):
			return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
				"mode must be template, custom or ai", "mode")
		case errors.Is(err, generator.ErrTemplateNotFound):
			return httpx.FailField(c, http.StatusNotFound, httpx.CodeNotFound, "template not found", "templateId")
		case errors.Is(err, generator.ErrNoTopics):
			return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
				"at least one topic is required", "topics")
		case errors.Is(err, generator.ErrNoTopic):
			return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
				"topic is required", "topic")
		case errors.Is(err, llm.ErrNotConfigured):
			return httpx.Fail(c, http.StatusServiceUnavailable, httpx.CodeInternal,
				"AI generation is not configured on this server")
		case errors.Is(err, generator.ErrNoNodes), errors.Is(err, llm.ErrEmptyCompletion):
			return httpx.Fail(c, http.StatusBadGateway, httpx.CodeInternal,
				"the model returned an unusable response, please try again")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, draft)
}
