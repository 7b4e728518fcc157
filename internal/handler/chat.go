package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skillpath/skillpath/internal/chat"
	"github.com/skillpath/skillpath/internal/httpx"
	"github.com/skillpath/skillpath/internal/middleware"
)

// ChatHandler answers study questions about a roadmap step.  The responder
// is an interface so the keyword-template implementation can be swapped for
// an LLM-backed one without touching the handler.
type ChatHandler struct {
	Responder chat.Responder
}

func NewChatHandler(r chat.Responder) *ChatHandler {
	return &ChatHandler{Responder: r}
}

// Respond takes the conversation so far plus the step topic and returns the
// assistant's reply.  The conversation itself is not persisted server-side.
func (h *ChatHandler) Respond(c echo.Context) error {
	if _, ok := middleware.CurrentUser(c); !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	var req struct {
		Topic    string         `json:"topic"`
		Messages []chat.Message `json:"messages"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}
	if len(req.Messages) == 0 {
		return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"at least one message is required", "messages")
	}

	reply := h.Responder.Respond(req.Messages, strings.TrimSpace(req.Topic))
	return c.JSON(http.StatusOK, echo.Map{"reply": reply})
}
