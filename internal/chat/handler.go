package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lawdocs-backend/internal/shared/server/middleware"
	"lawdocs-backend/internal/shared/server/respond"
	"lawdocs-backend/internal/shared/telemetry"
)

// AskRequest carries a chat prompt. The field name matches the payload the
// Q&A workflow itself speaks, so clients use one shape end to end.
type AskRequest struct {
	UserPrompt string `json:"user_prompt"`
}

// CivicAsker queries the civic-education workflow.
type CivicAsker interface {
	CivicAsk(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Handler exposes the chat and civic-education endpoints.
type Handler struct {
	Svc   *Service
	Civic CivicAsker
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, civic CivicAsker) *Handler {
	return &Handler{Svc: svc, Civic: civic}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.ask)
	rg.GET("/civic-education", h.civic)
}

// ask always answers 200; workflow failures come back as error-typed
// messages so the transcript keeps flowing.
func (h *Handler) ask(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	msg := h.Svc.Ask(c.Request.Context(), userID, req.UserPrompt)
	respond.JSON(c, http.StatusOK, msg)
}

func (h *Handler) civic(c *gin.Context) {
	prompt := strings.TrimSpace(c.Query("user_prompt"))
	if prompt == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_prompt is required", nil)
		return
	}

	raw, err := h.Civic.CivicAsk(c.Request.Context(), prompt)
	if err != nil {
		telemetry.Error("civic.workflow_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusBadGateway, "workflow_failed", "civic education workflow is unavailable", nil)
		return
	}

	answer, err := NormalizeCivic(raw)
	if err != nil {
		if errors.Is(err, ErrCivicShape) {
			telemetry.Error("civic.decode_failed", map[string]any{"payload_bytes": len(raw)})
			respond.Error(c, http.StatusBadGateway, "workflow_decode_failed", "civic education workflow returned an unrecognized response", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unable to process workflow response", nil)
		return
	}

	respond.JSON(c, http.StatusOK, answer)
}
