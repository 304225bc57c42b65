package compare

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lawdocs-backend/internal/documents"
	"lawdocs-backend/internal/shared/server/middleware"
	"lawdocs-backend/internal/shared/server/respond"
)

// CompareRequest names the two documents to compare.
type CompareRequest struct {
	Document1ID string `json:"document1Id"`
	Document2ID string `json:"document2Id"`
}

// StatusResponse reports whether the user's comparison is ready for chat.
type StatusResponse struct {
	Ready bool `json:"ready"`
}

// Handler exposes comparison endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches comparison routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/compare", h.compare)
	rg.GET("/compare/status", h.status)
}

func (h *Handler) compare(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	err := h.Svc.Compare(c.Request.Context(), userID, req.Document1ID, req.Document2ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSameDocument):
			respond.Error(c, http.StatusBadRequest, "validation_error", "select two different documents", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "compare_failed", err.Error(), nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, StatusResponse{Ready: true})
}

func (h *Handler) status(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	respond.JSON(c, http.StatusOK, StatusResponse{Ready: h.Svc.Ready(userID)})
}
