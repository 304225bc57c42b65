package documents

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lawdocs-backend/internal/shared/server/middleware"
	"lawdocs-backend/internal/shared/server/respond"
	"lawdocs-backend/internal/shared/telemetry"
)

const maxUploadSize = 20 << 20 // 20MB

// Handler exposes document endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.DELETE("/documents/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	name := c.PostForm("name")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	progress := func(step string, percent int) {
		c.Set("uploadStep", step)
		telemetry.Info("upload.progress", map[string]any{
			"request_id": c.GetString("requestId"),
			"user_id":    userID,
			"step":       step,
			"percent":    percent,
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.Svc.Upload(c.Request.Context(), userID, name, fileHeader.Filename, contentType, data, progress)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", err.Error(), nil)
		case errors.Is(err, ErrConversionFailed):
			respond.Error(c, http.StatusUnprocessableEntity, "conversion_failed", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "upload_failed", err.Error(), nil)
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, UploadResponse{Document: toResponse(doc), Progress: 100})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	limit := parseIntDefault(c.Query("limit"), 20)
	offset := parseIntDefault(c.Query("offset"), 0)

	docs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "list_failed", "unable to list documents", nil)
		return
	}

	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	respond.JSON(c, http.StatusOK, ListResponse{Documents: out, Limit: limit, Offset: offset})
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	documentID := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), userID, documentID); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "delete_failed", "unable to delete document", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
