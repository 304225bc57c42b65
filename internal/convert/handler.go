package convert

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"lawdocs-backend/internal/shared/server/respond"
	"lawdocs-backend/internal/shared/telemetry"
)

const maxConvertSize = 20 << 20 // 20MB

// Handler exposes the conversion service over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches conversion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/convert-document", h.convert)
}

func (h *Handler) convert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxConvertSize)

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
		c.JSON(http.StatusInternalServerError, Result{Success: false, Error: err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.Svc.Convert(c.Request.Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Result{Success: false, Error: err.Error()})
		return
	}

	telemetry.Info("convert.complete", map[string]any{
		"file_name":  fileHeader.Filename,
		"mime_type":  contentType,
		"size_bytes": fileHeader.Size,
		"text_chars": len(result.Text),
	})

	respond.JSON(c, http.StatusOK, result)
}
