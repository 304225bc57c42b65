package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"lawdocs-backend/internal/chat"
	"lawdocs-backend/internal/compare"
	"lawdocs-backend/internal/convert"
	"lawdocs-backend/internal/documents"
	"lawdocs-backend/internal/shared/config"
	"lawdocs-backend/internal/shared/metrics"
	"lawdocs-backend/internal/shared/server/middleware"
	"lawdocs-backend/internal/shared/server/respond"
	"lawdocs-backend/internal/shared/storage/object"
)

// Deps carries the handlers and shared dependencies the router wires up.
type Deps struct {
	Config           config.Config
	Store            object.ObjectStore
	DocumentsHandler *documents.Handler
	ConvertHandler   *convert.Handler
	CompareHandler   *compare.Handler
	ChatHandler      *chat.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.Store != nil {
		r.GET("/files/*key", serveFile(deps.Store))
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authed := api.Group("")
	authed.Use(
		middleware.Auth(),
		middleware.RateLimit(rateLimitConfig()),
	)

	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(authed)
	}
	if deps.ConvertHandler != nil {
		deps.ConvertHandler.RegisterRoutes(authed)
	}
	if deps.CompareHandler != nil {
		deps.CompareHandler.RegisterRoutes(authed)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(authed)
	}

	return r
}

// rateLimitConfig throttles the workflow-relay endpoints harder than the
// CRUD surface; each chat or compare call fans out to a hosted AI workflow.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.GroupDefault:  {Rate: 10, Burst: 20},
			middleware.GroupWorkflow: {Rate: 1, Burst: 5},
		},
		DefaultGroup: middleware.GroupDefault,
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			if strings.HasPrefix(path, "/api/v1/chat") ||
				strings.HasPrefix(path, "/api/v1/compare") ||
				strings.HasPrefix(path, "/api/v1/civic-education") {
				return middleware.GroupWorkflow
			}
			return middleware.GroupDefault
		},
	}
}

func serveFile(store object.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			respond.Error(c, http.StatusBadRequest, "validation_error", "missing file key", nil)
			return
		}

		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "storage_error", "unable to read file", nil)
			return
		}
		defer rc.Close()

		contentType := mime.TypeByExtension(filepath.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, rc)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
