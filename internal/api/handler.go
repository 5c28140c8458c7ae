package api

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"plant-monitor-backend/internal/apperr"
	"plant-monitor-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger,
	}
}

// fail converts an application error into its HTTP response, logging it with
// the originating method and path first. Errors of unknown type map to 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.WriteError(err)
	}

	h.logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", ae.Status,
		"error", ae.Message,
	)

	if len(ae.Fields) > 0 {
		c.AbortWithStatusJSON(ae.Status, gin.H{"errors": ae.Fields})
		return
	}
	c.AbortWithStatusJSON(ae.Status, gin.H{"message": ae.Message})
}

// bindPayload decodes the request body into a raw payload map for the
// validation layer.
func bindPayload(c *gin.Context) (map[string]any, error) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.BadRequest("invalid request body")
	}
	return payload, nil
}
