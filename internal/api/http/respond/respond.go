// Package respond writes JSON error bodies from classified errors.
package respond

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
)

// Error logs err with the request id and aborts with the public shape
// {"ok": false, "error": <code>, "request_id": <id>}. Only BadRequest
// carries a message; internal detail stays in the log.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	rid := c.GetString("request_id")

	attrs := []any{
		"request_id", rid,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"kind", kind.String(),
		"error", err,
	}
	switch kind {
	case apperr.Internal, apperr.Configuration:
		slog.Error("request failed", attrs...)
	case apperr.Timeout:
		slog.Warn("request timed out", attrs...)
	default:
		slog.Debug("request rejected", attrs...)
	}

	body := gin.H{"ok": false, "error": kind.Code(), "request_id": rid}
	if msg := apperr.PublicMessage(err); msg != "" {
		body["message"] = msg
	}
	if kind.Retryable() {
		c.Header("Retry-After", "1")
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), body)
}
