package middleware

import (
	"log/slog"
	"strings"

	"curtaincrm/internal/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader   = "X-Request-Id"
	ContextRequestID  = "request_id"
	maxRequestIDBytes = 128
)

// RequestID propagates an incoming request id or generates one, echoes it in
// the response and stores a logger carrying it in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDBytes {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set(ContextRequestID, id)

		logger := slog.Default().With("request_id", id)
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), logger))
		c.Next()
	}
}
