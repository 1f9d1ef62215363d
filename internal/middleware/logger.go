package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"curtaincrm/internal/pkg/logging"
	"curtaincrm/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorLogger logs handler errors and recovers from panics with a generic
// 500 response.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logRequestError(c, start, "panic", fmt.Sprintf("%v", recovered), debug.Stack())
				if !c.Writer.Written() {
					response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error")
				}
				c.Abort()
				return
			}

			for _, err := range c.Errors {
				logRequestError(c, start, fmt.Sprintf("%v", err.Type), err.Error(), nil)
			}
		}()

		c.Next()
	}
}

// RequestLogger emits one http_request record per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logging.FromContext(c.Request.Context()).Log(c.Request.Context(), level, "http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_id", c.GetInt64(ContextUserID),
		)
	}
}

func logRequestError(c *gin.Context, start time.Time, errType string, message string, stack []byte) {
	attrs := []any{
		"type", errType,
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"query", c.Request.URL.RawQuery,
		"client_ip", c.ClientIP(),
		"user_id", c.GetInt64(ContextUserID),
		"role", c.GetString(ContextRole),
		"latency", time.Since(start).String(),
		"error", message,
	}
	if stack != nil {
		attrs = append(attrs, "stack", string(stack))
	}
	logging.FromContext(c.Request.Context()).Error("request_error", attrs...)
}
