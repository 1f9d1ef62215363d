package middleware

import (
	"context"
	"net/http"

	"curtaincrm/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimit rejects requests over quota, keyed by client IP and route.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()
		if !l.Allow(c.Request.Context(), key) {
			logAuthFailure(c, http.StatusTooManyRequests, "rate_limited")
			response.Abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}
