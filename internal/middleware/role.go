package middleware

import (
	"net/http"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles.
// It must run after JWTAuth.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			return
		}

		current, _ := role.(string)
		for _, r := range roles {
			if current == string(r) {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, response.CodeForbidden, "Access denied: insufficient permissions")
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
