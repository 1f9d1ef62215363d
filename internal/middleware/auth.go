package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/pkg/jwt"
	"curtaincrm/internal/pkg/logging"
	"curtaincrm/internal/pkg/response"
	"curtaincrm/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextUser   = "user"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWTAuth authenticates a bearer token and loads the account behind it. The
// role comes from storage, so role changes and deactivation apply to tokens
// that are already issued.
func JWTAuth(tokens TokenValidator, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(c, http.StatusUnauthorized, "missing_auth")
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Access token required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			logAuthFailure(c, http.StatusUnauthorized, "invalid_auth_format")
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				logAuthFailure(c, http.StatusForbidden, "token_expired")
				response.Abort(c, http.StatusForbidden, "TOKEN_EXPIRED", "Token expired")
				return
			}
			logAuthFailure(c, http.StatusForbidden, "invalid_token")
			response.Abort(c, http.StatusForbidden, "INVALID_TOKEN", "Invalid token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logAuthFailure(c, http.StatusNotFound, "user_not_found")
				response.Abort(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
				return
			}
			response.Internal(c, err)
			c.Abort()
			return
		}

		if !user.IsActive {
			logAuthFailure(c, http.StatusForbidden, "account_disabled")
			response.Abort(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account disabled")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, string(user.Role))
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentCaller returns the identity JWTAuth stored on the context.
func CurrentCaller(c *gin.Context) (domain.Caller, bool) {
	id := c.GetInt64(ContextUserID)
	if id == 0 {
		return domain.Caller{}, false
	}
	return domain.Caller{UserID: id, Role: domain.UserRole(c.GetString(ContextRole))}, true
}

func logAuthFailure(c *gin.Context, status int, reason string) {
	logging.FromContext(c.Request.Context()).Info("auth_failure",
		"status", status,
		"reason", reason,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
	)
}
