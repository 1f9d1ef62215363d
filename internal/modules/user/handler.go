package user

import (
	"errors"
	"net/http"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/middleware"
	"curtaincrm/internal/pkg/response"
	"curtaincrm/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("", middleware.AdminOnly(), h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", middleware.AdminOnly(), h.Update)
		users.DELETE("/:id", middleware.AdminOnly(), h.Delete)
		users.PUT("/:id/change-password", h.ChangePassword)
	}
}

// @Summary		List users
// @Tags		Users
// @Security	BearerAuth
// @Param		role		query	string	false	"ADMIN or USER"
// @Param		is_active	query	bool	false	"filter by status"
// @Success		200	{object}	map[string]interface{}
// @Router		/users [GET]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	users, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.List(c, users, len(users))
}

// @Summary		Get a user
// @Tags		Users
// @Security	BearerAuth
// @Router		/users/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	caller, id, ok := h.callerAndID(c)
	if !ok {
		return
	}

	u, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// @Summary		Update a user
// @Tags		Users
// @Security	BearerAuth
// @Param		request	body	UpdateUserRequest	true	"fields to change"
// @Router		/users/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	_, id, ok := h.callerAndID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User updated successfully", u)
}

// @Summary		Delete a user
// @Tags		Users
// @Security	BearerAuth
// @Router		/users/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	caller, id, ok := h.callerAndID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User deleted successfully", nil)
}

// @Summary		Change a password
// @Tags		Users
// @Security	BearerAuth
// @Param		request	body	ChangePasswordRequest	true	"currentPassword, newPassword"
// @Router		/users/{id}/change-password [PUT]
func (h *Handler) ChangePassword(c *gin.Context) {
	caller, id, ok := h.callerAndID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}
	if !caller.IsAdmin() && req.CurrentPassword == "" {
		response.ValidationError(c, map[string]string{"currentPassword": "is required"})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), caller, id, req); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) callerAndID(c *gin.Context) (caller domain.Caller, id int64, ok bool) {
	caller, ok = middleware.CurrentCaller(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return caller, 0, false
	}
	id, ok = validator.PathID(c, "id")
	if !ok {
		response.ValidationError(c, map[string]string{"id": "must be a positive integer"})
		return caller, 0, false
	}
	return caller, id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "This email is already used by another account")
	case errors.Is(err, ErrNoFields):
		response.Error(c, http.StatusBadRequest, "NO_FIELDS", "No fields to update")
	case errors.Is(err, ErrSelfDelete):
		response.Error(c, http.StatusForbidden, "SELF_DELETE", "You cannot delete your own account")
	case errors.Is(err, ErrWrongPassword):
		response.Error(c, http.StatusUnauthorized, "WRONG_PASSWORD", "Current password is incorrect")
	default:
		response.Internal(c, err)
	}
}
