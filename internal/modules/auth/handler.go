package auth

import (
	"errors"
	"net/http"

	"curtaincrm/internal/middleware"
	"curtaincrm/internal/pkg/response"
	"curtaincrm/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/profile", h.Profile)
}

// Register creates an account and signs it in.
// @Summary		Register a user
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"first_name, last_name, email, phone, password, role"
// @Success		201	{object}	map[string]interface{}	"User created, token issued"
// @Failure		400	{object}	map[string]interface{}	"Validation error or email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "User registered successfully", result)
}

// Login
// @Summary		Sign in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}	"Invalid email or password"
// @Failure		403	{object}	map[string]interface{}	"Account disabled"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account disabled")
		default:
			response.Internal(c, err)
		}
		return
	}

	response.Message(c, http.StatusOK, "Login successful", result)
}

// @Summary		Current user
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/profile [GET]
func (h *Handler) Profile(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}

	user, err := h.service.Profile(c.Request.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

const forgotPasswordMessage = "If an account exists for this email, a reset link has been sent"

// ForgotPassword answers the same way whether or not the email is known.
// @Summary		Request a password reset
// @Tags		Auth
// @Param		request	body	ForgotPasswordRequest	true	"email"
// @Success		200	{object}	map[string]interface{}
// @Failure		500	{object}	map[string]interface{}	"Reset email could not be sent"
// @Router		/auth/forgot-password [POST]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, ErrEmailDelivery) {
			response.Error(c, http.StatusInternalServerError, "EMAIL_DELIVERY_FAILED", "Could not send the reset email, try again later")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Message(c, http.StatusOK, forgotPasswordMessage, nil)
}

// @Summary		Reset password with a token
// @Tags		Auth
// @Param		request	body	ResetPasswordRequest	true	"token, newPassword"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"Invalid or expired token"
// @Router		/auth/reset-password [POST]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		if errors.Is(err, ErrInvalidResetToken) {
			response.Error(c, http.StatusBadRequest, "INVALID_RESET_TOKEN", "Invalid or expired reset token")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Password has been reset", nil)
}
