package auth

import "curtaincrm/internal/domain"

type RegisterRequest struct {
	FirstName string          `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string          `json:"last_name" binding:"required,min=2,max=100"`
	Email     string          `json:"email" binding:"required,email,max=191"`
	Phone     string          `json:"phone" binding:"omitempty,max=30,phone"`
	Password  string          `json:"password" binding:"required,min=6,max=72"`
	Role      domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}

type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
