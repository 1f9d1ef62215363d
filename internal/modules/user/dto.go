package user

import "curtaincrm/internal/domain"

type ListQuery struct {
	Role     domain.UserRole `form:"role" binding:"omitempty,oneof=ADMIN USER"`
	IsActive *bool           `form:"is_active"`
}

type UpdateUserRequest struct {
	FirstName *string          `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName  *string          `json:"last_name" binding:"omitempty,min=2,max=100"`
	Email     *string          `json:"email" binding:"omitempty,email,max=191"`
	Phone     *string          `json:"phone" binding:"omitempty,max=30,phone"`
	Role      *domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN USER"`
	IsActive  *bool            `json:"is_active"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}
