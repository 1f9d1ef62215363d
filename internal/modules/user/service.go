package user

import (
	"context"
	"errors"
	"fmt"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/modules/auth"
	"curtaincrm/internal/repository"
)

type Service struct {
	users      UserRepository
	bcryptCost int
}

func NewService(users UserRepository, bcryptCost int) *Service {
	return &Service{users: users, bcryptCost: bcryptCost}
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.User, error) {
	return s.users.List(ctx, repository.UserFilters{Role: q.Role, IsActive: q.IsActive})
}

// Get returns the account with id. Non-admin callers only see themselves;
// anything else reads as not found.
func (s *Service) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.User, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, ErrNotFound
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	patch := repository.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		IsActive:  req.IsActive,
	}
	if len(patch.Columns()) == 0 {
		return nil, ErrNoFields
	}

	if req.Email != nil {
		taken, err := s.users.ExistsByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailAlreadyExists
		}
	}

	u, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	if caller.UserID == id {
		return ErrSelfDelete
	}
	return mapRepoErr(s.users.Delete(ctx, id))
}

// ChangePassword sets a new password for id. Admins may do it for any account
// without the current password; everyone else only for themselves and only
// with it.
func (s *Service) ChangePassword(ctx context.Context, caller domain.Caller, id int64, req ChangePasswordRequest) error {
	if !caller.IsAdmin() && caller.UserID != id {
		return ErrNotFound
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return mapRepoErr(err)
	}

	if !caller.IsAdmin() {
		if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
			return ErrWrongPassword
		}
	}

	hash, err := auth.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return mapRepoErr(s.users.UpdatePassword(ctx, id, hash))
}

func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrEmailAlreadyExists
	case errors.Is(err, repository.ErrNoFields):
		return ErrNoFields
	default:
		return err
	}
}
