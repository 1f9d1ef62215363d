package user

import (
	"context"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/repository"
)

type UserRepository interface {
	List(ctx context.Context, f repository.UserFilters) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, id int64, patch repository.UserPatch) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}
