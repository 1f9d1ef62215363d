package auth

import (
	"context"
	"time"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/pkg/mailer"
)

// UserRepository lists only the methods the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	SetResetToken(ctx context.Context, id int64, tokenHash string, expiry time.Time) error
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (int64, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}
