package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/pkg/logging"
	"curtaincrm/internal/repository"
)

const dummyPassword = "curtaincrm-dummy-password"

type Options struct {
	BcryptCost       int
	ResetTokenTTL    time.Duration
	ResetTokenPepper string
	FrontendURL      string
}

// Service contains all business logic for authentication
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	mailer Mailer
	opts   Options
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewService(users UserRepository, tokens TokenIssuer, mailer Mailer, opts Options) *Service {
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = time.Hour
	}
	return &Service{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		opts:   opts,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := HashPassword(req.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	// Registration succeeds even if the welcome email cannot be delivered.
	if msg, err := welcomeEmail(user); err == nil {
		if err := s.mailer.Send(ctx, msg); err != nil {
			logging.FromContext(ctx).Warn("welcome_email_failed", "user_id", user.ID, "error", err)
		}
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike, and spends the same bcrypt work on both paths.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			CheckPassword(s.dummy(), req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ForgotPassword issues a reset token for a known email. Unknown emails are
// not an error.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logging.FromContext(ctx).Info("password_reset_unknown_email")
			return nil
		}
		return err
	}

	token, hash, expiry, err := NewResetToken(s.now(), s.opts.ResetTokenTTL, s.opts.ResetTokenPepper)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.users.SetResetToken(ctx, user.ID, hash, expiry); err != nil {
		return err
	}

	msg, err := resetEmail(user, resetURL(s.opts.FrontendURL, token), s.opts.ResetTokenTTL.String())
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		logging.FromContext(ctx).Error("password_reset_email_failed", "user_id", user.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	hash, err := HashPassword(req.NewPassword, s.opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tokenHash := HashResetToken(strings.TrimSpace(req.Token), s.opts.ResetTokenPepper)
	userID, err := s.users.ConsumeResetToken(ctx, tokenHash, s.now(), hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	logging.FromContext(ctx).Info("password_reset", "user_id", userID)
	return nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = HashPassword(dummyPassword, s.opts.BcryptCost)
	})
	return s.dummyHash
}
