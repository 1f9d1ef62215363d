package repository

import (
	"context"
	"fmt"
	"time"

	"curtaincrm/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type UserFilters struct {
	Role     domain.UserRole
	IsActive *bool
}

func toDomainUser(m userModel) *domain.User {
	var phone, resetToken string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.ResetToken != nil {
		resetToken = *m.ResetToken
	}

	return &domain.User{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            phone,
		PasswordHash:     m.PasswordHash,
		Role:             domain.UserRole(m.Role),
		IsActive:         m.IsActive,
		ResetTokenHash:   resetToken,
		ResetTokenExpiry: m.ResetTokenExpiry,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}

	return userModel{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            normalizeEmail(u.Email),
		Phone:            nullableString(u.Phone),
		PasswordHash:     u.PasswordHash,
		Role:             string(role),
		IsActive:         u.IsActive,
		ResetToken:       nullableString(u.ResetTokenHash),
		ResetTokenExpiry: u.ResetTokenExpiry,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if isUniqueConstraintError(tx.Error) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", tx.Error)
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		First(&m)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainUser(m), nil
}

// ExistsByEmail reports whether another account already uses email.
// excludeID is ignored when zero.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&userModel{}).Where("LOWER(email) = ?", normalizeEmail(email))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context, f UserFilters) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})
	if f.Role != "" {
		q = q.Where("role = ?", string(f.Role))
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var rows []userModel
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil, ErrNoFields
	}

	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(cols)
	if tx.Error != nil {
		if isUniqueConstraintError(tx.Error) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update user: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).
		Update("password_hash", passwordHash)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id int64, tokenHash string, expiry time.Time) error {
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(map[string]any{
		"reset_token":        tokenHash,
		"reset_token_expiry": expiry,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken sets a new password for the account holding an unexpired
// reset token and clears the token in the same statement, so a token can be
// used once. It returns the id of the updated user.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (int64, error) {
	var userID int64
	err := r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var m userModel
		if err := tx.Select("id").
			Where("reset_token = ? AND reset_token_expiry > ?", tokenHash, now).
			Take(&m).Error; err != nil {
			return notFound(err)
		}

		res := tx.Model(&userModel{}).
			Where("id = ? AND reset_token = ?", m.ID, tokenHash).
			Updates(map[string]any{
				"password_hash":      passwordHash,
				"reset_token":        nil,
				"reset_token_expiry": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrNotFound
		}
		userID = m.ID
		return nil
	})
	return userID, err
}

// ClearExpiredResetTokens drops reset tokens whose validity ended before now.
func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry < ?", now).
		Updates(map[string]any{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	return tx.RowsAffected, tx.Error
}
