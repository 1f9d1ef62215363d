package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"curtaincrm/internal/database"
	"curtaincrm/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name), database.Options{
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Models()...))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role domain.UserRole) domain.Caller {
	t.Helper()

	u := &domain.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return domain.Caller{UserID: u.ID, Role: u.Role}
}

func seedProject(t *testing.T, db *gorm.DB, owner domain.Caller, ptype domain.ProjectType, city string) *domain.Project {
	t.Helper()

	p, err := NewProjectRepository(db).Create(context.Background(), owner, &domain.Project{
		ProjectType: ptype,
		ClientName:  "Client",
		ProjectName: "Living room",
		City:        city,
	})
	require.NoError(t, err)
	return p
}

func countRows(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()

	var n int64
	q := db.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }
