package repository

import (
	"context"
	"testing"

	"curtaincrm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_CreateForcesOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)
	bob := seedUser(t, db, "bob@example.com", domain.RoleUser)

	p, err := repo.Create(context.Background(), alice, &domain.Project{
		OwnerUserID: bob.UserID,
		ProjectType: domain.ProjectTypeCurtain,
		ClientName:  " Dupont ",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, p.OwnerUserID)
	assert.Equal(t, "Dupont", p.ClientName)
	require.NotNil(t, p.Owner)
	assert.Equal(t, "alice@example.com", p.Owner.Email)
}

func TestProjectRepository_FindIsScoped(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)
	bob := seedUser(t, db, "bob@example.com", domain.RoleUser)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	p := seedProject(t, db, alice, domain.ProjectTypeCurtain, "Paris")

	_, err := repo.FindByID(ctx, p.ID, bob)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(ctx, p.ID+100, alice)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.FindByID(ctx, p.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got, err = repo.FindByID(ctx, p.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, got.OwnerUserID)
}

func TestProjectRepository_ListScopeAndFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)
	bob := seedUser(t, db, "bob@example.com", domain.RoleUser)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)

	p1 := seedProject(t, db, alice, domain.ProjectTypeCurtain, "Paris")
	p2 := seedProject(t, db, alice, domain.ProjectTypeWallpaper, "Marseille")
	seedProject(t, db, bob, domain.ProjectTypeCurtain, "Paris")

	mine, err := repo.List(ctx, alice, ProjectFilters{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, p2.ID, mine[0].ID, "newest first")
	assert.Equal(t, p1.ID, mine[1].ID)
	for _, p := range mine {
		assert.Equal(t, alice.UserID, p.OwnerUserID)
		require.NotNil(t, p.Owner)
	}

	all, err := repo.List(ctx, admin, ProjectFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCity, err := repo.List(ctx, admin, ProjectFilters{City: "pAR"})
	require.NoError(t, err)
	assert.Len(t, byCity, 2)

	byType, err := repo.List(ctx, alice, ProjectFilters{Type: domain.ProjectTypeWallpaper})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, p2.ID, byType[0].ID)

	none, err := repo.List(ctx, bob, ProjectFilters{City: "Marseille"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProjectRepository_CityFilterIsLiteral(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)

	seedProject(t, db, alice, domain.ProjectTypeCurtain, "")
	seedProject(t, db, alice, domain.ProjectTypeCurtain, "Lyon")
	odd := seedProject(t, db, alice, domain.ProjectTypeCurtain, "Zone_50%!")

	for _, needle := range []string{"%", "_", "!", "50%", "e_5"} {
		got, err := repo.List(ctx, alice, ProjectFilters{City: needle})
		require.NoError(t, err, needle)
		require.Len(t, got, 1, "needle %q", needle)
		assert.Equal(t, odd.ID, got[0].ID, "needle %q", needle)
	}

	none, err := repo.List(ctx, alice, ProjectFilters{City: "L_on"})
	require.NoError(t, err)
	assert.Empty(t, none, "underscore is not a single-character wildcard")
}

func TestProjectRepository_EmptyPatchOnHiddenProject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)
	bob := seedUser(t, db, "bob@example.com", domain.RoleUser)
	p := seedProject(t, db, alice, domain.ProjectTypeCurtain, "Paris")

	_, err := repo.Update(ctx, p.ID, bob, ProjectPatch{})
	assert.ErrorIs(t, err, ErrNotFound, "another user's project must not be distinguishable")

	_, err = repo.Update(ctx, p.ID+1000, alice, ProjectPatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(ctx, p.ID, alice, ProjectPatch{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestProjectRepository_Stats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)
	bob := seedUser(t, db, "bob@example.com", domain.RoleUser)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)

	seedProject(t, db, alice, domain.ProjectTypeCurtain, "Paris")
	seedProject(t, db, alice, domain.ProjectTypeCurtain, "Nice")
	seedProject(t, db, alice, domain.ProjectTypeWallpaper, "Nice")
	seedProject(t, db, bob, domain.ProjectTypeWallpaper, "Lille")

	stats, err := repo.Stats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStats{Total: 3, Curtains: 2, Wallpapers: 1}, *stats)

	stats, err = repo.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStats{Total: 4, Curtains: 2, Wallpapers: 2}, *stats)
}

func TestProjectRepository_StatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)

	stats, err := NewProjectRepository(db).Stats(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStats{}, *stats)
}

func TestProjectRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)
	bob := seedUser(t, db, "bob@example.com", domain.RoleUser)
	p := seedProject(t, db, alice, domain.ProjectTypeCurtain, "Paris")

	_, err := repo.Update(ctx, p.ID, alice, ProjectPatch{})
	assert.ErrorIs(t, err, ErrNoFields)

	_, err = repo.Update(ctx, p.ID, bob, ProjectPatch{City: ptr("Lyon")})
	assert.ErrorIs(t, err, ErrNotFound)

	unchanged, err := repo.FindByID(ctx, p.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Paris", unchanged.City)

	got, err := repo.Update(ctx, p.ID, alice, ProjectPatch{City: ptr("Lyon"), Responsible: ptr("Karim")})
	require.NoError(t, err)
	assert.Equal(t, "Lyon", got.City)
	assert.Equal(t, "Karim", got.Responsible)
	assert.Equal(t, "Client", got.ClientName, "fields not in the patch keep their value")
}

func TestProjectRepository_TypeLockedOnceSpacesExist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	spaces := NewSpaceRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)
	p := seedProject(t, db, alice, domain.ProjectTypeCurtain, "Paris")

	got, err := repo.Update(ctx, p.ID, alice, ProjectPatch{ProjectType: ptr(domain.ProjectTypeWallpaper)})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectTypeWallpaper, got.ProjectType)

	_, err = spaces.Create(ctx, alice, p.ID, "Bedroom", nil)
	require.NoError(t, err)

	_, err = repo.Update(ctx, p.ID, alice, ProjectPatch{ProjectType: ptr(domain.ProjectTypeCurtain)})
	assert.ErrorIs(t, err, ErrProjectTypeLocked)

	_, err = repo.Update(ctx, p.ID, alice, ProjectPatch{ProjectType: ptr(domain.ProjectTypeWallpaper), City: ptr("Nantes")})
	require.NoError(t, err, "setting the current type is allowed")
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	spaces := NewSpaceRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com", domain.RoleUser)
	bob := seedUser(t, db, "bob@example.com", domain.RoleUser)
	p := seedProject(t, db, alice, domain.ProjectTypeCurtain, "Paris")

	for _, name := range []string{"Living room", "Kitchen"} {
		_, err := spaces.Create(ctx, alice, p.ID, name, &domain.SpaceDetails{
			Curtains: []domain.CurtainDetail{{Width: ptr(2.4)}, {Width: ptr(1.2)}},
		})
		require.NoError(t, err)
	}
	require.Equal(t, int64(4), countRows(t, db, &curtainDetailModel{}, ""))

	assert.ErrorIs(t, repo.Delete(ctx, p.ID, bob), ErrNotFound)
	assert.Equal(t, int64(1), countRows(t, db, &projectModel{}, ""))

	require.NoError(t, repo.Delete(ctx, p.ID, alice))
	assert.Equal(t, int64(0), countRows(t, db, &projectModel{}, ""))
	assert.Equal(t, int64(0), countRows(t, db, &spaceModel{}, ""))
	assert.Equal(t, int64(0), countRows(t, db, &curtainDetailModel{}, ""))

	assert.ErrorIs(t, repo.Delete(ctx, p.ID, alice), ErrNotFound)
}
