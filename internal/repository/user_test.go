package repository

import (
	"context"
	"errors"
	"testing"

	"taskflowpro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeded := createTestUser(t, db, "alice", models.RoleAdmin)

	t.Run("Success", func(t *testing.T) {
		user, err := repo.GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.HasRole(models.RoleAdmin), "roles should be preloaded")
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
	})
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "bob", Email: "bob@example.com", Password: "x", Status: models.UserStatusActive}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.User{Username: "bob", Email: "other@example.com", Password: "x", Status: models.UserStatusActive}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}

func TestUserRepository_Search_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "CaseyJones")
	createTestUser(t, db, "morgan")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"lowercase query matches mixed-case username", "casey", []string{"CaseyJones"}},
		{"uppercase query matches lowercase username", "MORGAN", []string{"morgan"}},
		{"matches email domain", "example.com", []string{"CaseyJones", "morgan"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.Search(ctx, tt.query, 50, 0)
			require.NoError(t, err)
			var names []string
			for _, u := range users {
				names = append(names, u.Username)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}

func TestUserRepository_SetRoles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "drew", models.RoleUser)

	adminRole, err := repo.GetRoleByName(ctx, models.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, repo.SetRoles(ctx, user, []models.Role{*adminRole}))

	reloaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.HasRole(models.RoleAdmin))
	assert.False(t, reloaded.HasRole(models.RoleUser), "old role set should be replaced")
}

func TestUserRepository_GetByEmail_MissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}
