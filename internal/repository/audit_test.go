package repository

import (
	"context"
	"testing"

	"taskflowpro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogRepository_ListByEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	moderator := createTestUser(t, db, "mod", models.RoleAdmin)

	entries := []*models.AuditLog{
		{ActorID: moderator.ID, Action: "post.flag", EntityType: "post", EntityID: 5, Detail: "spam suspicion"},
		{ActorID: moderator.ID, Action: "post.approve", EntityType: "post", EntityID: 5},
		{ActorID: moderator.ID, Action: "post.reject", EntityType: "post", EntityID: 6, Detail: "off topic"},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}

	history, err := repo.ListByEntity(ctx, "post", 5, 50, 0)
	require.NoError(t, err)
	require.Len(t, history, 2, "history is scoped to one entity")
	assert.Equal(t, "post.flag", history[0].Action, "history reads oldest first")
	assert.Equal(t, "post.approve", history[1].Action)

	all, err := repo.List(ctx, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
