package service

import (
	"context"
	"testing"

	"taskflowpro/internal/models"
	"taskflowpro/internal/moderation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_Decide(t *testing.T) {
	ctx := context.Background()
	admin := adminUser(1, "mod")
	user := regularUser(2, "author")

	newDraft := func() *models.Post {
		return &models.Post{ID: 10, UserID: user.ID, Status: models.PostStatusDraft}
	}

	t.Run("non-moderator forbidden", func(t *testing.T) {
		svc := NewModerationService(noopPostRepo(), noopAuditRepo(), nil)
		_, err := svc.Decide(ctx, user, 10, moderation.DecisionApprove, "")
		assertAppErrorCode(t, err, models.ErrCodeForbidden)
	})

	t.Run("approve publishes and records audit entry", func(t *testing.T) {
		post := newDraft()
		repo := noopPostRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.Post, error) { return post, nil }
		saved := false
		repo.updateFn = func(context.Context, *models.Post) error {
			saved = true
			return nil
		}
		audit := noopAuditRepo()
		var entry *models.AuditLog
		audit.createFn = func(_ context.Context, e *models.AuditLog) error {
			entry = e
			return nil
		}

		svc := NewModerationService(repo, audit, nil)
		got, err := svc.Decide(ctx, admin, post.ID, moderation.DecisionApprove, "looks fine")
		require.NoError(t, err)

		assert.True(t, saved)
		assert.Equal(t, models.PostStatusPublished, got.Status)
		require.NotNil(t, got.ModeratedBy)
		assert.Equal(t, admin.ID, *got.ModeratedBy)
		assert.NotNil(t, got.ModeratedAt)

		require.NotNil(t, entry)
		assert.Equal(t, "post.approve", entry.Action)
		assert.Equal(t, "post", entry.EntityType)
		assert.Equal(t, post.ID, entry.EntityID)
	})

	t.Run("reject without notes leaves post untouched", func(t *testing.T) {
		post := newDraft()
		repo := noopPostRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.Post, error) { return post, nil }
		saved := false
		repo.updateFn = func(context.Context, *models.Post) error {
			saved = true
			return nil
		}

		svc := NewModerationService(repo, noopAuditRepo(), nil)
		_, err := svc.Decide(ctx, admin, post.ID, moderation.DecisionReject, "   ")
		assertAppErrorCode(t, err, models.ErrCodeValidation)

		assert.False(t, saved, "nothing is persisted on a failed decision")
		assert.Equal(t, models.PostStatusDraft, post.Status)
		assert.Nil(t, post.ModeratedBy)
	})

	t.Run("flag requires notes and records them", func(t *testing.T) {
		post := newDraft()
		repo := noopPostRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.Post, error) { return post, nil }
		repo.updateFn = func(context.Context, *models.Post) error { return nil }

		svc := NewModerationService(repo, noopAuditRepo(), nil)
		got, err := svc.Decide(ctx, admin, post.ID, moderation.DecisionFlag, "  possible spam  ")
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusFlagged, got.Status)
		assert.Equal(t, "possible spam", got.ModerationNotes, "notes are trimmed")
	})

	t.Run("decision survives audit write failure", func(t *testing.T) {
		post := newDraft()
		repo := noopPostRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.Post, error) { return post, nil }
		repo.updateFn = func(context.Context, *models.Post) error { return nil }
		audit := noopAuditRepo()
		audit.createFn = func(context.Context, *models.AuditLog) error {
			return models.NewInternalError(assert.AnError)
		}

		svc := NewModerationService(repo, audit, nil)
		got, err := svc.Decide(ctx, admin, post.ID, moderation.DecisionApprove, "")
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusPublished, got.Status)
	})
}

func TestModerationService_QueueAccess(t *testing.T) {
	ctx := context.Background()
	admin := adminUser(1, "mod")
	user := regularUser(2, "author")

	repo := noopPostRepo()
	repo.moderationQueueFn = func(context.Context, int, int) ([]*models.Post, error) {
		return []*models.Post{{ID: 1, Status: models.PostStatusDraft}}, nil
	}
	svc := NewModerationService(repo, noopAuditRepo(), nil)

	_, err := svc.Queue(ctx, user, 50, 0)
	assertAppErrorCode(t, err, models.ErrCodeForbidden)

	queue, err := svc.Queue(ctx, admin, 50, 0)
	require.NoError(t, err)
	assert.Len(t, queue, 1)
}

func TestModerationService_History(t *testing.T) {
	ctx := context.Background()
	admin := adminUser(1, "mod")

	audit := noopAuditRepo()
	audit.listByEntityFn = func(_ context.Context, entityType string, entityID uint, _, _ int) ([]models.AuditLog, error) {
		assert.Equal(t, "post", entityType)
		assert.Equal(t, uint(9), entityID)
		return []models.AuditLog{
			{Action: "post.flag", Detail: "spam suspicion"},
			{Action: "post.approve"},
		}, nil
	}

	svc := NewModerationService(noopPostRepo(), audit, nil)
	history, err := svc.History(ctx, admin, 9, 50, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "post.flag", history[0].Action)
}
