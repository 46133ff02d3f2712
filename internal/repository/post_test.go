package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskflowpro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPost(t *testing.T, repo PostRepository, userID uint, title string, status models.PostStatus) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:   title,
		Content: "content for " + title,
		UserID:  userID,
		Status:  status,
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	post := createTestPost(t, repo, author.ID, "hello", models.PostStatusDraft)

	t.Run("Success", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Title)
		assert.Equal(t, "author", got.User.Username, "author should be preloaded")
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
	})
}

func TestPostRepository_ModerationQueue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")

	oldDraft := createTestPost(t, repo, author.ID, "old draft", models.PostStatusDraft)
	require.NoError(t, db.Model(oldDraft).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	flagged := createTestPost(t, repo, author.ID, "flagged", models.PostStatusFlagged)
	createTestPost(t, repo, author.ID, "published", models.PostStatusPublished)
	createTestPost(t, repo, author.ID, "rejected", models.PostStatusRejected)

	queue, err := repo.ModerationQueue(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, queue, 2, "only draft and flagged posts await moderation")
	assert.Equal(t, oldDraft.ID, queue[0].ID, "queue drains oldest first")
	assert.Equal(t, flagged.ID, queue[1].ID)
}

func TestPostRepository_ListByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	createTestPost(t, repo, author.ID, "one", models.PostStatusPublished)
	createTestPost(t, repo, author.ID, "two", models.PostStatusDraft)

	published, err := repo.ListPublished(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "one", published[0].Title)
}

func TestPostRepository_Search_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	createTestPost(t, repo, author.ID, "Quarterly Report", models.PostStatusPublished)
	createTestPost(t, repo, author.ID, "notes", models.PostStatusDraft)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"lowercase matches title", "quarterly", 1},
		{"uppercase matches content", "NOTES", 1},
		{"no match", "missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.Search(ctx, tt.query, 50, 0)
			require.NoError(t, err)
			assert.Len(t, posts, tt.want)
		})
	}
}

func TestPostRepository_SearchAll_MatchesOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice_writer")
	bob := createTestUser(t, db, "bob_reader")
	createTestPost(t, repo, alice.ID, "Weekly Update", models.PostStatusDraft)
	createTestPost(t, repo, bob.ID, "Other Post", models.PostStatusRejected)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"owner username", "ALICE_WRITER", 1},
		{"owner email", "bob_reader@example.com", 1},
		{"title across states", "weekly", 1},
		{"no match", "charlie", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.SearchAll(ctx, tt.query, 50, 0)
			require.NoError(t, err)
			assert.Len(t, posts, tt.want)
		})
	}
}
