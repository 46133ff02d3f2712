package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflowpro/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postsApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Get("/api/posts", s.GetPosts)
	app.Get("/api/posts/search", s.SearchPosts)

	authed := app.Group("", asUser(userID))
	authed.Post("/api/posts", s.CreatePost)
	authed.Get("/api/posts/mine", s.GetMyPosts)
	authed.Get("/api/posts/:id", s.GetPost)
	authed.Put("/api/posts/:id", s.UpdatePost)
	authed.Delete("/api/posts/:id", s.DeletePost)
	return app
}

func TestCreatePost_StartsInDraft(t *testing.T) {
	s, db := newTestServer(t)
	user := createServerTestUser(t, db, "author", models.RoleUser)
	app := postsApp(s, user.ID)

	body, _ := json.Marshal(map[string]string{
		"title":   "My first post",
		"content": "Hello world",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, user.ID, post.UserID)
	assert.Nil(t, post.ModeratedBy)
}

func TestGetPosts_PublishedOnly(t *testing.T) {
	s, db := newTestServer(t)
	user := createServerTestUser(t, db, "author", models.RoleUser)

	for _, status := range []models.PostStatus{
		models.PostStatusDraft, models.PostStatusPublished, models.PostStatusRejected,
	} {
		require.NoError(t, db.Create(&models.Post{
			Title:   "Post " + string(status),
			Content: "content",
			UserID:  user.ID,
			Status:  status,
		}).Error)
	}

	app := postsApp(s, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 1)
	assert.Equal(t, models.PostStatusPublished, posts[0].Status)
}

func TestGetPost_DraftHiddenFromOthers(t *testing.T) {
	s, db := newTestServer(t)
	author := createServerTestUser(t, db, "author", models.RoleUser)
	stranger := createServerTestUser(t, db, "stranger", models.RoleUser)

	post := &models.Post{
		Title:   "Unreviewed",
		Content: "content",
		UserID:  author.ID,
		Status:  models.PostStatusDraft,
	}
	require.NoError(t, db.Create(post).Error)

	// The author sees their own draft
	app := postsApp(s, author.ID)
	req := httptest.NewRequest(http.MethodGet, "/api/posts/"+itoa(post.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A stranger gets 404, not 403: unviewable content does not leak existence
	app = postsApp(s, stranger.ID)
	req = httptest.NewRequest(http.MethodGet, "/api/posts/"+itoa(post.ID), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdatePost_KeepsModerationState(t *testing.T) {
	s, db := newTestServer(t)
	author := createServerTestUser(t, db, "author", models.RoleUser)

	post := &models.Post{
		Title:   "Approved already",
		Content: "content",
		UserID:  author.ID,
		Status:  models.PostStatusPublished,
	}
	require.NoError(t, db.Create(post).Error)

	app := postsApp(s, author.ID)
	body, _ := json.Marshal(map[string]string{
		"title":   "Edited title",
		"content": "Edited content",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/posts/"+itoa(post.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "Edited title", stored.Title)
	assert.Equal(t, models.PostStatusPublished, stored.Status)
}

func TestUpdatePost_NotOwnerForbidden(t *testing.T) {
	s, db := newTestServer(t)
	author := createServerTestUser(t, db, "author", models.RoleUser)
	stranger := createServerTestUser(t, db, "stranger", models.RoleUser)

	post := &models.Post{
		Title:   "Mine",
		Content: "content",
		UserID:  author.ID,
		Status:  models.PostStatusPublished,
	}
	require.NoError(t, db.Create(post).Error)

	app := postsApp(s, stranger.ID)
	body, _ := json.Marshal(map[string]string{"title": "Hijacked", "content": "x"})
	req := httptest.NewRequest(http.MethodPut, "/api/posts/"+itoa(post.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSearchPosts_CaseInsensitive(t *testing.T) {
	s, db := newTestServer(t)
	user := createServerTestUser(t, db, "author", models.RoleUser)

	require.NoError(t, db.Create(&models.Post{
		Title:   "Gardening Tips",
		Content: "How to grow tomatoes",
		UserID:  user.ID,
		Status:  models.PostStatusPublished,
	}).Error)
	require.NoError(t, db.Create(&models.Post{
		Title:   "Unrelated",
		Content: "Nothing here",
		UserID:  user.ID,
		Status:  models.PostStatusPublished,
	}).Error)
	// A matching draft must stay invisible to the anonymous search below
	require.NoError(t, db.Create(&models.Post{
		Title:   "Gardening Drafts",
		Content: "Not reviewed yet",
		UserID:  user.ID,
		Status:  models.PostStatusDraft,
	}).Error)

	app := postsApp(s, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/posts/search?q=GARDENING", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Gardening Tips", posts[0].Title)
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	s, db := newTestServer(t)
	author := createServerTestUser(t, db, "author", models.RoleUser)

	post := &models.Post{
		Title:   "Disposable",
		Content: "content",
		UserID:  author.ID,
		Status:  models.PostStatusDraft,
	}
	require.NoError(t, db.Create(post).Error)

	app := postsApp(s, author.ID)
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+itoa(post.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
}
