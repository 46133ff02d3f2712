// Package service implements the application's business logic on top of the
// repository layer. Services receive the acting user explicitly; they never
// reach into ambient request state.
package service

import (
	"context"
	"strings"

	"taskflowpro/internal/authz"
	"taskflowpro/internal/models"
	"taskflowpro/internal/repository"
)

// PostService handles content item lifecycle outside of moderation.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Title   string
	Content string
}

type UpdatePostInput struct {
	Title   string
	Content string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

const (
	maxPostTitleLen   = 300
	maxPostContentLen = 50000
)

func validatePostFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxPostTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxPostContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}

// CreatePost creates a new post in draft state for the acting user.
func (s *PostService) CreatePost(ctx context.Context, actor *models.User, in CreatePostInput) (*models.Post, error) {
	if !authz.CanPerform(actor, authz.ActionCreate, nil) {
		return nil, models.NewForbiddenError("You are not allowed to create content")
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		UserID:  actor.ID,
		Status:  models.PostStatusDraft,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a single post if the actor may view it. Unviewable posts
// are reported as not found rather than forbidden, so their existence is not
// leaked.
func (s *PostService) GetPost(ctx context.Context, actor *models.User, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor, authz.ActionView, post) {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

// ListPublished returns the public feed.
func (s *PostService) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListPublished(ctx, limit, offset)
}

// ListOwn returns the actor's own posts in every state.
func (s *PostService) ListOwn(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Post, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.postRepo.GetByUserID(ctx, actor.ID, limit, offset)
}

// SearchPosts searches case-insensitively over title and content, then
// filters the results down to what the actor may view.
func (s *PostService) SearchPosts(ctx context.Context, actor *models.User, query string, limit, offset int) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	posts, err := s.postRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	visible := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		// Anonymous callers get the public feed; authenticated callers go
		// through the full view rules (own drafts, admin visibility).
		if actor == nil {
			if p.Status == models.PostStatusPublished {
				visible = append(visible, p)
			}
			continue
		}
		if authz.CanPerform(actor, authz.ActionView, p) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// UpdatePost updates title/content. Owners may edit until the post is
// rejected; administrators may edit anything. Edits never change the
// moderation state.
func (s *PostService) UpdatePost(ctx context.Context, actor *models.User, id uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor, authz.ActionUpdate, post) {
		return nil, models.NewForbiddenError("You are not allowed to edit this post")
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost soft-deletes a post. Owners and administrators only.
func (s *PostService) DeletePost(ctx context.Context, actor *models.User, id uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanPerform(actor, authz.ActionDelete, post) {
		return models.NewForbiddenError("You are not allowed to delete this post")
	}
	return s.postRepo.Delete(ctx, post.ID)
}
