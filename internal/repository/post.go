package repository

import (
	"context"
	"errors"

	"taskflowpro/internal/cache"
	"taskflowpro/internal/models"
	"taskflowpro/internal/moderation"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	ListByStatus(ctx context.Context, status models.PostStatus, limit, offset int) ([]*models.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ModerationQueue(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	SearchAll(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ModerationQueueKey())
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Preload("User").
			Preload("User.Roles").
			Preload("Moderator").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByStatus(ctx context.Context, status models.PostStatus, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.ListByStatus(ctx, models.PostStatusPublished, limit, offset)
}

// ListAll returns posts in every moderation state, newest first. Moderator
// listings only.
func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Preload("Moderator").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ModerationQueue returns posts awaiting a moderation decision, oldest first
// so the queue drains in arrival order.
func (r *postRepository) ModerationQueue(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("status IN ?", moderation.QueueStatuses()).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Search matches title or content case-insensitively. LOWER/LIKE is used
// rather than ILIKE so the query runs on both PostgreSQL and SQLite.
func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", like, like).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// SearchAll matches posts in every state against title, content, and the
// owner's username or email. Moderator listings only.
func (r *postRepository) SearchAll(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	if err := readDB(r.db).WithContext(ctx).
		Joins("JOIN users ON users.id = posts.user_id").
		Where(`LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?)
			OR LOWER(users.username) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?)`,
			like, like, like, like).
		Preload("User").
		Preload("Moderator").
		Order("posts.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
