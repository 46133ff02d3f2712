package repository

import (
	"context"
	"errors"

	"taskflowpro/internal/cache"
	"taskflowpro/internal/models"

	"gorm.io/gorm"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	ListByProject(ctx context.Context, projectID uint, limit, offset int) ([]*models.Task, error)
	ListByAssignee(ctx context.Context, userID uint, limit, offset int) ([]*models.Task, error)
	ListByCreator(ctx context.Context, userID uint, limit, offset int) ([]*models.Task, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a new TaskRepository implementation.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	key := cache.TaskKey(id)

	err := cache.Aside(ctx, key, &task, cache.TaskTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Preload("Project").
			Preload("Assignee").
			Preload("Creator").
			First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Task", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID uint, limit, offset int) ([]*models.Task, error) {
	var tasks []*models.Task
	if err := readDB(r.db).WithContext(ctx).
		Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tasks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *taskRepository) ListByAssignee(ctx context.Context, userID uint, limit, offset int) ([]*models.Task, error) {
	var tasks []*models.Task
	if err := readDB(r.db).WithContext(ctx).
		Preload("Project").
		Where("assigned_to = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tasks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *taskRepository) ListByCreator(ctx context.Context, userID uint, limit, offset int) ([]*models.Task, error) {
	var tasks []*models.Task
	if err := readDB(r.db).WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tasks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

// Search matches task title or description case-insensitively.
func (r *taskRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Task, error) {
	var tasks []*models.Task
	like := "%" + query + "%"
	if err := readDB(r.db).WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tasks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTask(ctx, task.ID)
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Task{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTask(ctx, id)
	return nil
}
