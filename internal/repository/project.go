package repository

import (
	"context"
	"errors"

	"taskflowpro/internal/cache"
	"taskflowpro/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository defines persistence operations for projects and their memberships.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Project, error)
	ListForUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Project, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	AddMember(ctx context.Context, member *models.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID uint) error
	IsMember(ctx context.Context, projectID, userID uint) (bool, error)
	Members(ctx context.Context, projectID uint) ([]models.ProjectMember, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns a new ProjectRepository implementation.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	key := cache.ProjectKey(id)

	err := cache.Aside(ctx, key, &project, cache.ProjectTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Preload("Owner").
			Preload("Members").
			Preload("Members.User").
			First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Project", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Project, error) {
	var projects []*models.Project
	if err := readDB(r.db).WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

// ListForUser returns projects the user owns or was invited into.
func (r *projectRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Project, error) {
	var projects []*models.Project
	if err := readDB(r.db).WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?)", userID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

// Search matches project name or description case-insensitively.
func (r *projectRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Project, error) {
	var projects []*models.Project
	like := "%" + query + "%"
	if err := readDB(r.db).WithContext(ctx).
		Preload("Owner").
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, project.ID)
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Project{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, id)
	return nil
}

func (r *projectRepository) AddMember(ctx context.Context, member *models.ProjectMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User is already a member of this project")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, member.ProjectID)
	return nil
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, projectID)
	return nil
}

func (r *projectRepository) IsMember(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *projectRepository) Members(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}
