package repository

import (
	"context"

	"taskflowpro/internal/models"

	"gorm.io/gorm"
)

// AuditLogRepository defines persistence operations for the append-only audit log.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
	ListByEntity(ctx context.Context, entityType string, entityID uint, limit, offset int) ([]models.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository returns a new AuditLogRepository implementation.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *auditLogRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := readDB(r.db).WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// ListByEntity returns the moderation/admin history of one entity, oldest first.
func (r *auditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uint, limit, offset int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := readDB(r.db).WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
