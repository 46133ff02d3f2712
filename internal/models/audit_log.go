package models

import "time"

// AuditLog is an append-only record of administrative and moderation actions.
// Rows are never updated or deleted; the post itself keeps only the latest
// moderation metadata, the audit log keeps the full history.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    uint      `gorm:"not null;index" json:"actor_id"`
	Action     string    `gorm:"type:varchar(64);not null" json:"action"`
	EntityType string    `gorm:"type:varchar(32);not null;index" json:"entity_type"`
	EntityID   uint      `gorm:"not null;index" json:"entity_id"`
	Detail     string    `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
