package models

import "time"

// Notification is the persisted-record delivery channel for a domain event.
// Payload holds the event payload as JSON text.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Type      string     `gorm:"type:varchar(64);not null" json:"type"`
	Payload   string     `gorm:"type:text;not null" json:"payload"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
