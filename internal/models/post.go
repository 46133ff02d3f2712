package models

import (
	"time"

	"gorm.io/gorm"
)

// PostStatus is the moderation lifecycle state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusFlagged   PostStatus = "flagged"
	PostStatusRejected  PostStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusFlagged, PostStatusRejected:
		return true
	}
	return false
}

// Post represents a moderatable content item. Posts are created in draft and
// move between states only through explicit moderation actions.
type Post struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"not null" json:"title"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	User            User       `gorm:"foreignKey:UserID" json:"user"`
	Status          PostStatus `gorm:"type:varchar(16);not null;default:'draft';index" json:"status"`
	ModeratedBy     *uint      `json:"moderated_by,omitempty"`
	Moderator       *User      `gorm:"foreignKey:ModeratedBy" json:"moderator,omitempty"`
	ModeratedAt     *time.Time `json:"moderated_at,omitempty"`
	ModerationNotes string     `json:"moderation_notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
