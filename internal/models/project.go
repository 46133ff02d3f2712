package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectMemberRole is the role an invited member holds within a project.
const ProjectMemberRoleDefault = "member"

// Project groups tasks under an owner and a set of invited members.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Priority    TaskPriority    `gorm:"type:varchar(16);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	OwnerID     uint            `gorm:"not null;index" json:"owner_id"`
	Owner       User            `gorm:"foreignKey:OwnerID" json:"owner"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks       []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProjectMember records a user invited into a project with a project-level role.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Role      string    `gorm:"type:varchar(32);not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
