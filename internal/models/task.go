package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskPriority orders work items by urgency.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work, optionally attached to a project and an assignee.
// Assignment and updates drive notification fan-out.
type Task struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	ProjectID   *uint        `gorm:"index" json:"project_id,omitempty"`
	Project     *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo  *uint        `gorm:"index" json:"assigned_to,omitempty"`
	Assignee    *User        `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	CreatedBy   uint         `gorm:"not null;index" json:"created_by"`
	Creator     User         `gorm:"foreignKey:CreatedBy" json:"creator"`
	Priority    TaskPriority `gorm:"type:varchar(16);not null;default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
