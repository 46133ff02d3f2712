// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserStatus is the lifecycle status of a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusInactive  UserStatus = "inactive"
)

// Valid reports whether the status is one of the known values.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusInactive:
		return true
	}
	return false
}

// User represents a user account in TaskFlowPro.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Status    UserStatus     `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	Roles     []Role         `gorm:"many2many:user_roles" json:"roles,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name RoleName) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of the named roles.
func (u *User) HasAnyRole(names ...RoleName) bool {
	for _, n := range names {
		if u.HasRole(n) {
			return true
		}
	}
	return false
}

// IsAdministrator reports whether the user holds the admin or superadmin role.
func (u *User) IsAdministrator() bool {
	return u.HasAnyRole(RoleAdmin, RoleSuperadmin)
}

// IsSuperadmin reports whether the user holds the protected superadmin role.
func (u *User) IsSuperadmin() bool {
	return u.HasRole(RoleSuperadmin)
}

// PrimaryRole returns the highest-privilege role held, or RoleUser when none
// is assigned. Navigation assumes a single primary role per user.
func (u *User) PrimaryRole() RoleName {
	switch {
	case u.HasRole(RoleSuperadmin):
		return RoleSuperadmin
	case u.HasRole(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUser
	}
}
