package database

import "taskflowpro/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Role{},
		&models.User{},
		&models.Post{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Notification{},
		&models.AuditLog{},
	}
}
