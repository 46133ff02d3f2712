// Package bootstrap wires the shared runtime pieces (database, Redis,
// built-in rows) used by every binary.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"taskflowpro/internal/cache"
	"taskflowpro/internal/config"
	"taskflowpro/internal/database"
	"taskflowpro/internal/models"
	"taskflowpro/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedBuiltIns bool
}

// InitRuntime connects to the database and Redis and optionally seeds the
// built-in role rows. The superadmin account is bootstrapped when the config
// asks for it.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May yield a nil client if Redis is unreachable; callers degrade.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedBuiltIns {
		if err := seed.Roles(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in roles: %w", err)
		}
	}

	if err := ensureSuperadmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap superadmin: %w", err)
	}

	return db, r, nil
}

// ensureSuperadmin creates or repairs the protected superadmin account at
// user ID 1. The account cannot be created through signup because the
// superadmin role is never grantable at runtime.
func ensureSuperadmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil || !cfg.BootstrapSuperadmin {
		return nil
	}

	username := strings.TrimSpace(cfg.SuperadminUsername)
	if username == "" {
		username = "root"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.SuperadminEmail))
	if email == "" {
		email = "root@taskflowpro.local"
	}
	password := cfg.SuperadminPassword
	if password == "" {
		return fmt.Errorf("SUPERADMIN_PASSWORD must be set when BOOTSTRAP_SUPERADMIN is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash superadmin password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", models.RoleSuperadmin).
			FirstOrCreate(&role, models.Role{Name: models.RoleSuperadmin}).Error; err != nil {
			return err
		}

		var root models.User
		findErr := tx.First(&root, 1).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				ID:       1,
				Username: username,
				Email:    email,
				Password: string(hashedPassword),
				Status:   models.UserStatusActive,
			}
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			updates := map[string]any{"status": models.UserStatusActive}
			if cfg.SuperadminForceCredentials {
				updates["username"] = username
				updates["email"] = email
				updates["password"] = string(hashedPassword)
			}
			if err := tx.Model(&models.User{}).Where("id = ?", 1).Updates(updates).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&root).Association("Roles").Append(&role); err != nil {
			return err
		}

		// Ensure the users ID sequence is not behind explicit ID insertion.
		// This is PostgreSQL-specific.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(`
				SELECT setval(
					pg_get_serial_sequence('users', 'id'),
					GREATEST((SELECT COALESCE(MAX(id), 1) FROM users), 1),
					true
				)
			`).Error; err != nil {
				return fmt.Errorf("failed to reset users sequence: %w", err)
			}
		}

		return nil
	}); err != nil {
		return err
	}

	log.Printf("superadmin bootstrap ensured for user ID 1 (%s)", email)
	return nil
}
