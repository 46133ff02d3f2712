package server

import (
	"context"
	"runtime"
	"time"

	"taskflowpro/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAuditLogs handles GET /api/admin/audit-logs - newest first.
// @Summary List audit log entries
// @Tags admin
// @Produce json
// @Success 200 {array} models.AuditLog
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/audit-logs [get]
func (s *Server) GetAuditLogs(c *fiber.Ctx) error {
	page := parsePagination(c, 100)
	entries, err := s.auditRepo.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(entries)
}

// GetFeatureFlags handles GET /api/admin/feature-flags.
// @Summary Show configured feature flags
// @Tags admin
// @Produce json
// @Success 200 {object} object{flags=object}
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	return c.JSON(fiber.Map{
		"flags":    s.featureFlags.Raw(),
		"snapshot": s.featureFlags.Snapshot(userID),
	})
}

// GetSystemHealth handles GET /api/admin/system - detailed health for operators.
// @Summary Detailed system health
// @Tags admin
// @Produce json
// @Success 200 {object} object
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/system [get]
func (s *Server) GetSystemHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	var dbLatency time.Duration
	if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else {
		start := time.Now()
		if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
		}
		dbLatency = time.Since(start)
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	counts := fiber.Map{}
	for name, model := range map[string]interface{}{
		"users":         &models.User{},
		"posts":         &models.Post{},
		"projects":      &models.Project{},
		"tasks":         &models.Task{},
		"notifications": &models.Notification{},
	} {
		var n int64
		if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err == nil {
			counts[name] = n
		}
	}

	return c.JSON(fiber.Map{
		"database": fiber.Map{
			"status":     dbStatus,
			"latency_ms": dbLatency.Milliseconds(),
		},
		"redis":      fiber.Map{"status": redisStatus},
		"counts":     counts,
		"goroutines": runtime.NumGoroutine(),
		"go_version": runtime.Version(),
		"time":       time.Now(),
	})
}
