package service

import (
	"context"

	"taskflowpro/internal/models"
	"taskflowpro/internal/repository"
)

// NotificationService serves a user's persisted notification records.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the actor's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, actor *models.User, limit, offset int) ([]models.Notification, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.notificationRepo.ListByUser(ctx, actor.ID, limit, offset)
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, actor *models.User) (int64, error) {
	if actor == nil {
		return 0, models.NewUnauthorizedError("Authentication required")
	}
	return s.notificationRepo.CountUnread(ctx, actor.ID)
}

// MarkRead marks one of the actor's notifications read.
func (s *NotificationService) MarkRead(ctx context.Context, actor *models.User, notificationID uint) error {
	if actor == nil {
		return models.NewUnauthorizedError("Authentication required")
	}
	return s.notificationRepo.MarkRead(ctx, actor.ID, notificationID)
}

// MarkAllRead marks every unread notification of the actor read.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor *models.User) error {
	if actor == nil {
		return models.NewUnauthorizedError("Authentication required")
	}
	return s.notificationRepo.MarkAllRead(ctx, actor.ID)
}
