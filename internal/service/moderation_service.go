package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskflowpro/internal/authz"
	"taskflowpro/internal/models"
	"taskflowpro/internal/moderation"
	"taskflowpro/internal/observability"
	"taskflowpro/internal/repository"
)

// ModerationService applies moderation decisions and serves the moderator
// views. The post row keeps only the latest decision; the audit log keeps
// the full history.
type ModerationService struct {
	postRepo  repository.PostRepository
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

// NewModerationService returns a new ModerationService.
func NewModerationService(postRepo repository.PostRepository, auditRepo repository.AuditLogRepository, logger *slog.Logger) *ModerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModerationService{postRepo: postRepo, auditRepo: auditRepo, logger: logger}
}

// Queue returns posts awaiting review, oldest first.
func (s *ModerationService) Queue(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Post, error) {
	if !authz.CanPerform(actor, authz.ActionModerate, nil) {
		return nil, models.NewForbiddenError("Moderator access required")
	}
	return s.postRepo.ModerationQueue(ctx, limit, offset)
}

// AllContent returns posts in every state for the moderator overview. A
// non-empty query narrows the listing by title, content, or the owner's
// username or email.
func (s *ModerationService) AllContent(ctx context.Context, actor *models.User, query string, limit, offset int) ([]*models.Post, error) {
	if !authz.CanPerform(actor, authz.ActionModerate, nil) {
		return nil, models.NewForbiddenError("Moderator access required")
	}
	if query != "" {
		return s.postRepo.SearchAll(ctx, query, limit, offset)
	}
	return s.postRepo.ListAll(ctx, limit, offset)
}

// Decide applies a moderation decision to a post. Rejections and flags
// require non-empty notes; a validation failure leaves the post untouched.
// Every applied decision is appended to the audit log.
func (s *ModerationService) Decide(ctx context.Context, actor *models.User, postID uint, decision moderation.Decision, notes string) (*models.Post, error) {
	if !authz.CanPerform(actor, authz.ActionModerate, nil) {
		return nil, models.NewForbiddenError("Moderator access required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := moderation.Apply(post, actor.ID, decision, notes, time.Now()); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	entry := &models.AuditLog{
		ActorID:    actor.ID,
		Action:     fmt.Sprintf("post.%s", decision),
		EntityType: "post",
		EntityID:   post.ID,
		Detail:     post.ModerationNotes,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		// The decision itself stands; a missing audit row is logged loudly.
		s.logger.ErrorContext(ctx, "failed to append moderation audit entry",
			"post_id", post.ID, "decision", decision, "err", err)
	}

	observability.ModerationDecisions.WithLabelValues(string(decision)).Inc()
	s.logger.InfoContext(ctx, "moderation decision applied",
		"post_id", post.ID, "decision", decision, "moderator_id", actor.ID)

	return post, nil
}

// History returns the full moderation history of a post, oldest first.
func (s *ModerationService) History(ctx context.Context, actor *models.User, postID uint, limit, offset int) ([]models.AuditLog, error) {
	if !authz.CanPerform(actor, authz.ActionModerate, nil) {
		return nil, models.NewForbiddenError("Moderator access required")
	}
	return s.auditRepo.ListByEntity(ctx, "post", postID, limit, offset)
}
