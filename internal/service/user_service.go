package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"taskflowpro/internal/authz"
	"taskflowpro/internal/models"
	"taskflowpro/internal/repository"
)

// UserService handles profile and administrative account management.
// Superadmin-held accounts are protected: no actor, including another
// superadmin, may suspend, delete, or change the roles of one.
type UserService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

type UpdateProfileInput struct {
	Username string
	Email    string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{userRepo: userRepo, auditRepo: auditRepo, logger: logger}
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns a user with their recent posts.
func (s *UserService) GetProfile(ctx context.Context, id uint, postLimit int) (*models.User, error) {
	return s.userRepo.GetByIDWithPosts(ctx, id, postLimit)
}

// ListUsers returns a page of users. Administrators only.
func (s *UserService) ListUsers(ctx context.Context, actor *models.User, limit, offset int) ([]models.User, error) {
	if !actor.IsAdministrator() {
		return nil, models.NewForbiddenError("Administrator access required")
	}
	return s.userRepo.List(ctx, limit, offset)
}

// SearchUsers searches usernames and emails case-insensitively.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

// UpdateProfile updates a user's own profile fields. Only the account owner
// may edit their profile.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, targetID uint, in UpdateProfileInput) (*models.User, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if actor.ID != targetID {
		return nil, models.NewForbiddenError("You can only edit your own profile")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		target.Username = strings.TrimSpace(in.Username)
	}
	if in.Email != "" {
		target.Email = strings.TrimSpace(strings.ToLower(in.Email))
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// SetStatus suspends or reactivates an account. Administrators only;
// superadmin accounts are protected.
func (s *UserService) SetStatus(ctx context.Context, actor *models.User, targetID uint, status models.UserStatus) (*models.User, error) {
	if !actor.IsAdministrator() {
		return nil, models.NewForbiddenError("Administrator access required")
	}
	if !status.Valid() {
		return nil, models.NewValidationError("Unknown account status")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return s.applyStatus(ctx, actor, target, status)
}

// ToggleStatus flips an account between active and suspended. Administrators
// only; the check runs before the target is even read.
func (s *UserService) ToggleStatus(ctx context.Context, actor *models.User, targetID uint) (*models.User, error) {
	if !actor.IsAdministrator() {
		return nil, models.NewForbiddenError("Administrator access required")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	next := models.UserStatusSuspended
	if target.Status == models.UserStatusSuspended {
		next = models.UserStatusActive
	}
	return s.applyStatus(ctx, actor, target, next)
}

// applyStatus writes a status change to an already-loaded target. Callers
// have verified the actor is an administrator.
func (s *UserService) applyStatus(ctx context.Context, actor *models.User, target *models.User, status models.UserStatus) (*models.User, error) {
	if authz.IsProtected(target) {
		return nil, models.NewProtectedEntityError("Superadmin accounts cannot be suspended or deactivated")
	}

	previous := target.Status
	target.Status = status
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.audit(ctx, actor.ID, "user.status", target.ID, fmt.Sprintf("%s → %s", previous, status))
	return target, nil
}

// DeleteUser soft-deletes an account. Administrators only; superadmin
// accounts are protected.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, targetID uint) error {
	if !actor.IsAdministrator() {
		return models.NewForbiddenError("Administrator access required")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if authz.IsProtected(target) {
		return models.NewProtectedEntityError("Superadmin accounts cannot be deleted")
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}
	s.audit(ctx, actor.ID, "user.delete", targetID, "")
	return nil
}

// SyncRoles replaces a user's role set. Administrators only. The superadmin
// role can never be granted this way, and accounts already holding it are
// protected from any role change.
func (s *UserService) SyncRoles(ctx context.Context, actor *models.User, targetID uint, names []models.RoleName) (*models.User, error) {
	if !actor.IsAdministrator() {
		return nil, models.NewForbiddenError("Administrator access required")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if authz.IsProtected(target) {
		return nil, models.NewProtectedEntityError("Superadmin roles cannot be changed")
	}

	roles := make([]models.Role, 0, len(names))
	for _, name := range names {
		if !name.Valid() {
			return nil, models.NewValidationError(fmt.Sprintf("Unknown role %q", name))
		}
		if name == models.RoleSuperadmin {
			return nil, models.NewForbiddenError("The superadmin role cannot be granted")
		}
		role, err := s.userRepo.GetRoleByName(ctx, name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}

	if err := s.userRepo.SetRoles(ctx, target, roles); err != nil {
		return nil, err
	}

	s.audit(ctx, actor.ID, "user.roles", target.ID, fmt.Sprintf("roles set to %v", names))
	return target, nil
}

// AssignRole grants a single additional role, keeping existing ones.
// Administrators only; no target data is returned to anyone else.
func (s *UserService) AssignRole(ctx context.Context, actor *models.User, targetID uint, name models.RoleName) (*models.User, error) {
	if !actor.IsAdministrator() {
		return nil, models.NewForbiddenError("Administrator access required")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.HasRole(name) {
		return target, nil
	}

	names := make([]models.RoleName, 0, len(target.Roles)+1)
	for _, r := range target.Roles {
		names = append(names, r.Name)
	}
	names = append(names, name)
	return s.SyncRoles(ctx, actor, targetID, names)
}

func (s *UserService) audit(ctx context.Context, actorID uint, action string, entityID uint, detail string) {
	entry := &models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: "user",
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "failed to append audit entry",
			"action", action, "entity_id", entityID, "err", err)
	}
}
