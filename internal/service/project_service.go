package service

import (
	"context"
	"strings"
	"time"

	"taskflowpro/internal/models"
	"taskflowpro/internal/notifications"
	"taskflowpro/internal/repository"
)

// ProjectService handles project lifecycle and membership invitations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	dispatcher  EventDispatcher
	baseURL     string
}

type CreateProjectInput struct {
	Name        string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Priority    *models.TaskPriority
	DueDate     *time.Time
	ClearDue    bool
}

// NewProjectService returns a new ProjectService. dispatcher may be nil, in
// which case invitations produce no notifications.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, dispatcher EventDispatcher, baseURL string) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
		baseURL:     baseURL,
	}
}

// CreateProject creates a project owned by the actor.
func (s *ProjectService) CreateProject(ctx context.Context, actor *models.User, in CreateProjectInput) (*models.Project, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Project name is required")
	}

	priority := in.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, models.NewValidationError("Unknown project priority")
	}

	project := &models.Project{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		OwnerID:     actor.ID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns a project visible to the actor: its owner, a member, or
// an administrator.
func (s *ProjectService) GetProject(ctx context.Context, actor *models.User, id uint) (*models.Project, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.OwnerID != actor.ID && !actor.IsAdministrator() {
		member, err := s.projectRepo.IsMember(ctx, id, actor.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, models.NewNotFoundError("Project", id)
		}
	}
	return project, nil
}

// ListProjects returns projects the actor owns or belongs to.
func (s *ProjectService) ListProjects(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Project, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.projectRepo.ListForUser(ctx, actor.ID, limit, offset)
}

// SearchProjects searches names and descriptions case-insensitively.
func (s *ProjectService) SearchProjects(ctx context.Context, actor *models.User, query string, limit, offset int) ([]*models.Project, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.projectRepo.Search(ctx, query, limit, offset)
}

// UpdateProject edits project fields. Owner or administrator only.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *models.User, id uint, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.requireOwnerOrAdmin(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, models.NewValidationError("Project name is required")
		}
		project.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, models.NewValidationError("Unknown project priority")
		}
		project.Priority = *in.Priority
	}
	if in.ClearDue {
		project.DueDate = nil
	} else if in.DueDate != nil {
		project.DueDate = in.DueDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project. Owner or administrator only.
func (s *ProjectService) DeleteProject(ctx context.Context, actor *models.User, id uint) error {
	if _, err := s.requireOwnerOrAdmin(ctx, actor, id); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}

// InviteMember invites a user into the project and fans out the
// project.invitation event to them. Owner or administrator only. An empty
// role defaults to "member".
func (s *ProjectService) InviteMember(ctx context.Context, actor *models.User, projectID, inviteeID uint, role string) (*models.ProjectMember, error) {
	project, err := s.requireOwnerOrAdmin(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	invitee, err := s.userRepo.GetByID(ctx, inviteeID)
	if err != nil {
		return nil, err
	}
	if invitee.ID == project.OwnerID {
		return nil, models.NewValidationError("The project owner is already part of the project")
	}

	role = strings.TrimSpace(role)
	if role == "" {
		role = models.ProjectMemberRoleDefault
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    inviteeID,
		Role:      role,
	}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, notifications.ProjectInvitation(*project, *actor, inviteeID, role, s.baseURL))
	}
	return member, nil
}

// RemoveMember removes a user from the project. Owner or administrator only.
func (s *ProjectService) RemoveMember(ctx context.Context, actor *models.User, projectID, userID uint) error {
	if _, err := s.requireOwnerOrAdmin(ctx, actor, projectID); err != nil {
		return err
	}
	return s.projectRepo.RemoveMember(ctx, projectID, userID)
}

// Members lists a project's membership for anyone who can see the project.
func (s *ProjectService) Members(ctx context.Context, actor *models.User, projectID uint) ([]models.ProjectMember, error) {
	if _, err := s.GetProject(ctx, actor, projectID); err != nil {
		return nil, err
	}
	return s.projectRepo.Members(ctx, projectID)
}

func (s *ProjectService) requireOwnerOrAdmin(ctx context.Context, actor *models.User, projectID uint) (*models.Project, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actor.ID && !actor.IsAdministrator() {
		return nil, models.NewForbiddenError("Only the project owner can do this")
	}
	return project, nil
}
