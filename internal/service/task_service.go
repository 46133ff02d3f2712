package service

import (
	"context"
	"fmt"
	"time"

	"taskflowpro/internal/models"
	"taskflowpro/internal/notifications"
	"taskflowpro/internal/repository"
)

// EventDispatcher delivers notification fan-out produced by domain events.
type EventDispatcher interface {
	Dispatch(ctx context.Context, d notifications.Delivery)
}

// TaskService handles task lifecycle and drives assignment/update fan-out.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	dispatcher  EventDispatcher
	baseURL     string
}

type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   *uint
	AssignedTo  *uint
	Priority    models.TaskPriority
	DueDate     *time.Time
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *models.TaskPriority
	Status      *models.TaskStatus
	DueDate     *time.Time
	ClearDue    bool
}

// NewTaskService returns a new TaskService. dispatcher may be nil, in which
// case no notifications are sent.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, dispatcher EventDispatcher, baseURL string) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		dispatcher:  dispatcher,
		baseURL:     baseURL,
	}
}

// canAccessProject reports whether the user owns or is a member of the project.
func (s *TaskService) canAccessProject(ctx context.Context, userID uint, project *models.Project) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}
	return s.projectRepo.IsMember(ctx, project.ID, userID)
}

// CreateTask creates a task, optionally inside a project and optionally
// pre-assigned. Assigning on creation triggers the task.assigned fan-out.
func (s *TaskService) CreateTask(ctx context.Context, actor *models.User, in CreateTaskInput) (*models.Task, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}

	priority := in.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, models.NewValidationError("Unknown task priority")
	}

	var project *models.Project
	if in.ProjectID != nil {
		var err error
		project, err = s.projectRepo.GetByID(ctx, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		ok, err := s.canAccessProject(ctx, actor.ID, project)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.NewForbiddenError("You are not a member of this project")
		}
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   actor.ID,
		Priority:    priority,
		Status:      models.TaskStatusPending,
		DueDate:     in.DueDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	if task.AssignedTo != nil && s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, notifications.TaskAssigned(*task, project, *actor, s.baseURL))
	}
	return task, nil
}

// GetTask returns a task the actor may see: its creator, its assignee, a
// member of its project, or an administrator.
func (s *TaskService) GetTask(ctx context.Context, actor *models.User, id uint) (*models.Task, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canSeeTask(ctx, actor, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Task", id)
	}
	return task, nil
}

func (s *TaskService) canSeeTask(ctx context.Context, actor *models.User, task *models.Task) (bool, error) {
	if actor.IsAdministrator() || task.CreatedBy == actor.ID {
		return true, nil
	}
	if task.AssignedTo != nil && *task.AssignedTo == actor.ID {
		return true, nil
	}
	if task.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, *task.ProjectID)
		if err != nil {
			return false, err
		}
		return s.canAccessProject(ctx, actor.ID, project)
	}
	return false, nil
}

// ListAssigned returns tasks assigned to the actor.
func (s *TaskService) ListAssigned(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Task, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.taskRepo.ListByAssignee(ctx, actor.ID, limit, offset)
}

// ListCreated returns tasks the actor created.
func (s *TaskService) ListCreated(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Task, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.taskRepo.ListByCreator(ctx, actor.ID, limit, offset)
}

// ListProjectTasks returns the tasks of a project the actor can access.
func (s *TaskService) ListProjectTasks(ctx context.Context, actor *models.User, projectID uint, limit, offset int) ([]*models.Task, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ok, err := s.canAccessProject(ctx, actor.ID, project)
	if err != nil {
		return nil, err
	}
	if !ok && !actor.IsAdministrator() {
		return nil, models.NewForbiddenError("You are not a member of this project")
	}
	return s.taskRepo.ListByProject(ctx, projectID, limit, offset)
}

// SearchTasks searches titles and descriptions case-insensitively.
func (s *TaskService) SearchTasks(ctx context.Context, actor *models.User, query string, limit, offset int) ([]*models.Task, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.taskRepo.Search(ctx, query, limit, offset)
}

// UpdateTask applies the given field changes and fans out task.updated to
// the assignee, the creator, and the project owner (excluding the updater),
// listing each changed field with its old and new value.
func (s *TaskService) UpdateTask(ctx context.Context, actor *models.User, id uint, in UpdateTaskInput) (*models.Task, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canSeeTask(ctx, actor, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Task", id)
	}

	changes := map[string]notifications.Change{}

	if in.Title != nil && *in.Title != task.Title {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		changes["title"] = notifications.Change{Old: task.Title, New: *in.Title}
		task.Title = *in.Title
	}
	if in.Description != nil && *in.Description != task.Description {
		changes["description"] = notifications.Change{Old: task.Description, New: *in.Description}
		task.Description = *in.Description
	}
	if in.Priority != nil && *in.Priority != task.Priority {
		if !in.Priority.Valid() {
			return nil, models.NewValidationError("Unknown task priority")
		}
		changes["priority"] = notifications.Change{Old: string(task.Priority), New: string(*in.Priority)}
		task.Priority = *in.Priority
	}
	if in.Status != nil && *in.Status != task.Status {
		if !in.Status.Valid() {
			return nil, models.NewValidationError("Unknown task status")
		}
		changes["status"] = notifications.Change{Old: string(task.Status), New: string(*in.Status)}
		task.Status = *in.Status
	}
	if in.ClearDue && task.DueDate != nil {
		changes["due_date"] = notifications.Change{Old: task.DueDate.Format("2006-01-02"), New: "none"}
		task.DueDate = nil
	} else if in.DueDate != nil && (task.DueDate == nil || !in.DueDate.Equal(*task.DueDate)) {
		old := "none"
		if task.DueDate != nil {
			old = task.DueDate.Format("2006-01-02")
		}
		changes["due_date"] = notifications.Change{Old: old, New: in.DueDate.Format("2006-01-02")}
		task.DueDate = in.DueDate
	}

	if len(changes) == 0 {
		return task, nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		project := s.loadProject(ctx, task)
		s.dispatcher.Dispatch(ctx, notifications.TaskUpdated(*task, project, *actor, changes, s.baseURL))
	}
	return task, nil
}

// AssignTask sets the assignee and fans out task.assigned to them.
func (s *TaskService) AssignTask(ctx context.Context, actor *models.User, id, assigneeID uint) (*models.Task, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canSeeTask(ctx, actor, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Task", id)
	}

	if task.AssignedTo != nil && *task.AssignedTo == assigneeID {
		return task, nil
	}

	task.AssignedTo = &assigneeID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		project := s.loadProject(ctx, task)
		s.dispatcher.Dispatch(ctx, notifications.TaskAssigned(*task, project, *actor, s.baseURL))
	}
	return task, nil
}

// DeleteTask removes a task. The creator, the project owner, or an
// administrator may delete.
func (s *TaskService) DeleteTask(ctx context.Context, actor *models.User, id uint) error {
	if actor == nil {
		return models.NewUnauthorizedError("Authentication required")
	}
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	allowed := actor.IsAdministrator() || task.CreatedBy == actor.ID
	if !allowed && task.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, *task.ProjectID)
		if err == nil && project.OwnerID == actor.ID {
			allowed = true
		}
	}
	if !allowed {
		return models.NewForbiddenError(fmt.Sprintf("You are not allowed to delete task %d", id))
	}
	return s.taskRepo.Delete(ctx, id)
}

func (s *TaskService) loadProject(ctx context.Context, task *models.Task) *models.Project {
	if task.ProjectID == nil {
		return nil
	}
	project, err := s.projectRepo.GetByID(ctx, *task.ProjectID)
	if err != nil {
		return nil
	}
	return project
}
