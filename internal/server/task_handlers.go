package server

import (
	"taskflowpro/internal/models"
	"taskflowpro/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTask handles POST /api/tasks. Assigning on creation triggers the
// assignment fan-out to the assignee.
// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body object{title=string,description=string,project_id=int,assigned_to=int,priority=string,due_date=string} true "Task fields"
// @Success 201 {object} models.Task
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (s *Server) CreateTask(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ProjectID   *uint  `json:"project_id"`
		AssignedTo  *uint  `json:"assigned_to"`
		Priority    string `json:"priority"`
		DueDate     string `json:"due_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return respondAppError(c, err)
	}

	task, err := s.taskService.CreateTask(c.UserContext(), actor, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     due,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetAssignedTasks handles GET /api/tasks/assigned.
// @Summary List tasks assigned to me
// @Tags tasks
// @Produce json
// @Success 200 {array} models.Task
// @Security BearerAuth
// @Router /tasks/assigned [get]
func (s *Server) GetAssignedTasks(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	tasks, err := s.taskService.ListAssigned(c.UserContext(), actor, page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(tasks)
}

// GetCreatedTasks handles GET /api/tasks/created.
// @Summary List tasks I created
// @Tags tasks
// @Produce json
// @Success 200 {array} models.Task
// @Security BearerAuth
// @Router /tasks/created [get]
func (s *Server) GetCreatedTasks(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	tasks, err := s.taskService.ListCreated(c.UserContext(), actor, page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(tasks)
}

// GetProjectTasks handles GET /api/projects/:id/tasks.
// @Summary List a project's tasks
// @Tags tasks
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} models.Task
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (s *Server) GetProjectTasks(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)
	tasks, err := s.taskService.ListProjectTasks(c.UserContext(), actor, id, page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(tasks)
}

// SearchTasks handles GET /api/tasks/search.
// @Summary Search tasks
// @Tags tasks
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.Task
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks/search [get]
func (s *Server) SearchTasks(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	tasks, err := s.taskService.SearchTasks(c.UserContext(), actor, c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(tasks)
}

// GetTask handles GET /api/tasks/:id.
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (s *Server) GetTask(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	task, err := s.taskService.GetTask(c.UserContext(), actor, id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(task)
}

// UpdateTask handles PUT /api/tasks/:id. Changed fields fan out to the
// assignee, the creator and the project owner, excluding the updater.
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body object{title=string,description=string,priority=string,status=string,due_date=string,clear_due=bool} true "Fields to change"
// @Success 200 {object} models.Task
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (s *Server) UpdateTask(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
		Status      *string `json:"status"`
		DueDate     string  `json:"due_date"`
		ClearDue    bool    `json:"clear_due"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return respondAppError(c, err)
	}

	in := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		ClearDue:    req.ClearDue,
	}
	if req.Priority != nil {
		p := models.TaskPriority(*req.Priority)
		in.Priority = &p
	}
	if req.Status != nil {
		st := models.TaskStatus(*req.Status)
		in.Status = &st
	}

	task, err := s.taskService.UpdateTask(c.UserContext(), actor, id, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(task)
}

// AssignTask handles POST /api/tasks/:id/assign. The new assignee is
// notified; reassigning to the current assignee is a no-op.
// @Summary Assign a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body object{user_id=int} true "Assignee"
// @Success 200 {object} models.Task
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/assign [post]
func (s *Server) AssignTask(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	task, err := s.taskService.AssignTask(c.UserContext(), actor, id, req.UserID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(task)
}

// DeleteTask handles DELETE /api/tasks/:id.
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (s *Server) DeleteTask(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.taskService.DeleteTask(c.UserContext(), actor, id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task deleted"})
}
