package server

import (
	"time"

	"taskflowpro/internal/models"
	"taskflowpro/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseDueDate accepts either a plain date (2006-01-02) or RFC 3339.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, models.NewValidationError("Invalid due date; use YYYY-MM-DD")
	}
	return &t, nil
}

// CreateProject handles POST /api/projects.
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,priority=string,due_date=string} true "Project fields"
// @Success 201 {object} models.Project
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (s *Server) CreateProject(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
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

	project, err := s.projectService.CreateProject(c.UserContext(), actor, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     due,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProjects handles GET /api/projects - projects the actor owns or belongs to.
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project
// @Security BearerAuth
// @Router /projects [get]
func (s *Server) GetProjects(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	projects, err := s.projectService.ListProjects(c.UserContext(), actor, page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(projects)
}

// SearchProjects handles GET /api/projects/search.
// @Summary Search projects
// @Tags projects
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.Project
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/search [get]
func (s *Server) SearchProjects(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	projects, err := s.projectService.SearchProjects(c.UserContext(), actor, c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(projects)
}

// GetProject handles GET /api/projects/:id.
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (s *Server) GetProject(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	project, err := s.projectService.GetProject(c.UserContext(), actor, id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(project)
}

// UpdateProject handles PUT /api/projects/:id. Owner or administrator only.
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body object{name=string,description=string,priority=string,due_date=string,clear_due=bool} true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
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

	in := service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     due,
		ClearDue:    req.ClearDue,
	}
	if req.Priority != nil {
		p := models.TaskPriority(*req.Priority)
		in.Priority = &p
	}

	project, err := s.projectService.UpdateProject(c.UserContext(), actor, id, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(project)
}

// DeleteProject handles DELETE /api/projects/:id. Owner or administrator only.
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.projectService.DeleteProject(c.UserContext(), actor, id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project deleted"})
}

// InviteProjectMember handles POST /api/projects/:id/members. The invitee is
// notified over every configured channel.
// @Summary Invite a member
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body object{user_id=int,role=string} true "Invitee and role"
// @Success 201 {object} models.ProjectMember
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/members [post]
func (s *Server) InviteProjectMember(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	member, err := s.projectService.InviteMember(c.UserContext(), actor, id, req.UserID, req.Role)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// RemoveProjectMember handles DELETE /api/projects/:id/members/:userId.
// @Summary Remove a member
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Param userId path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/members/{userId} [delete]
func (s *Server) RemoveProjectMember(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.projectService.RemoveMember(c.UserContext(), actor, id, userID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member removed"})
}

// GetProjectMembers handles GET /api/projects/:id/members.
// @Summary List project members
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} models.ProjectMember
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/members [get]
func (s *Server) GetProjectMembers(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	members, err := s.projectService.Members(c.UserContext(), actor, id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(members)
}
