package server

import (
	"taskflowpro/internal/models"
	"taskflowpro/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	return c.JSON(actor)
}

// UpdateMyProfile handles PUT /api/users/me.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), actor, actor.ID, service.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id - public profile with recent posts.
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.userService.GetProfile(c.UserContext(), id, 10)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search - case-insensitive over username
// and email.
// @Summary Search users
// @Tags users
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.User
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	users, err := s.userService.SearchUsers(c.UserContext(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(users)
}

// GetAllUsers handles GET /api/users - administrator listing.
// @Summary List users
// @Tags users-admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)
	users, err := s.userService.ListUsers(c.UserContext(), actor, page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(users)
}

// SetUserStatus handles PUT /api/users/:id/status. Superadmin accounts are
// protected and respond with 403 PROTECTED.
// @Summary Set account status
// @Tags users-admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{status=string} true "New status: active, suspended or inactive"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/status [put]
func (s *Server) SetUserStatus(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.SetStatus(c.UserContext(), actor, id, models.UserStatus(req.Status))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// ToggleUserStatus handles POST /api/users/:id/toggle-status - flips an
// account between active and suspended.
// @Summary Toggle account status
// @Tags users-admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/toggle-status [post]
func (s *Server) ToggleUserStatus(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.ToggleStatus(c.UserContext(), actor, id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// SyncUserRoles handles PUT /api/users/:id/roles - replaces the target's
// role set. The superadmin role can never be granted here.
// @Summary Set user roles
// @Tags users-admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{roles=[]string} true "Role names"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/roles [put]
func (s *Server) SyncUserRoles(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Roles []string `json:"roles"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	names := make([]models.RoleName, 0, len(req.Roles))
	for _, r := range req.Roles {
		names = append(names, models.RoleName(r))
	}

	user, err := s.userService.SyncRoles(c.UserContext(), actor, id, names)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// AssignUserRole handles POST /api/users/:id/roles - grants one additional
// role, keeping the target's existing set. The superadmin role can never be
// granted here.
// @Summary Grant a role
// @Tags users-admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{role=string} true "Role name"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/roles [post]
func (s *Server) AssignUserRole(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.AssignRole(c.UserContext(), actor, id, models.RoleName(req.Role))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id. Superadmin accounts are
// protected.
// @Summary Delete a user
// @Tags users-admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.UserContext(), actor, id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
