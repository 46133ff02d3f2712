package server

import (
	"taskflowpro/internal/models"
	"taskflowpro/internal/moderation"

	"github.com/gofiber/fiber/v2"
)

// GetModerationQueue handles GET /api/moderation/queue.
// @Summary Moderation queue
// @Description Posts awaiting review (draft and flagged), oldest first
// @Tags moderation
// @Produce json
// @Success 200 {array} models.Post
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /moderation/queue [get]
func (s *Server) GetModerationQueue(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)
	posts, err := s.moderationService.Queue(c.UserContext(), actor, page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(posts)
}

// GetAllContent handles GET /api/moderation/content - posts in every state.
// @Summary All content overview
// @Tags moderation
// @Produce json
// @Param q query string false "Match title, content, or owner username/email"
// @Success 200 {array} models.Post
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /moderation/content [get]
func (s *Server) GetAllContent(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)
	posts, err := s.moderationService.AllContent(c.UserContext(), actor, c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(posts)
}

// ApprovePost handles POST /api/moderation/posts/:id/approve.
// @Summary Approve a post
// @Description Publish a post; notes are optional for approvals
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{notes=string} false "Optional notes"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /moderation/posts/{id}/approve [post]
func (s *Server) ApprovePost(c *fiber.Ctx) error {
	return s.decide(c, moderation.DecisionApprove)
}

// RejectPost handles POST /api/moderation/posts/:id/reject. Notes are
// mandatory: rejections without a reason are refused.
// @Summary Reject a post
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{notes=string} true "Rejection reason"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /moderation/posts/{id}/reject [post]
func (s *Server) RejectPost(c *fiber.Ctx) error {
	return s.decide(c, moderation.DecisionReject)
}

// FlagPost handles POST /api/moderation/posts/:id/flag. Notes are mandatory.
// @Summary Flag a post
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{notes=string} true "Flag reason"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /moderation/posts/{id}/flag [post]
func (s *Server) FlagPost(c *fiber.Ctx) error {
	return s.decide(c, moderation.DecisionFlag)
}

func (s *Server) decide(c *fiber.Ctx, decision moderation.Decision) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.moderationService.Decide(c.UserContext(), actor, id, decision, req.Notes)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(post)
}

// GetModerationHistory handles GET /api/moderation/posts/:id/history - the
// full decision trail of a post, oldest first.
// @Summary Moderation history of a post
// @Tags moderation
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.AuditLog
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /moderation/posts/{id}/history [get]
func (s *Server) GetModerationHistory(c *fiber.Ctx) error {
	actor, err := s.requireActor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)
	history, err := s.moderationService.History(c.UserContext(), actor, id, page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(history)
}
