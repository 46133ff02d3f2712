package server

import (
	"errors"
	"strings"
	"unicode"

	"taskflowpro/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// actor loads the authenticated user, roles included, for the current
// request. The loaded record is cached in locals so the repository (itself
// cache-aside backed) is hit at most once per request.
func (s *Server) actor(c *fiber.Ctx) (*models.User, error) {
	if cached, ok := c.Locals("actor").(*models.User); ok && cached != nil {
		return cached, nil
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return nil, err
	}
	c.Locals("actor", user)
	return user, nil
}

// requireActor is the handler-side variant of actor: on failure it writes
// the error response and returns errResponseWritten.
func (s *Server) requireActor(c *fiber.Ctx) (*models.User, error) {
	user, err := s.actor(c)
	if err != nil {
		_ = respondAppError(c, err)
		return nil, errResponseWritten
	}
	if user.Status != models.UserStatusActive {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Account is not active"))
		return nil, errResponseWritten
	}
	return user, nil
}

// respondAppError maps an AppError code to its HTTP status and writes the
// standardized response. Unknown errors become 500.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.ErrCodeNotFound:
		status = fiber.StatusNotFound
	case models.ErrCodeValidation:
		status = fiber.StatusBadRequest
	case models.ErrCodeUnauthorized:
		status = fiber.StatusUnauthorized
	case models.ErrCodeForbidden, models.ErrCodeProtected:
		status = fiber.StatusForbidden
	}
	return models.RespondWithError(c, status, appErr)
}
