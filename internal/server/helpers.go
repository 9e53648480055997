package server

import (
	"errors"

	"skilltrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const maxPerPage = 100

// pageParams holds parsed page/per_page query parameters.
type pageParams struct {
	Page    int
	PerPage int
}

// parsePage extracts page-based pagination from the query string. Out-of-range
// values fall back to sane defaults; the repository clamps the page number
// against the actual total.
func parsePage(c *fiber.Ctx) pageParams {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 10)
	if perPage < 1 {
		perPage = 10
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return pageParams{Page: page, PerPage: perPage}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten;
// callers should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. A malformed
// value writes a 400 and returns errResponseWritten.
func (s *Server) parseDateQuery(c *fiber.Ctx, name string) (models.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return models.Date{}, nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		_ = models.RespondWithError(c, models.NewValidationError(err.Error()))
		return models.Date{}, errResponseWritten
	}
	return date, nil
}

// currentUserID returns the authenticated user's ID. AuthRequired guarantees
// the local is set on protected routes.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// listResponse is the standard pagination envelope for list endpoints.
func listResponse(c *fiber.Ctx, items interface{}, pagination models.Pagination) error {
	return c.JSON(fiber.Map{
		"items":      items,
		"pagination": pagination,
	})
}
