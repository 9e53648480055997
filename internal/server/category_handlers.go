package server

import (
	"skilltrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories. With ?with_counts=true each
// category carries the caller's skill count.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	if c.QueryBool("with_counts") {
		categories, err := s.categoryService.ListWithCounts(c.Context(), s.currentUserID(c))
		if err != nil {
			return models.RespondWithError(c, err)
		}
		return c.JSON(fiber.Map{"categories": categories})
	}

	categories, err := s.categoryService.ListCategories(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategory handles GET /api/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryService.GetCategory(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(category)
}
