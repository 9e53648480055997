package server

import (
	"skilltrack/internal/models"
	"skilltrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSkills handles GET /api/skills with category, proficiency and search
// filters.
func (s *Server) GetSkills(c *fiber.Ctx) error {
	page := parsePage(c)
	skills, pagination, err := s.skillService.ListSkills(c.Context(), service.ListSkillsInput{
		UserID:      s.currentUserID(c),
		CategoryID:  uint(c.QueryInt("category_id", 0)),
		Proficiency: c.Query("proficiency"),
		Search:      c.Query("search"),
		Page:        page.Page,
		PerPage:     page.PerPage,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return listResponse(c, skills, pagination)
}

// CreateSkill handles POST /api/skills
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	var req struct {
		CategoryID  uint   `json:"category_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Proficiency string `json:"current_proficiency"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.CreateSkill(c.Context(), service.CreateSkillInput{
		UserID:      s.currentUserID(c),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Proficiency: req.Proficiency,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// GetSkill handles GET /api/skills/:id
func (s *Server) GetSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skill, err := s.skillService.GetSkill(c.Context(), s.currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(skill)
}

// UpdateSkill handles PUT /api/skills/:id
func (s *Server) UpdateSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		CategoryID  uint    `json:"category_id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.UpdateSkill(c.Context(), service.UpdateSkillInput{
		UserID:      s.currentUserID(c),
		SkillID:     id,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(skill)
}

// DeleteSkill handles DELETE /api/skills/:id. The skill's progress entries
// and goals go with it.
func (s *Server) DeleteSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.skillService.DeleteSkill(c.Context(), s.currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Skill deleted"})
}

// GetSkillProgress handles GET /api/skills/:id/progress
func (s *Server) GetSkillProgress(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	from, err := s.parseDateQuery(c, "from")
	if err != nil {
		return nil
	}
	to, err := s.parseDateQuery(c, "to")
	if err != nil {
		return nil
	}

	page := parsePage(c)
	entries, pagination, err := s.progressService.ListEntries(c.Context(), service.ListProgressInput{
		UserID:      s.currentUserID(c),
		SkillID:     id,
		Proficiency: c.Query("proficiency"),
		From:        from,
		To:          to,
		Page:        page.Page,
		PerPage:     page.PerPage,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return listResponse(c, entries, pagination)
}

// GetSkillSummary handles GET /api/skills/:id/summary
func (s *Server) GetSkillSummary(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.skillService.Summary(c.Context(), s.currentUserID(c), id, c.QueryInt("days", 30))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(summary)
}
