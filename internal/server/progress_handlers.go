package server

import (
	"skilltrack/internal/models"
	"skilltrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProgressEntries handles GET /api/progress
func (s *Server) GetProgressEntries(c *fiber.Ctx) error {
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
		SkillID:     uint(c.QueryInt("skill_id", 0)),
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

// CreateProgressEntry handles POST /api/progress
func (s *Server) CreateProgressEntry(c *fiber.Ctx) error {
	var req struct {
		SkillID        uint        `json:"skill_id"`
		HoursSpent     float64     `json:"hours_spent"`
		TasksCompleted int         `json:"tasks_completed"`
		Proficiency    string      `json:"proficiency_level"`
		Notes          string      `json:"notes"`
		EntryDate      models.Date `json:"entry_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	entry, err := s.progressService.CreateEntry(c.Context(), service.CreateProgressInput{
		UserID:         s.currentUserID(c),
		SkillID:        req.SkillID,
		HoursSpent:     req.HoursSpent,
		TasksCompleted: req.TasksCompleted,
		Proficiency:    req.Proficiency,
		Notes:          req.Notes,
		EntryDate:      req.EntryDate,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetProgressEntry handles GET /api/progress/:id
func (s *Server) GetProgressEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.progressService.GetEntry(c.Context(), s.currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(entry)
}

// UpdateProgressEntry handles PUT /api/progress/:id. The skill linkage cannot
// be changed; a skill_id in the body is ignored.
func (s *Server) UpdateProgressEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		HoursSpent     *float64     `json:"hours_spent"`
		TasksCompleted *int         `json:"tasks_completed"`
		Proficiency    string       `json:"proficiency_level"`
		Notes          *string      `json:"notes"`
		EntryDate      *models.Date `json:"entry_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	entry, err := s.progressService.UpdateEntry(c.Context(), service.UpdateProgressInput{
		UserID:         s.currentUserID(c),
		EntryID:        id,
		HoursSpent:     req.HoursSpent,
		TasksCompleted: req.TasksCompleted,
		Proficiency:    req.Proficiency,
		Notes:          req.Notes,
		EntryDate:      req.EntryDate,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(entry)
}

// DeleteProgressEntry handles DELETE /api/progress/:id
func (s *Server) DeleteProgressEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.progressService.DeleteEntry(c.Context(), s.currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Progress entry deleted"})
}
