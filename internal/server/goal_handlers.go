package server

import (
	"skilltrack/internal/models"
	"skilltrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

type goalBody struct {
	SkillID           uint         `json:"skill_id"`
	TargetProficiency string       `json:"target_proficiency"`
	TargetDate        *models.Date `json:"target_date"`
	TargetHours       *float64     `json:"target_hours"`
	Description       *string      `json:"description"`
}

// GetGoals handles GET /api/goals with status, skill and category filters.
func (s *Server) GetGoals(c *fiber.Ctx) error {
	page := parsePage(c)
	goals, pagination, err := s.goalService.ListGoals(c.Context(), service.ListGoalsInput{
		UserID:     s.currentUserID(c),
		Status:     c.Query("status"),
		SkillID:    uint(c.QueryInt("skill_id", 0)),
		CategoryID: uint(c.QueryInt("category_id", 0)),
		Page:       page.Page,
		PerPage:    page.PerPage,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return listResponse(c, goals, pagination)
}

// CreateGoal handles POST /api/goals
func (s *Server) CreateGoal(c *fiber.Ctx) error {
	var req goalBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	goal, err := s.goalService.CreateGoal(c.Context(), service.CreateGoalInput{
		UserID:            s.currentUserID(c),
		SkillID:           req.SkillID,
		TargetProficiency: req.TargetProficiency,
		TargetDate:        req.TargetDate,
		TargetHours:       req.TargetHours,
		Description:       description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

// GetGoal handles GET /api/goals/:id
func (s *Server) GetGoal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	goal, err := s.goalService.GetGoal(c.Context(), s.currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(goal)
}

// UpdateGoal handles PUT /api/goals/:id
func (s *Server) UpdateGoal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req goalBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	goal, err := s.goalService.UpdateGoal(c.Context(), service.UpdateGoalInput{
		UserID:            s.currentUserID(c),
		GoalID:            id,
		TargetProficiency: req.TargetProficiency,
		TargetDate:        req.TargetDate,
		TargetHours:       req.TargetHours,
		Description:       req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(goal)
}

// DeleteGoal handles DELETE /api/goals/:id
func (s *Server) DeleteGoal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.goalService.DeleteGoal(c.Context(), s.currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Goal deleted"})
}

// CompleteGoal handles POST /api/goals/:id/complete
func (s *Server) CompleteGoal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	goal, err := s.goalService.CompleteGoal(c.Context(), s.currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(goal)
}

// ReopenGoal handles POST /api/goals/:id/reopen
func (s *Server) ReopenGoal(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	goal, err := s.goalService.ReopenGoal(c.Context(), s.currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(goal)
}

// GetGoalStats handles GET /api/goals/stats
func (s *Server) GetGoalStats(c *fiber.Ctx) error {
	stats, err := s.goalService.Stats(c.Context(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(stats)
}

// GetUpcomingGoals handles GET /api/goals/upcoming?days=N
func (s *Server) GetUpcomingGoals(c *fiber.Ctx) error {
	goals, err := s.goalService.Upcoming(c.Context(), s.currentUserID(c), c.QueryInt("days", 7), 0)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"goals": goals})
}
