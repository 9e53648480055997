package server

import (
	"skilltrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := s.dashboardService.Load(c.Context(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(dashboard)
}

// GetDashboardStatistics handles GET /api/dashboard/statistics?period=N
func (s *Server) GetDashboardStatistics(c *fiber.Ctx) error {
	stats, err := s.dashboardService.LoadStatistics(c.Context(), s.currentUserID(c), c.QueryInt("period", 30))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(stats)
}

// GetChartData handles GET /api/dashboard/chart-data?type=daily|category|skills&days=N
func (s *Server) GetChartData(c *fiber.Ctx) error {
	data, err := s.dashboardService.ChartData(c.Context(), s.currentUserID(c), c.Query("type"), c.QueryInt("days", 30))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"data": data})
}

// GetInsights handles GET /api/dashboard/insights?days=N
func (s *Server) GetInsights(c *fiber.Ctx) error {
	insights, err := s.insightService.Insights(c.Context(), s.currentUserID(c), c.QueryInt("days", 30))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(insights)
}

// GetRecommendations handles GET /api/dashboard/recommendations
func (s *Server) GetRecommendations(c *fiber.Ctx) error {
	recommendations, err := s.insightService.Recommendations(c.Context(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"recommendations": recommendations})
}
