package service

import (
	"context"
	"time"

	"skilltrack/internal/models"
)

// DashboardService composes the other services into the single dashboard
// payload. Goal auto-completion runs exactly once per load, before any goal
// figures are read, so the dashboard never shows a goal as active that its
// own numbers say is done.
type DashboardService struct {
	userService     *UserService
	skillService    *SkillService
	progressService *ProgressService
	goalService     *GoalService
	now             func() time.Time
}

// Dashboard is the aggregate payload for the main dashboard view.
type Dashboard struct {
	UserStats          *models.UserStats         `json:"user_stats"`
	RecentProgress     []models.ProgressEntry    `json:"recent_progress"`
	RecentSkills       []models.Skill            `json:"recent_skills"`
	ProgressStats      *models.ProgressStats     `json:"progress_stats"`
	GoalStats          *models.GoalStats         `json:"goal_stats"`
	UpcomingGoals      []models.Goal             `json:"upcoming_goals"`
	CategoryProgress   []models.CategoryProgress `json:"category_progress"`
	Streaks            *models.StreakInfo        `json:"streaks"`
	DailyProgress      []models.DailyProgress    `json:"daily_progress"`
	AutoCompletedGoals []models.Goal             `json:"auto_completed_goals"`
}

// Statistics is the configurable-period statistics payload.
type Statistics struct {
	PeriodDays       int                       `json:"period_days"`
	ProgressStats    *models.ProgressStats     `json:"progress_stats"`
	CategoryProgress []models.CategoryProgress `json:"category_progress"`
	SkillProgress    []models.SkillProgress    `json:"skill_progress"`
	GoalStats        *models.GoalStats         `json:"goal_stats"`
}

// Chart data type selectors.
const (
	ChartDaily    = "daily"
	ChartCategory = "category"
	ChartSkills   = "skills"
)

const dashboardWindowDays = 30

func NewDashboardService(
	userService *UserService,
	skillService *SkillService,
	progressService *ProgressService,
	goalService *GoalService,
) *DashboardService {
	return &DashboardService{
		userService:     userService,
		skillService:    skillService,
		progressService: progressService,
		goalService:     goalService,
		now:             time.Now,
	}
}

// Load builds the dashboard. Every figure is computed fresh from the
// database on each call.
func (s *DashboardService) Load(ctx context.Context, userID uint) (*Dashboard, error) {
	autoCompleted, err := s.goalService.AutoComplete(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dashboard := &Dashboard{AutoCompletedGoals: autoCompleted}

	if dashboard.UserStats, err = s.userService.Stats(ctx, userID); err != nil {
		return nil, err
	}
	if dashboard.RecentProgress, err = s.progressService.Recent(ctx, userID, 5); err != nil {
		return nil, err
	}
	if dashboard.RecentSkills, err = s.skillService.RecentSkills(ctx, userID, 5); err != nil {
		return nil, err
	}
	if dashboard.ProgressStats, err = s.progressService.Stats(ctx, userID, dashboardWindowDays, now); err != nil {
		return nil, err
	}
	if dashboard.GoalStats, err = s.goalService.Stats(ctx, userID); err != nil {
		return nil, err
	}
	if dashboard.UpcomingGoals, err = s.goalService.Upcoming(ctx, userID, 7, 5); err != nil {
		return nil, err
	}
	if dashboard.CategoryProgress, err = s.progressService.ByCategory(ctx, userID, dashboardWindowDays, now); err != nil {
		return nil, err
	}
	if dashboard.Streaks, err = s.progressService.Streaks(ctx, userID, now); err != nil {
		return nil, err
	}
	if dashboard.DailyProgress, err = s.progressService.DailySeries(ctx, userID, dashboardWindowDays, now); err != nil {
		return nil, err
	}
	return dashboard, nil
}

// LoadStatistics builds the statistics payload over a caller-chosen period.
func (s *DashboardService) LoadStatistics(ctx context.Context, userID uint, periodDays int) (*Statistics, error) {
	if periodDays <= 0 {
		periodDays = dashboardWindowDays
	}
	now := s.now()

	stats := &Statistics{PeriodDays: periodDays}
	var err error
	if stats.ProgressStats, err = s.progressService.Stats(ctx, userID, periodDays, now); err != nil {
		return nil, err
	}
	if stats.CategoryProgress, err = s.progressService.ByCategory(ctx, userID, periodDays, now); err != nil {
		return nil, err
	}
	if stats.SkillProgress, err = s.progressService.BySkill(ctx, userID, periodDays, now); err != nil {
		return nil, err
	}
	if stats.GoalStats, err = s.goalService.Stats(ctx, userID); err != nil {
		return nil, err
	}
	return stats, nil
}

// ChartData returns the series behind one dashboard chart.
func (s *DashboardService) ChartData(ctx context.Context, userID uint, chartType string, days int) (interface{}, error) {
	now := s.now()
	switch chartType {
	case ChartDaily, "":
		return s.progressService.DailySeries(ctx, userID, days, now)
	case ChartCategory:
		return s.progressService.ByCategory(ctx, userID, days, now)
	case ChartSkills:
		return s.progressService.BySkill(ctx, userID, days, now)
	default:
		return nil, models.NewValidationError("Chart type must be 'daily', 'category' or 'skills'")
	}
}
