package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"skilltrack/internal/models"
	"skilltrack/internal/repository"
)

// InsightService derives productivity insights and recommendations from the
// user's raw activity. Everything here is recomputed on demand from the
// database; nothing is cached between calls.
type InsightService struct {
	progressRepo repository.ProgressRepository
	skillRepo    repository.SkillRepository
	categoryRepo repository.CategoryRepository
	goalRepo     repository.GoalRepository
	now          func() time.Time
}

const maxRecommendations = 5

func NewInsightService(
	progressRepo repository.ProgressRepository,
	skillRepo repository.SkillRepository,
	categoryRepo repository.CategoryRepository,
	goalRepo repository.GoalRepository,
) *InsightService {
	return &InsightService{
		progressRepo: progressRepo,
		skillRepo:    skillRepo,
		categoryRepo: categoryRepo,
		goalRepo:     goalRepo,
		now:          time.Now,
	}
}

// Insights analyzes the trailing window. Fields stay empty when the window
// has no activity; the goal completion rate is omitted entirely when the user
// has no goals, since 0% would misread as "failing".
func (s *InsightService) Insights(ctx context.Context, userID uint, days int) (*models.ProductivityInsights, error) {
	now := s.now()
	from, to := trailingWindow(days, now)

	daily, err := s.progressRepo.DailySeries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	insights := &models.ProductivityInsights{}

	if len(daily) > 0 {
		day, _ := maxByKey(daily, func(d models.DailyProgress) (string, float64) {
			return d.Date.Weekday().String(), d.TotalHours
		})
		insights.MostProductiveDay = day

		var totalHours float64
		for _, d := range daily {
			totalHours += d.TotalHours
		}
		insights.AvgDailyHours = round2(totalHours / float64(len(daily)))

		week, weekHours := maxByKey(daily, func(d models.DailyProgress) (string, float64) {
			year, wk := d.Date.ISOWeek()
			return fmt.Sprintf("%d-%02d", year, wk), d.TotalHours
		})
		insights.MostActiveWeek = week
		insights.MostActiveWeekHours = round2(weekHours)
	}

	categories, err := s.progressRepo.ByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		insights.TopCategory = categories[0].CategoryName
		insights.TopCategoryHours = categories[0].TotalHours
	}

	goalStats, err := s.goalRepo.Stats(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if goalStats.TotalGoals > 0 {
		rate := round1(float64(goalStats.CompletedGoals) / float64(goalStats.TotalGoals) * 100)
		insights.GoalCompletionRate = &rate
	}

	return insights, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// maxByKey buckets the series under fn's key and returns the key with the
// strictly largest total. Ties resolve to the key that appeared first in the
// ascending series.
func maxByKey(daily []models.DailyProgress, fn func(models.DailyProgress) (string, float64)) (string, float64) {
	totals := make(map[string]float64)
	var order []string
	for _, d := range daily {
		key, hours := fn(d)
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += hours
	}

	var bestKey string
	best := -1.0
	for _, key := range order {
		if totals[key] > best {
			best = totals[key]
			bestKey = key
		}
	}
	return bestKey, best
}

// Recommendations suggests next actions: practice idle skills, explore
// untouched categories, deepen single-skill categories, set goals for
// goalless skills. Highest priority first, capped at five; ties keep
// generation order.
func (s *InsightService) Recommendations(ctx context.Context, userID uint) ([]models.Recommendation, error) {
	skills, err := s.skillRepo.AllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListWithSkillCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Any goal on a skill, completed or not, counts as "has a goal".
	hasGoal := make(map[uint]bool)
	for _, skill := range skills {
		goals, err := s.goalRepo.ListBySkill(ctx, skill.ID)
		if err != nil {
			return nil, err
		}
		hasGoal[skill.ID] = len(goals) > 0
	}

	today := models.Today(s.now())
	var recs []models.Recommendation

	for _, skill := range skills {
		switch {
		case skill.LastProgressDate == nil:
			recs = append(recs, models.Recommendation{
				Type:        models.RecommendPracticeSkill,
				Title:       fmt.Sprintf("Start practicing %s", skill.Name),
				Description: fmt.Sprintf("You haven't logged any practice for %s yet.", skill.Name),
				Action:      "Log your first progress entry",
				Priority:    models.PriorityHigh,
				SkillID:     skill.ID,
			})
		case skill.LastProgressDate.DaysUntil(today) > 7:
			idle := skill.LastProgressDate.DaysUntil(today)
			recs = append(recs, models.Recommendation{
				Type:        models.RecommendPracticeSkill,
				Title:       fmt.Sprintf("Get back to %s", skill.Name),
				Description: fmt.Sprintf("No practice logged for %s in %d days.", skill.Name, idle),
				Action:      "Log a progress entry",
				Priority:    models.PriorityHigh,
				SkillID:     skill.ID,
			})
		}
	}

	for _, cat := range categories {
		if cat.SkillCount == 0 {
			recs = append(recs, models.Recommendation{
				Type:        models.RecommendNewCategory,
				Title:       fmt.Sprintf("Explore %s", cat.Name),
				Description: fmt.Sprintf("You have no skills in %s yet. Branching out keeps learning fresh.", cat.Name),
				Action:      "Add a skill in this category",
				Priority:    models.PriorityMedium,
				CategoryID:  cat.ID,
			})
		}
	}

	for _, skill := range skills {
		if !hasGoal[skill.ID] {
			recs = append(recs, models.Recommendation{
				Type:        models.RecommendSetGoal,
				Title:       fmt.Sprintf("Set a goal for %s", skill.Name),
				Description: fmt.Sprintf("%s has no goal yet. A target keeps practice focused.", skill.Name),
				Action:      "Create a goal",
				Priority:    models.PriorityMedium,
				SkillID:     skill.ID,
			})
		}
	}

	for _, cat := range categories {
		if cat.SkillCount == 1 {
			recs = append(recs, models.Recommendation{
				Type:        models.RecommendExpandCategory,
				Title:       fmt.Sprintf("Expand your %s skills", cat.Name),
				Description: fmt.Sprintf("You only track one skill in %s. Related skills reinforce each other.", cat.Name),
				Action:      "Add another skill in this category",
				Priority:    models.PriorityLow,
				CategoryID:  cat.ID,
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return models.PriorityRank(recs[i].Priority) > models.PriorityRank(recs[j].Priority)
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs, nil
}
