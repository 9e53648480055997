package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"skilltrack/internal/models"

	"gorm.io/gorm"
)

// GoalRepository defines persistence operations for goals. Reads are scoped
// to the owning user through the goal's skill, and every returned goal is
// annotated with its live progress figures.
// GoalFilter narrows a goal listing. Zero values mean "no filter".
type GoalFilter struct {
	Status     string
	SkillID    uint
	CategoryID uint
	Page       int
	PerPage    int
}

type GoalRepository interface {
	GetOwned(ctx context.Context, id, userID uint) (*models.Goal, error)
	ListByUser(ctx context.Context, userID uint, filter GoalFilter) ([]models.Goal, models.Pagination, error)
	ListBySkill(ctx context.Context, skillID uint) ([]models.Goal, error)
	ActiveByUser(ctx context.Context, userID uint) ([]models.Goal, error)
	Create(ctx context.Context, goal *models.Goal) error
	Update(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, id uint) error
	MarkCompleted(ctx context.Context, id uint, at time.Time) error
	MarkIncomplete(ctx context.Context, id uint) error
	Stats(ctx context.Context, userID uint, now time.Time) (*models.GoalStats, error)
	Upcoming(ctx context.Context, userID uint, now time.Time, days, limit int) ([]models.Goal, error)
	CountActiveBySkill(ctx context.Context, skillID uint) (int64, error)
}

// Goal listing status filters.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository returns a new GoalRepository implementation.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) GetOwned(ctx context.Context, id, userID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Skill.Category").
		Joins("JOIN skills ON skills.id = goals.skill_id").
		Where("goals.id = ? AND skills.user_id = ?", id, userID).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Goal")
		}
		return nil, models.NewInternalError(err)
	}

	goals := []models.Goal{goal}
	if err := r.enrich(ctx, goals); err != nil {
		return nil, err
	}
	return &goals[0], nil
}

// ListByUser returns one page of the user's goals, newest first. The status
// filter narrows to active or completed goals; empty means all.
func (r *goalRepository) ListByUser(ctx context.Context, userID uint, filter GoalFilter) ([]models.Goal, models.Pagination, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = DefaultPerPage
	}

	base := r.db.WithContext(ctx).Model(&models.Goal{}).
		Joins("JOIN skills ON skills.id = goals.skill_id").
		Where("skills.user_id = ?", userID)
	switch filter.Status {
	case GoalStatusActive:
		base = base.Where("goals.is_completed = ?", false)
	case GoalStatusCompleted:
		base = base.Where("goals.is_completed = ?", true)
	}
	if filter.SkillID != 0 {
		base = base.Where("goals.skill_id = ?", filter.SkillID)
	}
	if filter.CategoryID != 0 {
		base = base.Where("skills.category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, models.NewInternalError(err)
	}

	pagination := models.NewPagination(int(total), filter.Page, filter.PerPage)

	var goals []models.Goal
	if err := base.
		Preload("Skill.Category").
		Order("goals.created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.ItemsPerPage).
		Find(&goals).Error; err != nil {
		return nil, models.Pagination{}, models.NewInternalError(err)
	}
	if err := r.enrich(ctx, goals); err != nil {
		return nil, models.Pagination{}, err
	}
	return goals, pagination, nil
}

// ListBySkill returns every goal on one skill, newest first. Ownership of the
// skill is the caller's responsibility.
func (r *goalRepository) ListBySkill(ctx context.Context, skillID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Skill.Category").
		Where("skill_id = ?", skillID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrich(ctx, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) ActiveByUser(ctx context.Context, userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Skill.Category").
		Joins("JOIN skills ON skills.id = goals.skill_id").
		Where("skills.user_id = ? AND goals.is_completed = ?", userID, false).
		Order("goals.created_at ASC").
		Find(&goals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrich(ctx, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if err := r.db.WithContext(ctx).Create(goal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *goalRepository) Update(ctx context.Context, goal *models.Goal) error {
	if err := r.db.WithContext(ctx).Save(goal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Goal{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *goalRepository) MarkCompleted(ctx context.Context, id uint, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&models.Goal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": at,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *goalRepository) MarkIncomplete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Model(&models.Goal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_completed": false,
			"completed_at": nil,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Stats summarizes the user's goals. Overdue means active with a deadline in
// the past; due soon means active with a deadline inside the next seven days.
func (r *goalRepository) Stats(ctx context.Context, userID uint, now time.Time) (*models.GoalStats, error) {
	var goals []models.Goal
	if err := r.db.WithContext(ctx).
		Joins("JOIN skills ON skills.id = goals.skill_id").
		Where("skills.user_id = ?", userID).
		Find(&goals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	today := models.Today(now)
	stats := &models.GoalStats{TotalGoals: len(goals)}
	for _, g := range goals {
		if g.IsCompleted {
			stats.CompletedGoals++
			continue
		}
		stats.ActiveGoals++
		if g.TargetDate == nil {
			continue
		}
		switch days := today.DaysUntil(*g.TargetDate); {
		case days < 0:
			stats.OverdueGoals++
		case days <= 7:
			stats.DueSoonGoals++
		}
	}
	return stats, nil
}

// Upcoming lists active goals whose deadline falls inside the next `days`
// days, soonest first. A non-positive limit means no limit.
func (r *goalRepository) Upcoming(ctx context.Context, userID uint, now time.Time, days, limit int) ([]models.Goal, error) {
	if days <= 0 {
		days = 7
	}
	today := models.Today(now)
	horizon := today.AddDays(days)

	query := r.db.WithContext(ctx).
		Preload("Skill.Category").
		Joins("JOIN skills ON skills.id = goals.skill_id").
		Where("skills.user_id = ? AND goals.is_completed = ?", userID, false).
		Where("goals.target_date >= ? AND goals.target_date <= ?", today, horizon).
		Order("goals.target_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var goals []models.Goal
	if err := query.Find(&goals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrich(ctx, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) CountActiveBySkill(ctx context.Context, skillID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Goal{}).
		Where("skill_id = ? AND is_completed = ?", skillID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// enrich fills the query-time fields on each goal. Hours toward a goal count
// only entries dated on or after the goal's creation day; older practice
// never satisfies a newer goal.
func (r *goalRepository) enrich(ctx context.Context, goals []models.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	skillIDs := make([]uint, 0, len(goals))
	seen := make(map[uint]bool)
	for _, g := range goals {
		if !seen[g.SkillID] {
			seen[g.SkillID] = true
			skillIDs = append(skillIDs, g.SkillID)
		}
	}

	var entries []models.ProgressEntry
	if err := r.db.WithContext(ctx).
		Where("skill_id IN ?", skillIDs).
		Find(&entries).Error; err != nil {
		return models.NewInternalError(err)
	}
	bySkill := make(map[uint][]models.ProgressEntry)
	for _, e := range entries {
		bySkill[e.SkillID] = append(bySkill[e.SkillID], e)
	}

	for i := range goals {
		g := &goals[i]
		if g.Skill != nil {
			g.SkillName = g.Skill.Name
			g.CurrentProficiency = g.Skill.CurrentProficiency
			if g.Skill.Category != nil {
				g.CategoryName = g.Skill.Category.Name
			}
		}

		since := models.NewDate(g.CreatedAt)
		var hours float64
		for _, e := range bySkill[g.SkillID] {
			if !e.EntryDate.Before(since.Time) {
				hours += e.HoursSpent
			}
		}
		g.CurrentHours = round2(hours)

		if g.TargetHours != nil && *g.TargetHours > 0 {
			pct := g.CurrentHours / *g.TargetHours * 100
			if pct > 100 {
				pct = 100
			}
			g.HoursProgressPercentage = round1(pct)
		}
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
