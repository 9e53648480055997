package repository

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"skilltrack/internal/models"

	"gorm.io/gorm"
)

// ProgressFilter narrows a progress listing. Zero values mean "no filter";
// Page and PerPage follow the usual defaults when unset.
type ProgressFilter struct {
	SkillID     uint
	Proficiency models.Proficiency
	From        models.Date
	To          models.Date
	Page        int
	PerPage     int
}

// DefaultPerPage is the page size used when a listing does not ask for one.
const DefaultPerPage = 10

// ProgressRepository defines persistence operations for progress entries.
// All reads are user-scoped through the owning skill. The window aggregates
// (daily series, category rollups, streaks, stats) fetch rows and do the math
// in Go so the results are identical on every database engine.
type ProgressRepository interface {
	GetOwned(ctx context.Context, id, userID uint) (*models.ProgressEntry, error)
	ListByUser(ctx context.Context, userID uint, filter ProgressFilter) ([]models.ProgressEntry, models.Pagination, error)
	Create(ctx context.Context, entry *models.ProgressEntry) error
	Update(ctx context.Context, entry *models.ProgressEntry) error
	Delete(ctx context.Context, id uint) error
	Recent(ctx context.Context, userID uint, limit int) ([]models.ProgressEntry, error)
	DailySeries(ctx context.Context, userID uint, from, to models.Date) ([]models.DailyProgress, error)
	SkillDailySeries(ctx context.Context, skillID uint, from, to models.Date) ([]models.DailyProgress, error)
	ByCategory(ctx context.Context, userID uint, from, to models.Date) ([]models.CategoryProgress, error)
	BySkill(ctx context.Context, userID uint, from, to models.Date) ([]models.SkillProgress, error)
	Streaks(ctx context.Context, userID uint, now time.Time) (*models.StreakInfo, error)
	Stats(ctx context.Context, userID uint, from, to models.Date) (*models.ProgressStats, error)
	HoursForSkillSince(ctx context.Context, skillID uint, from models.Date) (float64, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository returns a new ProgressRepository implementation.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) GetOwned(ctx context.Context, id, userID uint) (*models.ProgressEntry, error) {
	var entry models.ProgressEntry
	if err := r.db.WithContext(ctx).
		Preload("Skill.Category").
		Joins("JOIN skills ON skills.id = progress_entries.skill_id").
		Where("progress_entries.id = ? AND skills.user_id = ?", id, userID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Progress entry")
		}
		return nil, models.NewInternalError(err)
	}
	entries := []models.ProgressEntry{entry}
	annotateEntries(entries)
	return &entries[0], nil
}

// ListByUser returns one page of the user's entries, newest first: entry date
// descending with creation time as tie-break. The page number is clamped into
// range before the query runs.
func (r *progressRepository) ListByUser(ctx context.Context, userID uint, filter ProgressFilter) ([]models.ProgressEntry, models.Pagination, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = DefaultPerPage
	}

	base := r.db.WithContext(ctx).Model(&models.ProgressEntry{}).
		Joins("JOIN skills ON skills.id = progress_entries.skill_id").
		Where("skills.user_id = ?", userID)
	if filter.SkillID != 0 {
		base = base.Where("progress_entries.skill_id = ?", filter.SkillID)
	}
	if filter.Proficiency != "" {
		base = base.Where("progress_entries.proficiency_level = ?", filter.Proficiency)
	}
	if !filter.From.IsZero() {
		base = base.Where("progress_entries.entry_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		base = base.Where("progress_entries.entry_date <= ?", filter.To)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, models.NewInternalError(err)
	}

	pagination := models.NewPagination(int(total), filter.Page, filter.PerPage)

	var entries []models.ProgressEntry
	if err := base.
		Preload("Skill.Category").
		Order("progress_entries.entry_date DESC, progress_entries.created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.ItemsPerPage).
		Find(&entries).Error; err != nil {
		return nil, models.Pagination{}, models.NewInternalError(err)
	}
	annotateEntries(entries)
	return entries, pagination, nil
}

func (r *progressRepository) Create(ctx context.Context, entry *models.ProgressEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *progressRepository) Update(ctx context.Context, entry *models.ProgressEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *progressRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ProgressEntry{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *progressRepository) Recent(ctx context.Context, userID uint, limit int) ([]models.ProgressEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	var entries []models.ProgressEntry
	if err := r.db.WithContext(ctx).
		Preload("Skill.Category").
		Joins("JOIN skills ON skills.id = progress_entries.skill_id").
		Where("skills.user_id = ?", userID).
		Order("progress_entries.entry_date DESC, progress_entries.created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	annotateEntries(entries)
	return entries, nil
}

// DailySeries groups the window's entries by calendar day, oldest first. Days
// without entries do not appear; consumers must not assume a contiguous
// series.
func (r *progressRepository) DailySeries(ctx context.Context, userID uint, from, to models.Date) ([]models.DailyProgress, error) {
	entries, err := r.windowEntries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return groupByDay(entries), nil
}

// SkillDailySeries is the daily series restricted to one skill. Ownership of
// the skill is the caller's responsibility.
func (r *progressRepository) SkillDailySeries(ctx context.Context, skillID uint, from, to models.Date) ([]models.DailyProgress, error) {
	query := r.db.WithContext(ctx).Where("skill_id = ?", skillID)
	if !from.IsZero() {
		query = query.Where("entry_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("entry_date <= ?", to)
	}

	var entries []models.ProgressEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groupByDay(entries), nil
}

func groupByDay(entries []models.ProgressEntry) []models.DailyProgress {
	byDay := make(map[string]*models.DailyProgress)
	for _, e := range entries {
		key := e.EntryDate.String()
		day, ok := byDay[key]
		if !ok {
			day = &models.DailyProgress{Date: e.EntryDate}
			byDay[key] = day
		}
		day.TotalHours += e.HoursSpent
		day.TotalTasks += e.TasksCompleted
		day.EntryCount++
	}

	series := make([]models.DailyProgress, 0, len(byDay))
	for _, day := range byDay {
		day.TotalHours = round2(day.TotalHours)
		series = append(series, *day)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date.Time)
	})
	return series
}

// ByCategory rolls the window's entries up per category, busiest first with
// name as tie-break. Categories with no activity in the window are excluded
// even when the user has skills in them.
func (r *progressRepository) ByCategory(ctx context.Context, userID uint, from, to models.Date) ([]models.CategoryProgress, error) {
	entries, err := r.windowEntries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint]*models.CategoryProgress)
	for _, e := range entries {
		if e.Skill == nil || e.Skill.Category == nil {
			continue
		}
		cat := e.Skill.Category
		agg, ok := byCategory[cat.ID]
		if !ok {
			agg = &models.CategoryProgress{CategoryID: cat.ID, CategoryName: cat.Name}
			byCategory[cat.ID] = agg
		}
		agg.TotalHours += e.HoursSpent
		agg.TotalTasks += e.TasksCompleted
		agg.TotalEntries++
	}

	result := make([]models.CategoryProgress, 0, len(byCategory))
	for _, agg := range byCategory {
		agg.TotalHours = round2(agg.TotalHours)
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalHours != result[j].TotalHours {
			return result[i].TotalHours > result[j].TotalHours
		}
		return result[i].CategoryName < result[j].CategoryName
	})
	return result, nil
}

// BySkill rolls the window's entries up per skill, busiest first with name as
// tie-break. Skills with no activity in the window are excluded.
func (r *progressRepository) BySkill(ctx context.Context, userID uint, from, to models.Date) ([]models.SkillProgress, error) {
	entries, err := r.windowEntries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	bySkill := make(map[uint]*models.SkillProgress)
	for _, e := range entries {
		if e.Skill == nil {
			continue
		}
		agg, ok := bySkill[e.SkillID]
		if !ok {
			agg = &models.SkillProgress{SkillID: e.SkillID, SkillName: e.Skill.Name}
			if e.Skill.Category != nil {
				agg.CategoryName = e.Skill.Category.Name
			}
			bySkill[e.SkillID] = agg
		}
		agg.TotalHours += e.HoursSpent
		agg.TotalTasks += e.TasksCompleted
		agg.TotalEntries++
	}

	result := make([]models.SkillProgress, 0, len(bySkill))
	for _, agg := range bySkill {
		agg.TotalHours = round2(agg.TotalHours)
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalHours != result[j].TotalHours {
			return result[i].TotalHours > result[j].TotalHours
		}
		return result[i].SkillName < result[j].SkillName
	})
	return result, nil
}

// Streaks derives both streak figures from the trailing 30-day window.
// CurrentStreak is the consecutive run of active days ending at today or at
// the most recent active day. LongestStreak is the count of distinct active
// days in the window, which overstates a true longest run when activity has
// gaps.
func (r *progressRepository) Streaks(ctx context.Context, userID uint, now time.Time) (*models.StreakInfo, error) {
	today := models.Today(now)
	from := today.AddDays(-29)

	entries, err := r.windowEntries(ctx, userID, from, today)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var dates []models.Date
	for _, e := range entries {
		key := e.EntryDate.String()
		if !seen[key] {
			seen[key] = true
			dates = append(dates, e.EntryDate)
		}
	}

	info := &models.StreakInfo{LongestStreak: len(dates)}
	if len(dates) == 0 {
		return info, nil
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j].Time)
	})

	// The run ends at today or, if today is inactive, at the most recent
	// active day.
	current := 0
	expected := today
	if !dates[0].Equal(today.Time) {
		expected = dates[0]
	}
	for _, d := range dates {
		if !d.Equal(expected.Time) {
			break
		}
		current++
		expected = expected.AddDays(-1)
	}
	info.CurrentStreak = current
	return info, nil
}

// Stats summarizes the window: totals, per-entry average, distinct skills and
// distinct active days.
func (r *progressRepository) Stats(ctx context.Context, userID uint, from, to models.Date) (*models.ProgressStats, error) {
	entries, err := r.windowEntries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &models.ProgressStats{TotalEntries: len(entries)}
	skillSet := make(map[uint]bool)
	daySet := make(map[string]bool)
	for _, e := range entries {
		stats.TotalHours += e.HoursSpent
		stats.TotalTasks += e.TasksCompleted
		skillSet[e.SkillID] = true
		daySet[e.EntryDate.String()] = true
	}
	stats.SkillsWithProgress = len(skillSet)
	stats.ActiveDays = len(daySet)
	stats.TotalHours = round2(stats.TotalHours)
	if stats.TotalEntries > 0 {
		stats.AvgHoursPerEntry = round2(stats.TotalHours / float64(stats.TotalEntries))
	}
	return stats, nil
}

// HoursForSkillSince sums the hours of a skill's entries dated on or after
// from. Goal progress is measured with this: only practice logged since the
// goal was set counts toward its hour target.
func (r *progressRepository) HoursForSkillSince(ctx context.Context, skillID uint, from models.Date) (float64, error) {
	var entries []models.ProgressEntry
	if err := r.db.WithContext(ctx).
		Where("skill_id = ? AND entry_date >= ?", skillID, from).
		Find(&entries).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	var hours float64
	for _, e := range entries {
		hours += e.HoursSpent
	}
	return round2(hours), nil
}

// windowEntries loads every entry of the user inside [from, to], with skill
// and category attached. Zero bounds are open-ended.
func (r *progressRepository) windowEntries(ctx context.Context, userID uint, from, to models.Date) ([]models.ProgressEntry, error) {
	query := r.db.WithContext(ctx).
		Preload("Skill.Category").
		Joins("JOIN skills ON skills.id = progress_entries.skill_id").
		Where("skills.user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("progress_entries.entry_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("progress_entries.entry_date <= ?", to)
	}

	var entries []models.ProgressEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func annotateEntries(entries []models.ProgressEntry) {
	for i := range entries {
		if entries[i].Skill == nil {
			continue
		}
		entries[i].SkillName = entries[i].Skill.Name
		if entries[i].Skill.Category != nil {
			entries[i].CategoryName = entries[i].Skill.Category.Name
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
