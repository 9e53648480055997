package service

import (
	"context"
	"strings"
	"time"

	"skilltrack/internal/models"
	"skilltrack/internal/repository"
)

type ProgressService struct {
	progressRepo repository.ProgressRepository
	skillRepo    repository.SkillRepository
	now          func() time.Time
}

type CreateProgressInput struct {
	UserID         uint
	SkillID        uint
	HoursSpent     float64
	TasksCompleted int
	Proficiency    string
	Notes          string
	EntryDate      models.Date
}

type UpdateProgressInput struct {
	UserID         uint
	EntryID        uint
	HoursSpent     *float64
	TasksCompleted *int
	Proficiency    string
	Notes          *string
	EntryDate      *models.Date
}

type ListProgressInput struct {
	UserID      uint
	SkillID     uint
	Proficiency string
	From        models.Date
	To          models.Date
	Page        int
	PerPage     int
}

func NewProgressService(progressRepo repository.ProgressRepository, skillRepo repository.SkillRepository) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		skillRepo:    skillRepo,
		now:          time.Now,
	}
}

func (s *ProgressService) ListEntries(ctx context.Context, in ListProgressInput) ([]models.ProgressEntry, models.Pagination, error) {
	if in.SkillID != 0 {
		if _, err := s.skillRepo.GetOwned(ctx, in.SkillID, in.UserID); err != nil {
			return nil, models.Pagination{}, err
		}
	}

	filter := repository.ProgressFilter{
		SkillID: in.SkillID,
		From:    in.From,
		To:      in.To,
		Page:    in.Page,
		PerPage: in.PerPage,
	}
	if in.Proficiency != "" {
		level, err := models.ParseProficiency(in.Proficiency)
		if err != nil {
			return nil, models.Pagination{}, models.NewValidationError(err.Error())
		}
		filter.Proficiency = level
	}
	return s.progressRepo.ListByUser(ctx, in.UserID, filter)
}

func (s *ProgressService) GetEntry(ctx context.Context, userID, entryID uint) (*models.ProgressEntry, error) {
	return s.progressRepo.GetOwned(ctx, entryID, userID)
}

// CreateEntry logs practice against an owned skill and realigns the skill's
// proficiency with its newest entry.
func (s *ProgressService) CreateEntry(ctx context.Context, in CreateProgressInput) (*models.ProgressEntry, error) {
	if _, err := s.skillRepo.GetOwned(ctx, in.SkillID, in.UserID); err != nil {
		return nil, err
	}

	level, err := models.ParseProficiency(in.Proficiency)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	entryDate := in.EntryDate
	if entryDate.IsZero() {
		entryDate = models.Today(s.now())
	}
	if err := s.validateEntryFields(in.HoursSpent, in.TasksCompleted, in.Notes, entryDate); err != nil {
		return nil, err
	}

	entry := &models.ProgressEntry{
		SkillID:          in.SkillID,
		HoursSpent:       in.HoursSpent,
		TasksCompleted:   in.TasksCompleted,
		ProficiencyLevel: level,
		Notes:            strings.TrimSpace(in.Notes),
		EntryDate:        entryDate,
	}
	if err := s.progressRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.skillRepo.ResyncProficiency(ctx, in.SkillID); err != nil {
		return nil, err
	}
	return s.progressRepo.GetOwned(ctx, entry.ID, in.UserID)
}

// UpdateEntry edits an entry in place. The skill linkage is immutable: an
// entry can never move to another skill.
func (s *ProgressService) UpdateEntry(ctx context.Context, in UpdateProgressInput) (*models.ProgressEntry, error) {
	entry, err := s.progressRepo.GetOwned(ctx, in.EntryID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.HoursSpent != nil {
		entry.HoursSpent = *in.HoursSpent
	}
	if in.TasksCompleted != nil {
		entry.TasksCompleted = *in.TasksCompleted
	}
	if in.Proficiency != "" {
		level, err := models.ParseProficiency(in.Proficiency)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		entry.ProficiencyLevel = level
	}
	if in.Notes != nil {
		entry.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.EntryDate != nil && !in.EntryDate.IsZero() {
		entry.EntryDate = *in.EntryDate
	}
	if err := s.validateEntryFields(entry.HoursSpent, entry.TasksCompleted, entry.Notes, entry.EntryDate); err != nil {
		return nil, err
	}

	entry.Skill = nil
	if err := s.progressRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.skillRepo.ResyncProficiency(ctx, entry.SkillID); err != nil {
		return nil, err
	}
	return s.progressRepo.GetOwned(ctx, entry.ID, in.UserID)
}

// DeleteEntry removes an entry and resyncs the parent skill. Deleting the
// last entry leaves the skill's proficiency at its last known value.
func (s *ProgressService) DeleteEntry(ctx context.Context, userID, entryID uint) error {
	entry, err := s.progressRepo.GetOwned(ctx, entryID, userID)
	if err != nil {
		return err
	}
	if err := s.progressRepo.Delete(ctx, entryID); err != nil {
		return err
	}
	return s.skillRepo.ResyncProficiency(ctx, entry.SkillID)
}

func (s *ProgressService) Recent(ctx context.Context, userID uint, limit int) ([]models.ProgressEntry, error) {
	return s.progressRepo.Recent(ctx, userID, limit)
}

// DailySeries returns the per-day rollup over the trailing `days` window
// ending today.
func (s *ProgressService) DailySeries(ctx context.Context, userID uint, days int, now time.Time) ([]models.DailyProgress, error) {
	from, to := trailingWindow(days, now)
	return s.progressRepo.DailySeries(ctx, userID, from, to)
}

func (s *ProgressService) ByCategory(ctx context.Context, userID uint, days int, now time.Time) ([]models.CategoryProgress, error) {
	from, to := trailingWindow(days, now)
	return s.progressRepo.ByCategory(ctx, userID, from, to)
}

func (s *ProgressService) BySkill(ctx context.Context, userID uint, days int, now time.Time) ([]models.SkillProgress, error) {
	from, to := trailingWindow(days, now)
	return s.progressRepo.BySkill(ctx, userID, from, to)
}

func (s *ProgressService) Streaks(ctx context.Context, userID uint, now time.Time) (*models.StreakInfo, error) {
	return s.progressRepo.Streaks(ctx, userID, now)
}

func (s *ProgressService) Stats(ctx context.Context, userID uint, days int, now time.Time) (*models.ProgressStats, error) {
	from, to := trailingWindow(days, now)
	return s.progressRepo.Stats(ctx, userID, from, to)
}

func (s *ProgressService) validateEntryFields(hours float64, tasks int, notes string, entryDate models.Date) error {
	if hours < 0 || hours > 24 {
		return models.NewValidationError("Hours spent must be between 0 and 24")
	}
	if tasks < 0 || tasks > 1000 {
		return models.NewValidationError("Tasks completed must be between 0 and 1000")
	}
	if len(notes) > 1000 {
		return models.NewValidationError("Notes must not exceed 1000 characters")
	}
	if entryDate.After(models.Today(s.now()).Time) {
		return models.NewValidationError("Entry date cannot be in the future")
	}
	return nil
}

// trailingWindow is the inclusive date range of the last `days` calendar days
// ending today. A 7-day window on a Sunday starts the previous Monday.
func trailingWindow(days int, now time.Time) (models.Date, models.Date) {
	if days <= 0 {
		days = 30
	}
	to := models.Today(now)
	return to.AddDays(-(days - 1)), to
}
