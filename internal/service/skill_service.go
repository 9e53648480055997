package service

import (
	"context"
	"strings"
	"time"

	"skilltrack/internal/models"
	"skilltrack/internal/repository"
)

type SkillService struct {
	skillRepo    repository.SkillRepository
	categoryRepo repository.CategoryRepository
	progressRepo repository.ProgressRepository
	goalRepo     repository.GoalRepository
	now          func() time.Time
}

type CreateSkillInput struct {
	UserID      uint
	CategoryID  uint
	Name        string
	Description string
	Proficiency string
}

type UpdateSkillInput struct {
	UserID      uint
	SkillID     uint
	CategoryID  uint
	Name        string
	Description *string
}

type ListSkillsInput struct {
	UserID      uint
	CategoryID  uint
	Proficiency string
	Search      string
	Page        int
	PerPage     int
}

// SkillSummary bundles one skill with its practice history and goals.
type SkillSummary struct {
	Skill         *models.Skill          `json:"skill"`
	DailyProgress []models.DailyProgress `json:"daily_progress"`
	Goals         []models.Goal          `json:"goals"`
}

func NewSkillService(
	skillRepo repository.SkillRepository,
	categoryRepo repository.CategoryRepository,
	progressRepo repository.ProgressRepository,
	goalRepo repository.GoalRepository,
) *SkillService {
	return &SkillService{
		skillRepo:    skillRepo,
		categoryRepo: categoryRepo,
		progressRepo: progressRepo,
		goalRepo:     goalRepo,
		now:          time.Now,
	}
}

func (s *SkillService) ListSkills(ctx context.Context, in ListSkillsInput) ([]models.Skill, models.Pagination, error) {
	filter := repository.SkillFilter{
		CategoryID: in.CategoryID,
		Search:     strings.TrimSpace(in.Search),
		Page:       in.Page,
		PerPage:    in.PerPage,
	}
	if in.Proficiency != "" {
		level, err := models.ParseProficiency(in.Proficiency)
		if err != nil {
			return nil, models.Pagination{}, models.NewValidationError(err.Error())
		}
		filter.Proficiency = level
	}
	return s.skillRepo.ListByUser(ctx, in.UserID, filter)
}

func (s *SkillService) GetSkill(ctx context.Context, userID, skillID uint) (*models.Skill, error) {
	return s.skillRepo.GetOwned(ctx, skillID, userID)
}

// RecentSkills lists the user's most recently touched skills for the
// dashboard feed.
func (s *SkillService) RecentSkills(ctx context.Context, userID uint, limit int) ([]models.Skill, error) {
	return s.skillRepo.RecentByUser(ctx, userID, limit)
}

func (s *SkillService) CreateSkill(ctx context.Context, in CreateSkillInput) (*models.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 || len(name) > 100 {
		return nil, models.NewValidationError("Skill name must be between 2 and 100 characters")
	}
	if len(in.Description) > 1000 {
		return nil, models.NewValidationError("Description must not exceed 1000 characters")
	}

	proficiency := models.ProficiencyBeginner
	if in.Proficiency != "" {
		level, err := models.ParseProficiency(in.Proficiency)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		proficiency = level
	}

	exists, err := s.categoryRepo.Exists(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewValidationError("Category does not exist")
	}

	taken, err := s.skillRepo.NameTaken(ctx, in.UserID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("You already have a skill with this name")
	}

	skill := &models.Skill{
		UserID:             in.UserID,
		CategoryID:         in.CategoryID,
		Name:               name,
		Description:        strings.TrimSpace(in.Description),
		CurrentProficiency: proficiency,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return s.skillRepo.GetOwned(ctx, skill.ID, in.UserID)
}

// UpdateSkill changes a skill's name, description or category. Proficiency is
// not accepted here: it moves only through progress entries.
func (s *SkillService) UpdateSkill(ctx context.Context, in UpdateSkillInput) (*models.Skill, error) {
	skill, err := s.skillRepo.GetOwned(ctx, in.SkillID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		name := strings.TrimSpace(in.Name)
		if len(name) < 2 || len(name) > 100 {
			return nil, models.NewValidationError("Skill name must be between 2 and 100 characters")
		}
		if name != skill.Name {
			taken, err := s.skillRepo.NameTaken(ctx, in.UserID, name, skill.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, models.NewValidationError("You already have a skill with this name")
			}
			skill.Name = name
		}
	}
	if in.Description != nil {
		if len(*in.Description) > 1000 {
			return nil, models.NewValidationError("Description must not exceed 1000 characters")
		}
		skill.Description = strings.TrimSpace(*in.Description)
	}
	if in.CategoryID != 0 && in.CategoryID != skill.CategoryID {
		exists, err := s.categoryRepo.Exists(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewValidationError("Category does not exist")
		}
		skill.CategoryID = in.CategoryID
	}

	// Save the bare row; the preloaded association must not be written back.
	skill.Category = nil
	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return s.skillRepo.GetOwned(ctx, skill.ID, in.UserID)
}

func (s *SkillService) DeleteSkill(ctx context.Context, userID, skillID uint) error {
	if _, err := s.skillRepo.GetOwned(ctx, skillID, userID); err != nil {
		return err
	}
	return s.skillRepo.Delete(ctx, skillID)
}

// Summary returns the skill with its daily series over the trailing window
// and every goal set on it.
func (s *SkillService) Summary(ctx context.Context, userID, skillID uint, days int) (*SkillSummary, error) {
	skill, err := s.skillRepo.GetOwned(ctx, skillID, userID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = 30
	}
	today := models.Today(s.now())
	from := today.AddDays(-(days - 1))

	series, err := s.progressRepo.SkillDailySeries(ctx, skillID, from, today)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.ListBySkill(ctx, skillID)
	if err != nil {
		return nil, err
	}

	return &SkillSummary{
		Skill:         skill,
		DailyProgress: series,
		Goals:         goals,
	}, nil
}
