package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"skilltrack/internal/middleware"
	"skilltrack/internal/models"
	"skilltrack/internal/repository"
)

type GoalService struct {
	goalRepo  repository.GoalRepository
	skillRepo repository.SkillRepository
	now       func() time.Time
}

type CreateGoalInput struct {
	UserID            uint
	SkillID           uint
	TargetProficiency string
	TargetDate        *models.Date
	TargetHours       *float64
	Description       string
}

type UpdateGoalInput struct {
	UserID            uint
	GoalID            uint
	TargetProficiency string
	TargetDate        *models.Date
	TargetHours       *float64
	Description       *string
}

type ListGoalsInput struct {
	UserID     uint
	Status     string
	SkillID    uint
	CategoryID uint
	Page       int
	PerPage    int
}

func NewGoalService(goalRepo repository.GoalRepository, skillRepo repository.SkillRepository) *GoalService {
	return &GoalService{
		goalRepo:  goalRepo,
		skillRepo: skillRepo,
		now:       time.Now,
	}
}

func (s *GoalService) ListGoals(ctx context.Context, in ListGoalsInput) ([]models.Goal, models.Pagination, error) {
	switch in.Status {
	case "", repository.GoalStatusActive, repository.GoalStatusCompleted:
	default:
		return nil, models.Pagination{}, models.NewValidationError("Status must be 'active' or 'completed'")
	}
	return s.goalRepo.ListByUser(ctx, in.UserID, repository.GoalFilter{
		Status:     in.Status,
		SkillID:    in.SkillID,
		CategoryID: in.CategoryID,
		Page:       in.Page,
		PerPage:    in.PerPage,
	})
}

func (s *GoalService) GetGoal(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	return s.goalRepo.GetOwned(ctx, goalID, userID)
}

func (s *GoalService) CreateGoal(ctx context.Context, in CreateGoalInput) (*models.Goal, error) {
	if _, err := s.skillRepo.GetOwned(ctx, in.SkillID, in.UserID); err != nil {
		return nil, err
	}

	level, err := models.ParseProficiency(in.TargetProficiency)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.validateTargets(in.TargetDate, in.TargetHours, in.Description); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		SkillID:           in.SkillID,
		TargetProficiency: level,
		TargetDate:        in.TargetDate,
		TargetHours:       in.TargetHours,
		Description:       strings.TrimSpace(in.Description),
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return s.goalRepo.GetOwned(ctx, goal.ID, in.UserID)
}

// UpdateGoal edits an active goal's targets. Completed goals are frozen until
// reopened.
func (s *GoalService) UpdateGoal(ctx context.Context, in UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.goalRepo.GetOwned(ctx, in.GoalID, in.UserID)
	if err != nil {
		return nil, err
	}
	if goal.IsCompleted {
		return nil, models.NewConflictError("Cannot update a completed goal")
	}

	if in.TargetProficiency != "" {
		level, err := models.ParseProficiency(in.TargetProficiency)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		goal.TargetProficiency = level
	}
	if in.TargetDate != nil {
		if in.TargetDate.IsZero() {
			goal.TargetDate = nil
		} else {
			goal.TargetDate = in.TargetDate
		}
	}
	if in.TargetHours != nil {
		if *in.TargetHours == 0 {
			goal.TargetHours = nil
		} else {
			goal.TargetHours = in.TargetHours
		}
	}
	if in.Description != nil {
		goal.Description = strings.TrimSpace(*in.Description)
	}
	if err := s.validateTargets(goal.TargetDate, goal.TargetHours, goal.Description); err != nil {
		return nil, err
	}

	goal.Skill = nil
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return s.goalRepo.GetOwned(ctx, goal.ID, in.UserID)
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID uint) error {
	if _, err := s.goalRepo.GetOwned(ctx, goalID, userID); err != nil {
		return err
	}
	return s.goalRepo.Delete(ctx, goalID)
}

// CompleteGoal marks a goal done by explicit user action. Completing an
// already-completed goal is a conflict, not a no-op.
func (s *GoalService) CompleteGoal(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	goal, err := s.goalRepo.GetOwned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	if goal.IsCompleted {
		return nil, models.NewConflictError("Goal is already completed")
	}
	if err := s.goalRepo.MarkCompleted(ctx, goalID, s.now()); err != nil {
		return nil, err
	}
	return s.goalRepo.GetOwned(ctx, goalID, userID)
}

// ReopenGoal puts a completed goal back in play. Only an explicit user action
// does this; auto-completion never reopens anything.
func (s *GoalService) ReopenGoal(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	goal, err := s.goalRepo.GetOwned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	if !goal.IsCompleted {
		return nil, models.NewConflictError("Goal is not completed")
	}
	if err := s.goalRepo.MarkIncomplete(ctx, goalID); err != nil {
		return nil, err
	}
	return s.goalRepo.GetOwned(ctx, goalID, userID)
}

func (s *GoalService) Stats(ctx context.Context, userID uint) (*models.GoalStats, error) {
	return s.goalRepo.Stats(ctx, userID, s.now())
}

func (s *GoalService) Upcoming(ctx context.Context, userID uint, days, limit int) ([]models.Goal, error) {
	return s.goalRepo.Upcoming(ctx, userID, s.now(), days, limit)
}

// AutoComplete scans the user's active goals and completes every one whose
// target is met: proficiency at or above the target level, or logged hours
// reaching the hour target. A failure on one goal is logged and skipped so the
// rest of the scan still runs. Returns the goals completed in this pass.
func (s *GoalService) AutoComplete(ctx context.Context, userID uint) ([]models.Goal, error) {
	active, err := s.goalRepo.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var completed []models.Goal
	for _, goal := range active {
		if !goalTargetMet(goal) {
			continue
		}
		if err := s.goalRepo.MarkCompleted(ctx, goal.ID, s.now()); err != nil {
			middleware.Logger.ErrorContext(ctx, "goal auto-completion failed",
				slog.Any("goal_id", goal.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		goal.IsCompleted = true
		completed = append(completed, goal)
	}
	return completed, nil
}

func goalTargetMet(goal models.Goal) bool {
	if goal.CurrentProficiency.AtLeast(goal.TargetProficiency) {
		return true
	}
	return goal.TargetHours != nil && goal.CurrentHours >= *goal.TargetHours
}

func (s *GoalService) validateTargets(targetDate *models.Date, targetHours *float64, description string) error {
	if targetDate == nil && targetHours == nil {
		return models.NewValidationError("Goal needs a target date or a target hours amount")
	}
	if targetHours != nil && (*targetHours <= 0 || *targetHours > 10000) {
		return models.NewValidationError("Target hours must be between 0 and 10000")
	}
	if targetDate != nil && !targetDate.After(models.Today(s.now()).Time) {
		return models.NewValidationError("Target date must be in the future")
	}
	if len(description) > 1000 {
		return models.NewValidationError("Description must not exceed 1000 characters")
	}
	return nil
}
