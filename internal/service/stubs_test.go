package service

import (
	"context"
	"testing"
	"time"

	"skilltrack/internal/models"
	"skilltrack/internal/repository"

	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, models.CodeValidation, appErr.Code)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, models.CodeConflict, appErr.Code)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	statsFn         func(context.Context, uint) (*models.UserStats, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	return s.statsFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		statsFn:         func(_ context.Context, _ uint) (*models.UserStats, error) { return &models.UserStats{}, nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listFn           func(context.Context) ([]models.Category, error)
	listWithCountsFn func(context.Context, uint) ([]models.Category, error)
	getByIDFn        func(context.Context, uint) (*models.Category, error)
	existsFn         func(context.Context, uint) (bool, error)
}

func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) ListWithSkillCounts(ctx context.Context, userID uint) ([]models.Category, error) {
	return s.listWithCountsFn(ctx, userID)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn:           func(_ context.Context) ([]models.Category, error) { return nil, nil },
		listWithCountsFn: func(_ context.Context, _ uint) ([]models.Category, error) { return nil, nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.Category, error) { return &models.Category{ID: id}, nil },
		existsFn:         func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// skillRepoStub is a stub for repository.SkillRepository.
type skillRepoStub struct {
	getOwnedFn          func(context.Context, uint, uint) (*models.Skill, error)
	listByUserFn        func(context.Context, uint, repository.SkillFilter) ([]models.Skill, models.Pagination, error)
	allByUserFn         func(context.Context, uint) ([]models.Skill, error)
	recentByUserFn      func(context.Context, uint, int) ([]models.Skill, error)
	nameTakenFn         func(context.Context, uint, string, uint) (bool, error)
	createFn            func(context.Context, *models.Skill) error
	updateFn            func(context.Context, *models.Skill) error
	deleteFn            func(context.Context, uint) error
	setProficiencyFn    func(context.Context, uint, models.Proficiency) error
	resyncProficiencyFn func(context.Context, uint) error
}

func (s *skillRepoStub) GetOwned(ctx context.Context, id, userID uint) (*models.Skill, error) {
	return s.getOwnedFn(ctx, id, userID)
}
func (s *skillRepoStub) ListByUser(ctx context.Context, userID uint, filter repository.SkillFilter) ([]models.Skill, models.Pagination, error) {
	return s.listByUserFn(ctx, userID, filter)
}
func (s *skillRepoStub) AllByUser(ctx context.Context, userID uint) ([]models.Skill, error) {
	return s.allByUserFn(ctx, userID)
}
func (s *skillRepoStub) RecentByUser(ctx context.Context, userID uint, limit int) ([]models.Skill, error) {
	return s.recentByUserFn(ctx, userID, limit)
}
func (s *skillRepoStub) NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error) {
	return s.nameTakenFn(ctx, userID, name, excludeID)
}
func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) Update(ctx context.Context, skill *models.Skill) error {
	return s.updateFn(ctx, skill)
}
func (s *skillRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *skillRepoStub) SetProficiency(ctx context.Context, id uint, level models.Proficiency) error {
	return s.setProficiencyFn(ctx, id, level)
}
func (s *skillRepoStub) ResyncProficiency(ctx context.Context, id uint) error {
	return s.resyncProficiencyFn(ctx, id)
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		getOwnedFn: func(_ context.Context, id, userID uint) (*models.Skill, error) {
			return &models.Skill{ID: id, UserID: userID}, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ repository.SkillFilter) ([]models.Skill, models.Pagination, error) {
			return nil, models.Pagination{}, nil
		},
		allByUserFn:         func(_ context.Context, _ uint) ([]models.Skill, error) { return nil, nil },
		recentByUserFn:      func(_ context.Context, _ uint, _ int) ([]models.Skill, error) { return nil, nil },
		nameTakenFn:         func(_ context.Context, _ uint, _ string, _ uint) (bool, error) { return false, nil },
		createFn:            func(_ context.Context, _ *models.Skill) error { return nil },
		updateFn:            func(_ context.Context, _ *models.Skill) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
		setProficiencyFn:    func(_ context.Context, _ uint, _ models.Proficiency) error { return nil },
		resyncProficiencyFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// progressRepoStub is a stub for repository.ProgressRepository.
type progressRepoStub struct {
	getOwnedFn           func(context.Context, uint, uint) (*models.ProgressEntry, error)
	listByUserFn         func(context.Context, uint, repository.ProgressFilter) ([]models.ProgressEntry, models.Pagination, error)
	createFn             func(context.Context, *models.ProgressEntry) error
	updateFn             func(context.Context, *models.ProgressEntry) error
	deleteFn             func(context.Context, uint) error
	recentFn             func(context.Context, uint, int) ([]models.ProgressEntry, error)
	dailySeriesFn        func(context.Context, uint, models.Date, models.Date) ([]models.DailyProgress, error)
	skillDailySeriesFn   func(context.Context, uint, models.Date, models.Date) ([]models.DailyProgress, error)
	byCategoryFn         func(context.Context, uint, models.Date, models.Date) ([]models.CategoryProgress, error)
	bySkillFn            func(context.Context, uint, models.Date, models.Date) ([]models.SkillProgress, error)
	streaksFn            func(context.Context, uint, time.Time) (*models.StreakInfo, error)
	statsFn              func(context.Context, uint, models.Date, models.Date) (*models.ProgressStats, error)
	hoursForSkillSinceFn func(context.Context, uint, models.Date) (float64, error)
}

func (s *progressRepoStub) GetOwned(ctx context.Context, id, userID uint) (*models.ProgressEntry, error) {
	return s.getOwnedFn(ctx, id, userID)
}
func (s *progressRepoStub) ListByUser(ctx context.Context, userID uint, filter repository.ProgressFilter) ([]models.ProgressEntry, models.Pagination, error) {
	return s.listByUserFn(ctx, userID, filter)
}
func (s *progressRepoStub) Create(ctx context.Context, entry *models.ProgressEntry) error {
	return s.createFn(ctx, entry)
}
func (s *progressRepoStub) Update(ctx context.Context, entry *models.ProgressEntry) error {
	return s.updateFn(ctx, entry)
}
func (s *progressRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *progressRepoStub) Recent(ctx context.Context, userID uint, limit int) ([]models.ProgressEntry, error) {
	return s.recentFn(ctx, userID, limit)
}
func (s *progressRepoStub) DailySeries(ctx context.Context, userID uint, from, to models.Date) ([]models.DailyProgress, error) {
	return s.dailySeriesFn(ctx, userID, from, to)
}
func (s *progressRepoStub) SkillDailySeries(ctx context.Context, skillID uint, from, to models.Date) ([]models.DailyProgress, error) {
	return s.skillDailySeriesFn(ctx, skillID, from, to)
}
func (s *progressRepoStub) ByCategory(ctx context.Context, userID uint, from, to models.Date) ([]models.CategoryProgress, error) {
	return s.byCategoryFn(ctx, userID, from, to)
}
func (s *progressRepoStub) BySkill(ctx context.Context, userID uint, from, to models.Date) ([]models.SkillProgress, error) {
	return s.bySkillFn(ctx, userID, from, to)
}
func (s *progressRepoStub) Streaks(ctx context.Context, userID uint, now time.Time) (*models.StreakInfo, error) {
	return s.streaksFn(ctx, userID, now)
}
func (s *progressRepoStub) Stats(ctx context.Context, userID uint, from, to models.Date) (*models.ProgressStats, error) {
	return s.statsFn(ctx, userID, from, to)
}
func (s *progressRepoStub) HoursForSkillSince(ctx context.Context, skillID uint, from models.Date) (float64, error) {
	return s.hoursForSkillSinceFn(ctx, skillID, from)
}

func noopProgressRepo() *progressRepoStub {
	return &progressRepoStub{
		getOwnedFn: func(_ context.Context, id, _ uint) (*models.ProgressEntry, error) {
			return &models.ProgressEntry{ID: id}, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ repository.ProgressFilter) ([]models.ProgressEntry, models.Pagination, error) {
			return nil, models.Pagination{}, nil
		},
		createFn: func(_ context.Context, _ *models.ProgressEntry) error { return nil },
		updateFn: func(_ context.Context, _ *models.ProgressEntry) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		recentFn: func(_ context.Context, _ uint, _ int) ([]models.ProgressEntry, error) { return nil, nil },
		dailySeriesFn: func(_ context.Context, _ uint, _, _ models.Date) ([]models.DailyProgress, error) {
			return nil, nil
		},
		skillDailySeriesFn: func(_ context.Context, _ uint, _, _ models.Date) ([]models.DailyProgress, error) {
			return nil, nil
		},
		byCategoryFn: func(_ context.Context, _ uint, _, _ models.Date) ([]models.CategoryProgress, error) {
			return nil, nil
		},
		bySkillFn: func(_ context.Context, _ uint, _, _ models.Date) ([]models.SkillProgress, error) {
			return nil, nil
		},
		streaksFn: func(_ context.Context, _ uint, _ time.Time) (*models.StreakInfo, error) {
			return &models.StreakInfo{}, nil
		},
		statsFn: func(_ context.Context, _ uint, _, _ models.Date) (*models.ProgressStats, error) {
			return &models.ProgressStats{}, nil
		},
		hoursForSkillSinceFn: func(_ context.Context, _ uint, _ models.Date) (float64, error) { return 0, nil },
	}
}

// goalRepoStub is a stub for repository.GoalRepository.
type goalRepoStub struct {
	getOwnedFn           func(context.Context, uint, uint) (*models.Goal, error)
	listByUserFn         func(context.Context, uint, repository.GoalFilter) ([]models.Goal, models.Pagination, error)
	listBySkillFn        func(context.Context, uint) ([]models.Goal, error)
	activeByUserFn       func(context.Context, uint) ([]models.Goal, error)
	createFn             func(context.Context, *models.Goal) error
	updateFn             func(context.Context, *models.Goal) error
	deleteFn             func(context.Context, uint) error
	markCompletedFn      func(context.Context, uint, time.Time) error
	markIncompleteFn     func(context.Context, uint) error
	statsFn              func(context.Context, uint, time.Time) (*models.GoalStats, error)
	upcomingFn           func(context.Context, uint, time.Time, int, int) ([]models.Goal, error)
	countActiveBySkillFn func(context.Context, uint) (int64, error)
}

func (s *goalRepoStub) GetOwned(ctx context.Context, id, userID uint) (*models.Goal, error) {
	return s.getOwnedFn(ctx, id, userID)
}
func (s *goalRepoStub) ListByUser(ctx context.Context, userID uint, filter repository.GoalFilter) ([]models.Goal, models.Pagination, error) {
	return s.listByUserFn(ctx, userID, filter)
}
func (s *goalRepoStub) ListBySkill(ctx context.Context, skillID uint) ([]models.Goal, error) {
	return s.listBySkillFn(ctx, skillID)
}
func (s *goalRepoStub) ActiveByUser(ctx context.Context, userID uint) ([]models.Goal, error) {
	return s.activeByUserFn(ctx, userID)
}
func (s *goalRepoStub) Create(ctx context.Context, goal *models.Goal) error {
	return s.createFn(ctx, goal)
}
func (s *goalRepoStub) Update(ctx context.Context, goal *models.Goal) error {
	return s.updateFn(ctx, goal)
}
func (s *goalRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *goalRepoStub) MarkCompleted(ctx context.Context, id uint, at time.Time) error {
	return s.markCompletedFn(ctx, id, at)
}
func (s *goalRepoStub) MarkIncomplete(ctx context.Context, id uint) error {
	return s.markIncompleteFn(ctx, id)
}
func (s *goalRepoStub) Stats(ctx context.Context, userID uint, now time.Time) (*models.GoalStats, error) {
	return s.statsFn(ctx, userID, now)
}
func (s *goalRepoStub) Upcoming(ctx context.Context, userID uint, now time.Time, days, limit int) ([]models.Goal, error) {
	return s.upcomingFn(ctx, userID, now, days, limit)
}
func (s *goalRepoStub) CountActiveBySkill(ctx context.Context, skillID uint) (int64, error) {
	return s.countActiveBySkillFn(ctx, skillID)
}

func noopGoalRepo() *goalRepoStub {
	return &goalRepoStub{
		getOwnedFn: func(_ context.Context, id, _ uint) (*models.Goal, error) {
			return &models.Goal{ID: id}, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ repository.GoalFilter) ([]models.Goal, models.Pagination, error) {
			return nil, models.Pagination{}, nil
		},
		listBySkillFn:    func(_ context.Context, _ uint) ([]models.Goal, error) { return nil, nil },
		activeByUserFn:   func(_ context.Context, _ uint) ([]models.Goal, error) { return nil, nil },
		createFn:         func(_ context.Context, _ *models.Goal) error { return nil },
		updateFn:         func(_ context.Context, _ *models.Goal) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		markCompletedFn:  func(_ context.Context, _ uint, _ time.Time) error { return nil },
		markIncompleteFn: func(_ context.Context, _ uint) error { return nil },
		statsFn: func(_ context.Context, _ uint, _ time.Time) (*models.GoalStats, error) {
			return &models.GoalStats{}, nil
		},
		upcomingFn: func(_ context.Context, _ uint, _ time.Time, _, _ int) ([]models.Goal, error) {
			return nil, nil
		},
		countActiveBySkillFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}
