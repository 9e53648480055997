package repository

import (
	"context"
	"testing"
	"time"

	"skilltrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestGoal(t *testing.T, db *gorm.DB, skillID uint, mutate ...func(*models.Goal)) *models.Goal {
	t.Helper()
	goal := &models.Goal{
		SkillID:           skillID,
		TargetProficiency: models.ProficiencyAdvanced,
	}
	for _, fn := range mutate {
		fn(goal)
	}
	require.NoError(t, db.Create(goal).Error)
	return goal
}

func TestGoalRepository_GetOwned_EnrichesProgress(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "goalie")
	stranger := createTestUser(t, db, "stranger")
	category := createTestCategory(t, db, "Programming")
	skill := createTestSkill(t, db, user.ID, category.ID, "Go")

	// Practice before the goal was set must not count toward it
	createTestEntry(t, db, skill.ID, "2025-06-05", 10, models.ProficiencyBeginner)
	createTestEntry(t, db, skill.ID, "2025-06-15", 3, models.ProficiencyBeginner)
	createTestEntry(t, db, skill.ID, "2025-06-20", 2, models.ProficiencyBeginner)

	hours := 20.0
	goal := createTestGoal(t, db, skill.ID, func(g *models.Goal) {
		g.TargetHours = &hours
		g.CreatedAt = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	})

	got, err := repo.GetOwned(ctx, goal.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.SkillName)
	assert.Equal(t, "Programming", got.CategoryName)
	assert.Equal(t, models.ProficiencyBeginner, got.CurrentProficiency)
	assert.Equal(t, 5.0, got.CurrentHours)
	assert.Equal(t, 25.0, got.HoursProgressPercentage)

	_, err = repo.GetOwned(ctx, goal.ID, stranger.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestGoalRepository_Enrich_CapsPercentage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "capper")
	category := createTestCategory(t, db, "Programming")
	skill := createTestSkill(t, db, user.ID, category.ID, "Go")

	hours := 5.0
	goal := createTestGoal(t, db, skill.ID, func(g *models.Goal) {
		g.TargetHours = &hours
		g.CreatedAt = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	})
	createTestEntry(t, db, skill.ID, "2025-06-02", 12, models.ProficiencyBeginner)

	got, err := repo.GetOwned(ctx, goal.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.CurrentHours)
	assert.Equal(t, 100.0, got.HoursProgressPercentage)
}

func TestGoalRepository_ListByUser_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "filters")
	category := createTestCategory(t, db, "Programming")
	skill := createTestSkill(t, db, user.ID, category.ID, "Go")

	createTestGoal(t, db, skill.ID)
	createTestGoal(t, db, skill.ID)
	done := time.Now()
	createTestGoal(t, db, skill.ID, func(g *models.Goal) {
		g.IsCompleted = true
		g.CompletedAt = &done
	})

	active, _, err := repo.ListByUser(ctx, user.ID, GoalFilter{Status: GoalStatusActive})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	completed, _, err := repo.ListByUser(ctx, user.ID, GoalFilter{Status: GoalStatusCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	all, pagination, err := repo.ListByUser(ctx, user.ID, GoalFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 3, pagination.TotalItems)
}

func TestGoalRepository_ListByUser_CategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "catfilter")
	programming := createTestCategory(t, db, "Programming")
	music := createTestCategory(t, db, "Music")
	goSkill := createTestSkill(t, db, user.ID, programming.ID, "Go")
	piano := createTestSkill(t, db, user.ID, music.ID, "Piano")

	createTestGoal(t, db, goSkill.ID)
	createTestGoal(t, db, piano.ID)

	goals, _, err := repo.ListByUser(ctx, user.ID, GoalFilter{CategoryID: music.ID})
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Piano", goals[0].SkillName)

	goals, _, err = repo.ListByUser(ctx, user.ID, GoalFilter{SkillID: goSkill.ID})
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Go", goals[0].SkillName)
}

func TestGoalRepository_MarkCompletedAndIncomplete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "marker")
	category := createTestCategory(t, db, "Programming")
	skill := createTestSkill(t, db, user.ID, category.ID, "Go")
	goal := createTestGoal(t, db, skill.ID)

	at := time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkCompleted(ctx, goal.ID, at))

	var got models.Goal
	require.NoError(t, db.First(&got, goal.ID).Error)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletedAt)

	require.NoError(t, repo.MarkIncomplete(ctx, goal.ID))
	require.NoError(t, db.First(&got, goal.ID).Error)
	assert.False(t, got.IsCompleted)
	assert.Nil(t, got.CompletedAt)
}

func TestGoalRepository_Stats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	user := createTestUser(t, db, "stats")
	category := createTestCategory(t, db, "Programming")
	skill := createTestSkill(t, db, user.ID, category.ID, "Go")

	overdue := mustDate(t, "2025-06-20")
	dueSoon := mustDate(t, "2025-07-03")
	farOut := mustDate(t, "2025-09-01")

	createTestGoal(t, db, skill.ID, func(g *models.Goal) { g.TargetDate = &overdue })
	createTestGoal(t, db, skill.ID, func(g *models.Goal) { g.TargetDate = &dueSoon })
	createTestGoal(t, db, skill.ID, func(g *models.Goal) { g.TargetDate = &farOut })
	done := time.Now()
	createTestGoal(t, db, skill.ID, func(g *models.Goal) {
		g.IsCompleted = true
		g.CompletedAt = &done
	})

	stats, err := repo.Stats(ctx, user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalGoals)
	assert.Equal(t, 1, stats.CompletedGoals)
	assert.Equal(t, 3, stats.ActiveGoals)
	assert.Equal(t, 1, stats.OverdueGoals)
	assert.Equal(t, 1, stats.DueSoonGoals)
}

func TestGoalRepository_Upcoming(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	user := createTestUser(t, db, "upcoming")
	category := createTestCategory(t, db, "Programming")
	skill := createTestSkill(t, db, user.ID, category.ID, "Go")

	soon := mustDate(t, "2025-07-02")
	later := mustDate(t, "2025-07-06")
	tooFar := mustDate(t, "2025-07-20")
	past := mustDate(t, "2025-06-25")

	createTestGoal(t, db, skill.ID, func(g *models.Goal) { g.TargetDate = &later })
	createTestGoal(t, db, skill.ID, func(g *models.Goal) { g.TargetDate = &soon })
	createTestGoal(t, db, skill.ID, func(g *models.Goal) { g.TargetDate = &tooFar })
	createTestGoal(t, db, skill.ID, func(g *models.Goal) { g.TargetDate = &past })
	done := time.Now()
	createTestGoal(t, db, skill.ID, func(g *models.Goal) {
		g.TargetDate = &soon
		g.IsCompleted = true
		g.CompletedAt = &done
	})

	goals, err := repo.Upcoming(ctx, user.ID, now, 7, 0)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "2025-07-02", goals[0].TargetDate.String())
	assert.Equal(t, "2025-07-06", goals[1].TargetDate.String())

	goals, err = repo.Upcoming(ctx, user.ID, now, 7, 1)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "2025-07-02", goals[0].TargetDate.String())
}

func TestGoalRepository_CountActiveBySkill(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "counter")
	category := createTestCategory(t, db, "Programming")
	skill := createTestSkill(t, db, user.ID, category.ID, "Go")

	createTestGoal(t, db, skill.ID)
	done := time.Now()
	createTestGoal(t, db, skill.ID, func(g *models.Goal) {
		g.IsCompleted = true
		g.CompletedAt = &done
	})

	count, err := repo.CountActiveBySkill(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
