package repository

import (
	"context"
	"testing"
	"time"

	"skilltrack/internal/models"

	"github.com/stretchr/testify/require"
)

func TestZZProbeMarkIncompleteNullsColumn(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "probe")
	category := createTestCategory(t, db, "Probe")
	skill := createTestSkill(t, db, user.ID, category.ID, "Go")
	goal := createTestGoal(t, db, skill.ID)

	at := time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkCompleted(ctx, goal.ID, at))
	require.NoError(t, repo.MarkIncomplete(ctx, goal.ID))

	var nullCount int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM goals WHERE id = ? AND completed_at IS NULL", goal.ID).Scan(&nullCount).Error)
	t.Logf("completed_at IS NULL rows: %d", nullCount)

	var fresh models.Goal
	require.NoError(t, db.First(&fresh, goal.ID).Error)
	t.Logf("fresh struct CompletedAt: %v", fresh.CompletedAt)
}
