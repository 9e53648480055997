package repository

import (
	"testing"
	"time"

	"skilltrack/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Skill{},
		&models.ProgressEntry{},
		&models.Goal{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestSkill(t *testing.T, db *gorm.DB, userID, categoryID uint, name string) *models.Skill {
	t.Helper()
	skill := &models.Skill{
		UserID:             userID,
		CategoryID:         categoryID,
		Name:               name,
		CurrentProficiency: models.ProficiencyBeginner,
	}
	require.NoError(t, db.Create(skill).Error)
	return skill
}

func createTestEntry(t *testing.T, db *gorm.DB, skillID uint, date string, hours float64, level models.Proficiency) *models.ProgressEntry {
	t.Helper()
	entryDate, err := models.ParseDate(date)
	require.NoError(t, err)
	entry := &models.ProgressEntry{
		SkillID:          skillID,
		HoursSpent:       hours,
		TasksCompleted:   1,
		ProficiencyLevel: level,
		EntryDate:        entryDate,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func createTestEntryAt(t *testing.T, db *gorm.DB, skillID uint, date string, level models.Proficiency, createdAt time.Time) *models.ProgressEntry {
	t.Helper()
	entryDate, err := models.ParseDate(date)
	require.NoError(t, err)
	entry := &models.ProgressEntry{
		SkillID:          skillID,
		HoursSpent:       1,
		ProficiencyLevel: level,
		EntryDate:        entryDate,
		CreatedAt:        createdAt,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}
