// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"skilltrack/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Stats(ctx context.Context, userID uint) (*models.UserStats, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Stats counts the user's skills, progress entries and goals in one pass per
// table. The hour and task totals come from the entries themselves, not from
// any cached rollup.
func (r *userRepository) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	stats := &models.UserStats{}

	var totalSkills int64
	if err := r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("user_id = ?", userID).
		Count(&totalSkills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.TotalSkills = int(totalSkills)

	var entries []models.ProgressEntry
	if err := r.db.WithContext(ctx).
		Joins("JOIN skills ON skills.id = progress_entries.skill_id").
		Where("skills.user_id = ?", userID).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.TotalEntries = len(entries)
	for _, e := range entries {
		stats.TotalHours += e.HoursSpent
		stats.TotalTasks += e.TasksCompleted
	}

	var goals []models.Goal
	if err := r.db.WithContext(ctx).
		Joins("JOIN skills ON skills.id = goals.skill_id").
		Where("skills.user_id = ?", userID).
		Find(&goals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.TotalGoals = len(goals)
	for _, g := range goals {
		if g.IsCompleted {
			stats.CompletedGoals++
		}
	}

	return stats, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
