// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"skilltrack/internal/database"
	"skilltrack/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	SkillsPerUser   int
	EntriesPerSkill int
	ShouldClean     bool
}

// Run populates the database with a realistic demo dataset: users, skills
// spread over categories, a practice history reaching back a few weeks and a
// mix of open and achievable goals.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 5
	}
	if opts.SkillsPerUser <= 0 {
		opts.SkillsPerUser = 4
	}
	if opts.EntriesPerSkill <= 0 {
		opts.EntriesPerSkill = 12
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("clean failed: %w", err)
		}
	}

	if err := database.SeedDefaultCategories(db); err != nil {
		return fmt.Errorf("category seeding failed: %w", err)
	}
	var categories []models.Category
	if err := db.Order("id ASC").Find(&categories).Error; err != nil {
		return err
	}

	factory := NewFactory(db)

	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("user seeding failed: %w", err)
		}

		for j := 0; j < opts.SkillsPerUser; j++ {
			category := categories[factory.rng.Intn(len(categories))]
			skill, err := factory.CreateSkill(user, category.ID)
			if err != nil {
				return fmt.Errorf("skill seeding failed: %w", err)
			}

			// Practice history: recent for some skills, stale for others so
			// the dashboard has streaks and idle-skill recommendations.
			offset := 0
			if j%3 == 2 {
				offset = 10
			}
			for k := 0; k < opts.EntriesPerSkill; k++ {
				daysAgo := offset + factory.rng.Intn(21)
				if _, err := factory.CreateProgressEntry(skill, daysAgo); err != nil {
					return fmt.Errorf("progress seeding failed: %w", err)
				}
			}

			if j%2 == 0 {
				if _, err := factory.CreateGoal(skill, 14+factory.rng.Intn(60)); err != nil {
					return fmt.Errorf("goal seeding failed: %w", err)
				}
			}
		}

		log.Printf("seeded user %s with %d skills", user.Username, opts.SkillsPerUser)
	}

	return nil
}

// Clean removes all seeded data. Categories stay; they are the fixed global
// set.
func Clean(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Goal{},
		&models.ProgressEntry{},
		&models.Skill{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
