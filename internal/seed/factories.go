// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"skilltrack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. The password is always
// "password123!A" so seeded accounts can be logged into.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123!A"), bcrypt.DefaultCost)
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  string(hashedPassword),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSkill persists a skill for the user in the given category.
func (f *Factory) CreateSkill(user *models.User, categoryID uint, overrides ...func(*models.Skill)) (*models.Skill, error) {
	skill := &models.Skill{
		UserID:             user.ID,
		CategoryID:         categoryID,
		Name:               fmt.Sprintf("%s %s", gofakeit.HackerAdjective(), gofakeit.HackerNoun()),
		Description:        gofakeit.Sentence(8),
		CurrentProficiency: models.ProficiencyBeginner,
	}
	for _, override := range overrides {
		override(skill)
	}
	if err := f.db.Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

// CreateProgressEntry persists a practice log line dated daysAgo days back.
func (f *Factory) CreateProgressEntry(skill *models.Skill, daysAgo int, overrides ...func(*models.ProgressEntry)) (*models.ProgressEntry, error) {
	levels := models.ProficiencyLevels()
	entry := &models.ProgressEntry{
		SkillID:          skill.ID,
		HoursSpent:       float64(f.rng.Intn(40)+5) / 10, // 0.5 .. 4.4
		TasksCompleted:   f.rng.Intn(8),
		ProficiencyLevel: levels[f.rng.Intn(len(levels))],
		Notes:            gofakeit.Sentence(6),
		EntryDate:        models.Today(time.Now()).AddDays(-daysAgo),
	}
	for _, override := range overrides {
		override(entry)
	}
	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateGoal persists a goal on the skill with a deadline daysAhead in the
// future.
func (f *Factory) CreateGoal(skill *models.Skill, daysAhead int, overrides ...func(*models.Goal)) (*models.Goal, error) {
	target := models.Today(time.Now()).AddDays(daysAhead)
	hours := float64(f.rng.Intn(40) + 10)
	goal := &models.Goal{
		SkillID:           skill.ID,
		TargetProficiency: models.ProficiencyAdvanced,
		TargetDate:        &target,
		TargetHours:       &hours,
		Description:       gofakeit.Sentence(10),
	}
	for _, override := range overrides {
		override(goal)
	}
	if err := f.db.Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}
