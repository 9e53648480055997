// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Skills, progress entries and goals
// are only ever reachable through their owning user.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:30" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"size:50" json:"first_name"`
	LastName  string    `gorm:"size:50" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Skills    []Skill   `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// UserStats is the cross-entity summary shown on the dashboard header.
type UserStats struct {
	TotalSkills    int     `json:"total_skills"`
	TotalEntries   int     `json:"total_entries"`
	TotalHours     float64 `json:"total_hours"`
	TotalTasks     int     `json:"total_tasks"`
	TotalGoals     int     `json:"total_goals"`
	CompletedGoals int     `json:"completed_goals"`
}
