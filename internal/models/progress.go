package models

import "time"

// ProgressEntry is a single practice log line against a skill. The skill
// linkage is immutable; every create, update or delete of an entry triggers a
// proficiency resync on the parent skill.
type ProgressEntry struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	SkillID          uint        `gorm:"not null;index" json:"skill_id"`
	HoursSpent       float64     `gorm:"not null;default:0" json:"hours_spent"`
	TasksCompleted   int         `gorm:"not null;default:0" json:"tasks_completed"`
	ProficiencyLevel Proficiency `gorm:"not null;size:20" json:"proficiency_level"`
	Notes            string      `gorm:"size:1000" json:"notes"`
	EntryDate        Date        `gorm:"not null;index" json:"entry_date"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	Skill *Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`

	// Joined at query time for list views; not persisted.
	SkillName    string `gorm:"-" json:"skill_name,omitempty"`
	CategoryName string `gorm:"-" json:"category_name,omitempty"`
}

// DailyProgress is one day of the daily series. Days without entries are
// omitted from the series, never zero-filled.
type DailyProgress struct {
	Date       Date    `json:"date"`
	TotalHours float64 `json:"total_hours"`
	TotalTasks int     `json:"total_tasks"`
	EntryCount int     `json:"entry_count"`
}

// SkillProgress aggregates a user's activity per skill inside a window.
type SkillProgress struct {
	SkillID      uint    `json:"skill_id"`
	SkillName    string  `json:"skill_name"`
	CategoryName string  `json:"category_name"`
	TotalHours   float64 `json:"total_hours"`
	TotalTasks   int     `json:"total_tasks"`
	TotalEntries int     `json:"total_entries"`
}

// CategoryProgress aggregates a user's activity per category inside a window.
type CategoryProgress struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	TotalHours   float64 `json:"total_hours"`
	TotalTasks   int     `json:"total_tasks"`
	TotalEntries int     `json:"total_entries"`
}

// StreakInfo carries the streak pair shown on the dashboard. LongestStreak is
// the count of distinct active days in the trailing 30-day window, not a true
// longest consecutive run.
type StreakInfo struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// ProgressStats summarizes a user's activity inside a window.
type ProgressStats struct {
	TotalEntries       int     `json:"total_entries"`
	TotalHours         float64 `json:"total_hours"`
	TotalTasks         int     `json:"total_tasks"`
	AvgHoursPerEntry   float64 `json:"avg_hours_per_entry"`
	SkillsWithProgress int     `json:"skills_with_progress"`
	ActiveDays         int     `json:"active_days"`
}
