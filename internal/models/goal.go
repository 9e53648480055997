package models

import "time"

// Goal is a target for a skill: a proficiency level to reach, optionally
// bounded by a date, optionally measured in hours. At least one of TargetDate
// and TargetHours is always set. A goal moves to completed either manually or
// through auto-completion; only an explicit user action reopens it.
type Goal struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	SkillID           uint        `gorm:"not null;index" json:"skill_id"`
	TargetProficiency Proficiency `gorm:"not null;size:20" json:"target_proficiency"`
	TargetDate        *Date       `json:"target_date,omitempty"`
	TargetHours       *float64    `json:"target_hours,omitempty"`
	Description       string      `gorm:"size:1000" json:"description"`
	IsCompleted       bool        `gorm:"not null;default:false;index" json:"is_completed"`
	CompletedAt       *time.Time  `json:"completed_at,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	Skill *Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`

	// Derived at query time; not persisted. CurrentHours counts only entries
	// dated on or after the goal's creation date.
	SkillName               string      `gorm:"-" json:"skill_name,omitempty"`
	CategoryName            string      `gorm:"-" json:"category_name,omitempty"`
	CurrentProficiency      Proficiency `gorm:"-" json:"current_proficiency,omitempty"`
	CurrentHours            float64     `gorm:"-" json:"current_hours"`
	HoursProgressPercentage float64     `gorm:"-" json:"hours_progress_percentage"`
}

// GoalStats is the per-user goal summary.
type GoalStats struct {
	TotalGoals     int `json:"total_goals"`
	CompletedGoals int `json:"completed_goals"`
	ActiveGoals    int `json:"active_goals"`
	OverdueGoals   int `json:"overdue_goals"`
	DueSoonGoals   int `json:"due_soon_goals"`
}
