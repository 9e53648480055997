package models

import "time"

// Skill belongs to exactly one user and one category. CurrentProficiency is
// derived state: it always mirrors the proficiency of the newest progress
// entry, or the value chosen at creation while no entries exist.
type Skill struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	UserID             uint        `gorm:"not null;index;uniqueIndex:idx_skills_user_name" json:"user_id"`
	CategoryID         uint        `gorm:"not null;index" json:"category_id"`
	Name               string      `gorm:"not null;size:100;uniqueIndex:idx_skills_user_name" json:"name"`
	Description        string      `gorm:"size:1000" json:"description"`
	CurrentProficiency Proficiency `gorm:"not null;size:20;default:Beginner" json:"current_proficiency"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// Aggregates joined in at query time; not persisted.
	CategoryName      string  `gorm:"-" json:"category_name,omitempty"`
	TotalHours        float64 `gorm:"-" json:"total_hours"`
	TotalTasks        int     `gorm:"-" json:"total_tasks"`
	TotalEntries      int     `gorm:"-" json:"total_entries"`
	FirstProgressDate *Date   `gorm:"-" json:"first_progress_date,omitempty"`
	LastProgressDate  *Date   `gorm:"-" json:"last_progress_date,omitempty"`
}
