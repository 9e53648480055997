package models

import "time"

// Category is a global, user-independent grouping for skills. Categories are
// seeded at migration time and cannot be removed while skills reference them.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;size:50" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Skills      []Skill   `gorm:"foreignKey:CategoryID" json:"skills,omitempty"`

	// SkillCount is the requesting user's skill count in this category;
	// computed at query time, not persisted.
	SkillCount int `gorm:"-" json:"skill_count,omitempty"`
}
