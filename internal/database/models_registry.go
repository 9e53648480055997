package database

import "skilltrack/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Skill{},
		&models.ProgressEntry{},
		&models.Goal{},
	}
}
