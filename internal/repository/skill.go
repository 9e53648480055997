package repository

import (
	"context"
	"errors"

	"skilltrack/internal/models"

	"gorm.io/gorm"
)

// SkillFilter narrows a skill listing. Zero values mean "no filter".
type SkillFilter struct {
	CategoryID  uint
	Proficiency models.Proficiency
	Search      string
	Page        int
	PerPage     int
}

// SkillRepository defines persistence operations for skills. Every read is
// scoped to an owning user; an ID belonging to someone else behaves exactly
// like a missing row.
type SkillRepository interface {
	GetOwned(ctx context.Context, id, userID uint) (*models.Skill, error)
	ListByUser(ctx context.Context, userID uint, filter SkillFilter) ([]models.Skill, models.Pagination, error)
	AllByUser(ctx context.Context, userID uint) ([]models.Skill, error)
	RecentByUser(ctx context.Context, userID uint, limit int) ([]models.Skill, error)
	NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, skill *models.Skill) error
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id uint) error
	SetProficiency(ctx context.Context, id uint, level models.Proficiency) error
	ResyncProficiency(ctx context.Context, id uint) error
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) GetOwned(ctx context.Context, id, userID uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill")
		}
		return nil, models.NewInternalError(err)
	}

	skills := []models.Skill{skill}
	if err := r.attachAggregates(ctx, skills); err != nil {
		return nil, err
	}
	return &skills[0], nil
}

// ListByUser returns one page of the user's skills ordered by name, each
// annotated with its progress aggregates.
func (r *skillRepository) ListByUser(ctx context.Context, userID uint, filter SkillFilter) ([]models.Skill, models.Pagination, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = DefaultPerPage
	}

	base := r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("user_id = ?", userID)
	if filter.CategoryID != 0 {
		base = base.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Proficiency != "" {
		base = base.Where("current_proficiency = ?", filter.Proficiency)
	}
	if filter.Search != "" {
		base = base.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, models.NewInternalError(err)
	}

	pagination := models.NewPagination(int(total), filter.Page, filter.PerPage)

	var skills []models.Skill
	if err := base.
		Preload("Category").
		Order("name ASC").
		Offset(pagination.Offset()).
		Limit(pagination.ItemsPerPage).
		Find(&skills).Error; err != nil {
		return nil, models.Pagination{}, models.NewInternalError(err)
	}
	if err := r.attachAggregates(ctx, skills); err != nil {
		return nil, models.Pagination{}, err
	}
	return skills, pagination, nil
}

// AllByUser returns every skill of the user with aggregates, ordered by name.
// The recommendation engine scans the full set, so this skips pagination.
func (r *skillRepository) AllByUser(ctx context.Context, userID uint) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachAggregates(ctx, skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// RecentByUser returns the user's most recently touched skills.
func (r *skillRepository) RecentByUser(ctx context.Context, userID uint, limit int) ([]models.Skill, error) {
	if limit <= 0 {
		limit = 5
	}
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachAggregates(ctx, skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// NameTaken reports whether the user already has a skill with this exact
// name. The comparison is case-sensitive: "Go" and "go" are distinct skills.
func (r *skillRepository) NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("user_id = ? AND name = ?", userID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("You already have a skill with this name")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) Update(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Save(skill).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("You already have a skill with this name")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a skill together with its progress entries and goals in one
// transaction. Either everything goes or nothing does.
func (r *skillRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("skill_id = ?", id).Delete(&models.Goal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("skill_id = ?", id).Delete(&models.ProgressEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Skill{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) SetProficiency(ctx context.Context, id uint, level models.Proficiency) error {
	if err := r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("id = ?", id).
		Update("current_proficiency", level).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ResyncProficiency realigns the skill's proficiency with its newest progress
// entry, newest meaning latest entry date with creation time and then ID as
// tie-breaks. A skill with no entries keeps its current value.
func (r *skillRepository) ResyncProficiency(ctx context.Context, id uint) error {
	var entry models.ProgressEntry
	err := r.db.WithContext(ctx).
		Where("skill_id = ?", id).
		Order("entry_date DESC, created_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return r.SetProficiency(ctx, id, entry.ProficiencyLevel)
}

// attachAggregates fills the query-time fields on each skill from its
// progress entries. Totals are summed here rather than in SQL so the math is
// identical across database engines.
func (r *skillRepository) attachAggregates(ctx context.Context, skills []models.Skill) error {
	if len(skills) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(skills))
	for _, s := range skills {
		ids = append(ids, s.ID)
	}

	var entries []models.ProgressEntry
	if err := r.db.WithContext(ctx).
		Where("skill_id IN ?", ids).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return models.NewInternalError(err)
	}

	type rollup struct {
		hours   float64
		tasks   int
		count   int
		first   models.Date
		last    models.Date
	}
	rollups := make(map[uint]*rollup, len(skills))
	for _, e := range entries {
		agg, ok := rollups[e.SkillID]
		if !ok {
			agg = &rollup{first: e.EntryDate, last: e.EntryDate}
			rollups[e.SkillID] = agg
		}
		agg.hours += e.HoursSpent
		agg.tasks += e.TasksCompleted
		agg.count++
		if e.EntryDate.Before(agg.first.Time) {
			agg.first = e.EntryDate
		}
		if e.EntryDate.After(agg.last.Time) {
			agg.last = e.EntryDate
		}
	}

	for i := range skills {
		if skills[i].Category != nil {
			skills[i].CategoryName = skills[i].Category.Name
		}
		agg, ok := rollups[skills[i].ID]
		if !ok {
			continue
		}
		skills[i].TotalHours = agg.hours
		skills[i].TotalTasks = agg.tasks
		skills[i].TotalEntries = agg.count
		first, last := agg.first, agg.last
		skills[i].FirstProgressDate = &first
		skills[i].LastProgressDate = &last
	}
	return nil
}
