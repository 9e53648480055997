package repository

import (
	"context"
	"errors"

	"skilltrack/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines read operations over the global category set.
// Categories are seeded at migration time; the API never mutates them.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	ListWithSkillCounts(ctx context.Context, userID uint) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// ListWithSkillCounts annotates each category with the requesting user's
// skill count in it. Counts are per-user: two users see different numbers for
// the same category.
func (r *categoryRepository) ListWithSkillCounts(ctx context.Context, userID uint) ([]models.Category, error) {
	categories, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[uint]int, len(categories))
	for _, s := range skills {
		counts[s.CategoryID]++
	}
	for i := range categories {
		categories[i].SkillCount = counts[categories[i].ID]
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category")
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
