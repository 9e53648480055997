package service

import (
	"context"

	"skilltrack/internal/models"
	"skilltrack/internal/repository"
)

// CategoryService exposes the global category set. Categories are read-only
// at the API level; the set is managed by migrations.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// ListWithCounts annotates each category with the caller's skill count.
func (s *CategoryService) ListWithCounts(ctx context.Context, userID uint) ([]models.Category, error) {
	return s.categoryRepo.ListWithSkillCounts(ctx, userID)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}
