package service

import (
	"context"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
)

// CategoryService exposes the read-only category hierarchy.
type CategoryService struct {
	storage *storage.Storage
}

func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// ListCategories lists categories, optionally of one type.
func (s *CategoryService) ListCategories(ctx context.Context, typeFilter string, includeInactive bool) ([]*category.Category, error) {
	typeName, err := parseCategoryType(typeFilter)
	if err != nil {
		return nil, err
	}
	return s.storage.Reader.Categories.ListCategories(ctx, &category.CategoryFilter{
		Type:            typeName,
		IncludeInactive: includeInactive,
	})
}

// ListSubcategories lists subcategories, optionally of one category.
func (s *CategoryService) ListSubcategories(ctx context.Context, categoryID *int64, includeInactive bool) ([]*category.Subcategory, error) {
	return s.storage.Reader.Categories.ListSubcategories(ctx, &category.SubcategoryFilter{
		CategoryID:      categoryID,
		IncludeInactive: includeInactive,
	})
}

// FindSubcategory returns a subcategory with its category and type.
func (s *CategoryService) FindSubcategory(ctx context.Context, id int64) (*category.Subcategory, error) {
	return s.storage.Reader.Categories.FindSubcategory(ctx, id)
}
