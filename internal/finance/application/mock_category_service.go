package application

import (
	"context"

	"github.com/nabhi/financeflow/internal/finance/domain"
	financeErrors "github.com/nabhi/financeflow/internal/finance/errors"
)

type MockCategoryService struct {
	Categories []domain.Category
}

func (m *MockCategoryService) GetCategory(_ context.Context, categoryID int) (*domain.Category, error) {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			category := m.Categories[i]
			return &category, nil
		}
	}
	return nil, financeErrors.NewNotFoundError("Category not found")
}

func (m *MockCategoryService) DoesCategoryExist(_ context.Context, categoryID int) (bool, error) {
	for _, category := range m.Categories {
		if category.ID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryService) GetAllCategories(_ context.Context, categoryType string) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.Categories {
		if categoryType == "" || category.Type == categoryType {
			categories = append(categories, category)
		}
	}
	return categories, nil
}
