package infrastructure

import (
	"context"
	"database/sql"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

type MockCategoryRepository struct {
	Categories []domain.Category
}

func (m *MockCategoryRepository) FindAll(_ context.Context, categoryType string) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.Categories {
		if categoryType == "" || category.Type == categoryType {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) FindByID(_ context.Context, categoryID int) (*domain.Category, error) {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			category := m.Categories[i]
			return &category, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockCategoryRepository) ExistsByID(_ context.Context, categoryID int) (bool, error) {
	for _, category := range m.Categories {
		if category.ID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) EnsureDefaults(_ context.Context, categories []domain.Category) error {
	for _, category := range categories {
		exists := false
		for _, existing := range m.Categories {
			if existing.Name == category.Name {
				exists = true
				break
			}
		}
		if !exists {
			category.ID = len(m.Categories) + 1
			m.Categories = append(m.Categories, category)
		}
	}
	return nil
}
