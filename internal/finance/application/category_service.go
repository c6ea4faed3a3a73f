package application

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nabhi/financeflow/internal/finance/domain"
	financeErrors "github.com/nabhi/financeflow/internal/finance/errors"
)

// Categories the original deployment ships with. Seeding is idempotent and
// keyed on the unique name.
var defaultCategories = []domain.Category{
	{Name: "Food & Dining", Description: "Restaurants, groceries, etc.", Type: domain.CategoryExpense},
	{Name: "Transportation", Description: "Gas, public transport, etc.", Type: domain.CategoryExpense},
	{Name: "Shopping", Description: "Clothing, electronics, etc.", Type: domain.CategoryExpense},
	{Name: "Entertainment", Description: "Movies, games, subscriptions", Type: domain.CategoryExpense},
	{Name: "Bills & Utilities", Description: "Rent, electricity, internet", Type: domain.CategoryExpense},
	{Name: "Healthcare", Description: "Medical expenses", Type: domain.CategoryExpense},
	{Name: "Salary", Description: "Monthly salary", Type: domain.CategoryIncome},
	{Name: "Freelance", Description: "Freelance work income", Type: domain.CategoryIncome},
	{Name: "Investment", Description: "Investment returns", Type: domain.CategoryIncome},
}

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllCategories(ctx context.Context, categoryType string) ([]domain.Category, error) {
	if categoryType != "" && !domain.IsValidCategoryType(categoryType) {
		return nil, financeErrors.NewValidationError("Invalid category type")
	}
	return s.repo.FindAll(ctx, categoryType)
}

func (s *CategoryService) GetCategory(ctx context.Context, categoryID int) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.NewNotFoundError("Category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DoesCategoryExist(ctx context.Context, categoryID int) (bool, error) {
	return s.repo.ExistsByID(ctx, categoryID)
}

func (s *CategoryService) SeedDefaultCategories(ctx context.Context) error {
	return s.repo.EnsureDefaults(ctx, defaultCategories)
}
