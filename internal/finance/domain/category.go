package domain

import "context"

const (
	CategoryIncome  = "income"
	CategoryExpense = "expense"
)

func IsValidCategoryType(categoryType string) bool {
	return categoryType == CategoryIncome || categoryType == CategoryExpense
}

// Category is shared reference data, seeded once and read-only afterwards.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"category_type"`
}

type CategoryRepository interface {
	FindAll(ctx context.Context, categoryType string) ([]Category, error)
	FindByID(ctx context.Context, categoryID int) (*Category, error)
	ExistsByID(ctx context.Context, categoryID int) (bool, error)
	EnsureDefaults(ctx context.Context, categories []Category) error
}
