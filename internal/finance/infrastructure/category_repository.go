package infrastructure

import (
	"context"
	"database/sql"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll(ctx context.Context, categoryType string) ([]domain.Category, error) {
	query := `SELECT id, name, COALESCE(description, ''), type FROM categories`
	var args []interface{}

	if categoryType != "" {
		query += " WHERE type = $1"
		args = append(args, categoryType)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, categoryID int) (*domain.Category, error) {
	query := `SELECT id, name, COALESCE(description, ''), type FROM categories WHERE id = $1`

	var category domain.Category
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(
		&category.ID, &category.Name, &category.Description, &category.Type)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) ExistsByID(ctx context.Context, categoryID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *CategoryRepository) EnsureDefaults(ctx context.Context, categories []domain.Category) error {
	query := `INSERT INTO categories (name, description, type)
              VALUES ($1, $2, $3)
              ON CONFLICT (name) DO NOTHING`
	for _, category := range categories {
		if _, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.Type); err != nil {
			return err
		}
	}
	return nil
}
