package infrastructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `INSERT INTO budgets (id, user_id, name, amount, period, category_id, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.Name, budget.Amount, budget.Period,
		budget.CategoryID, budget.CreatedAt)
	return err
}

func (r *BudgetRepository) FindByID(ctx context.Context, budgetID uuid.UUID) (*domain.Budget, error) {
	query := `SELECT id, user_id, name, amount, period, category_id, created_at
              FROM budgets WHERE id = $1`

	var budget domain.Budget
	err := r.db.QueryRowContext(ctx, query, budgetID).Scan(
		&budget.ID, &budget.UserID, &budget.Name, &budget.Amount, &budget.Period,
		&budget.CategoryID, &budget.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *BudgetRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `SELECT id, user_id, name, amount, period, category_id, created_at
              FROM budgets WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(
			&budget.ID, &budget.UserID, &budget.Name, &budget.Amount, &budget.Period,
			&budget.CategoryID, &budget.CreatedAt); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, budget *domain.Budget) (int64, error) {
	query := `
        UPDATE budgets
        SET name = $1, amount = $2, period = $3
        WHERE id = $4 AND user_id = $5
    `
	result, err := r.db.ExecContext(ctx, query, budget.Name, budget.Amount, budget.Period, budget.ID, budget.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *BudgetRepository) Delete(ctx context.Context, budgetID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, budgetID)
	return err
}
