package infrastructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

type MockBudgetRepository struct {
	Budgets []domain.Budget
}

func (m *MockBudgetRepository) Create(_ context.Context, budget *domain.Budget) error {
	m.Budgets = append(m.Budgets, *budget)
	return nil
}

func (m *MockBudgetRepository) FindByID(_ context.Context, budgetID uuid.UUID) (*domain.Budget, error) {
	for i := range m.Budgets {
		if m.Budgets[i].ID == budgetID {
			budget := m.Budgets[i]
			return &budget, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockBudgetRepository) FindByUserID(_ context.Context, userID string) ([]domain.Budget, error) {
	var budgets []domain.Budget
	for _, budget := range m.Budgets {
		if budget.UserID == userID {
			budgets = append(budgets, budget)
		}
	}
	return budgets, nil
}

func (m *MockBudgetRepository) Update(_ context.Context, budget *domain.Budget) (int64, error) {
	for i := range m.Budgets {
		if m.Budgets[i].ID == budget.ID && m.Budgets[i].UserID == budget.UserID {
			m.Budgets[i] = *budget
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockBudgetRepository) Delete(_ context.Context, budgetID uuid.UUID) error {
	for i := range m.Budgets {
		if m.Budgets[i].ID == budgetID {
			m.Budgets = append(m.Budgets[:i], m.Budgets[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}
