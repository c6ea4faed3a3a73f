package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/application"
	"github.com/nabhi/financeflow/internal/finance/domain"
)

type MockBudgetService struct {
	budget   *domain.Budget
	budgets  []domain.Budget
	progress *application.BudgetProgress
	err      error
}

func (m *MockBudgetService) CreateBudget(_ context.Context, userID, name string, amount float64, period string, categoryID int) (*domain.Budget, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Budget{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		Period:     period,
		CategoryID: categoryID,
	}, nil
}

func (m *MockBudgetService) GetAllBudgets(_ context.Context, _ string) ([]domain.Budget, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.budgets, nil
}

func (m *MockBudgetService) UpdateBudget(_ context.Context, _ string, _ uuid.UUID, _ *string, _ *float64, _ *string) (*domain.Budget, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.budget, nil
}

func (m *MockBudgetService) DeleteBudget(_ context.Context, _ string, _ uuid.UUID) error {
	return m.err
}

func (m *MockBudgetService) GetBudgetProgress(_ context.Context, _ string, _ uuid.UUID, _ time.Time) (*application.BudgetProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.progress, nil
}
