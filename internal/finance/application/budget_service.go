package application

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
	financeErrors "github.com/nabhi/financeflow/internal/finance/errors"
)

type BudgetProgress struct {
	Budget      domain.Budget `json:"budget"`
	PeriodStart time.Time     `json:"period_start"`
	Spent       float64       `json:"spent"`
	Remaining   float64       `json:"remaining"`
	PercentUsed float64       `json:"percent_used"`
}

type BudgetService struct {
	repo            domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	categoryService CategoryServiceInterface
}

func NewBudgetService(repo domain.BudgetRepository, transactionRepo domain.TransactionRepository, categoryService CategoryServiceInterface) *BudgetService {
	return &BudgetService{repo: repo, transactionRepo: transactionRepo, categoryService: categoryService}
}

func (s *BudgetService) CreateBudget(ctx context.Context, userID, name string, amount float64, period string, categoryID int) (*domain.Budget, error) {
	budget := &domain.Budget{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		Period:     period,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.categoryService.DoesCategoryExist(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, financeErrors.ErrInvalidCategory
	}

	if err := s.repo.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *BudgetService) GetAllBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, userID string, budgetID uuid.UUID, name *string, amount *float64, period *string) (*domain.Budget, error) {
	budget, err := s.getOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		budget.Name = *name
	}
	if amount != nil {
		budget.Amount = *amount
	}
	if period != nil {
		budget.Period = *period
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	affected, err := s.repo.Update(ctx, budget)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, financeErrors.ErrBudgetNotFound
	}
	return budget, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID string, budgetID uuid.UUID) error {
	budget, err := s.getOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, budget.ID)
}

// GetBudgetProgress compares actual expense spend in the budget's category
// since the start of the current period against the target. Read-only
// presentation support, never an enforcement mechanism.
func (s *BudgetService) GetBudgetProgress(ctx context.Context, userID string, budgetID uuid.UUID, now time.Time) (*BudgetProgress, error) {
	budget, err := s.getOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	periodStart := budget.PeriodStart(now)
	transactions, err := s.transactionRepo.GetTransactionsInDateRange(ctx, userID, periodStart, now)
	if err != nil {
		return nil, err
	}

	var spent float64
	for _, transaction := range transactions {
		if transaction.Type != domain.TypeExpense {
			continue
		}
		if transaction.CategoryID == nil || *transaction.CategoryID != budget.CategoryID {
			continue
		}
		spent += transaction.Amount
	}

	return &BudgetProgress{
		Budget:      *budget,
		PeriodStart: periodStart,
		Spent:       spent,
		Remaining:   budget.Amount - spent,
		PercentUsed: spent / budget.Amount * 100,
	}, nil
}

func (s *BudgetService) getOwnedBudget(ctx context.Context, userID string, budgetID uuid.UUID) (*domain.Budget, error) {
	budget, err := s.repo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrBudgetNotFound
		}
		return nil, err
	}
	if budget.UserID != userID {
		return nil, financeErrors.ErrBudgetNotFound
	}
	return budget, nil
}
