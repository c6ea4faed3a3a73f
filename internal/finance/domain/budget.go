package domain

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/errors"
)

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

func IsValidBudgetPeriod(period string) bool {
	switch period {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget is a declarative spending target per category. Nothing enforces it;
// progress is computed on demand for the presentation layer.
type Budget struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"-"`
	Name       string    `json:"name"`
	Amount     float64   `json:"amount"`
	Period     string    `json:"period"`
	CategoryID int       `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (b *Budget) Validate() error {
	if b.Name == "" {
		return errors.NewValidationError("Budget name is required")
	}
	if b.Amount <= 0 || math.IsNaN(b.Amount) || math.IsInf(b.Amount, 0) {
		return errors.ErrInvalidAmount
	}
	if !IsValidBudgetPeriod(b.Period) {
		return errors.ErrInvalidBudgetPeriod
	}
	return nil
}

// PeriodStart returns the beginning of the budget's current period: Monday of
// the current ISO week, first of the month, or January 1st.
func (b *Budget) PeriodStart(now time.Time) time.Time {
	switch b.Period {
	case PeriodWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		day := now.AddDate(0, 0, -(weekday - 1))
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	case PeriodYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

type BudgetRepository interface {
	Create(ctx context.Context, budget *Budget) error
	FindByID(ctx context.Context, budgetID uuid.UUID) (*Budget, error)
	FindByUserID(ctx context.Context, userID string) ([]Budget, error)
	Update(ctx context.Context, budget *Budget) (int64, error)
	Delete(ctx context.Context, budgetID uuid.UUID) error
}
