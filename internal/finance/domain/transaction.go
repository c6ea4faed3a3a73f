package domain

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/errors"
)

// Tx is the commit scope shared by a transaction row change and its balance
// effect. *sql.Tx satisfies it; in-memory test doubles provide their own.
type Tx interface {
	Commit() error
	Rollback() error
}

const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"

	maxDescriptionLength = 200
)

func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

type Transaction struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"-"`
	AccountID   uuid.UUID `json:"account_id"`
	CategoryID  *int      `json:"category_id,omitempty"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"transaction_type"`
	Date        time.Time `json:"transaction_date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Denormalized for API responses, never persisted on the transaction row.
	AccountName  string `json:"account_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// Effect is the signed delta a transaction applies to its account's balance.
// Transfers have no balance effect.
func Effect(transactionType string, amount float64) float64 {
	switch transactionType {
	case TypeIncome:
		return amount
	case TypeExpense:
		return -amount
	}
	return 0
}

func (t *Transaction) Effect() float64 {
	return Effect(t.Type, t.Amount)
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = math.Round(t.Amount*100) / 100
}

func (t *Transaction) Validate() error {
	if t.Amount <= 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return errors.ErrInvalidAmount
	}
	if !IsValidTransactionType(t.Type) {
		return errors.NewValidationError("Type must be 'income', 'expense' or 'transfer'")
	}
	if t.Date.IsZero() {
		return errors.NewValidationError("Transaction date is required")
	}
	if len(t.Description) > maxDescriptionLength {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}

// TransactionUpdate is an explicit partial update: nil means "leave unchanged".
type TransactionUpdate struct {
	Amount      *float64   `json:"amount"`
	Type        *string    `json:"transaction_type"`
	AccountID   *uuid.UUID `json:"account_id"`
	CategoryID  *int       `json:"category_id"`
	Date        *time.Time `json:"transaction_date"`
	Description *string    `json:"description"`
}

// TouchesBalance reports whether applying the update may change an account
// balance and therefore requires the revert-then-apply sequence.
func (u *TransactionUpdate) TouchesBalance() bool {
	return u.Amount != nil || u.Type != nil || u.AccountID != nil
}

type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID *int
	Type       string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

type TransactionRepository interface {
	BeginTransaction(ctx context.Context) (Tx, error)
	SaveWithTransaction(ctx context.Context, tx Tx, transaction *Transaction) error
	UpdateWithTransaction(ctx context.Context, tx Tx, transaction *Transaction) error
	DeleteWithTransaction(ctx context.Context, tx Tx, transactionID uuid.UUID) error
	FindByID(ctx context.Context, transactionID uuid.UUID) (*Transaction, error)
	FindByFilter(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error)
	GetTransactionsInDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]Transaction, error)
	ExistsByAccountID(ctx context.Context, accountID uuid.UUID) (bool, error)
}
