package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/errors"
)

const (
	AccountChecking   = "checking"
	AccountSavings    = "savings"
	AccountCredit     = "credit"
	AccountInvestment = "investment"
)

func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return true
	}
	return false
}

// Account balance moves only through transaction effects after creation;
// the update path deliberately cannot touch it.
type Account struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Type      string    `json:"account_type"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.NewValidationError("Account name is required")
	}
	if !IsValidAccountType(a.Type) {
		return errors.ErrInvalidAccountType
	}
	return nil
}

type AccountUpdate struct {
	Name *string `json:"name"`
	Type *string `json:"account_type"`
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, accountID uuid.UUID) (*Account, error)
	FindByUserID(ctx context.Context, userID string) ([]Account, error)
	Update(ctx context.Context, account *Account) (int64, error)
	Delete(ctx context.Context, accountID uuid.UUID) error
	// AdjustBalance applies a signed delta inside the caller's DB transaction
	// so a transaction row and its balance effect commit together.
	AdjustBalance(ctx context.Context, tx Tx, accountID uuid.UUID, delta float64) error
}
