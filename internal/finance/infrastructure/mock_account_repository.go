package infrastructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

type MockAccountRepository struct {
	Accounts []domain.Account
}

func (m *MockAccountRepository) Create(_ context.Context, account *domain.Account) error {
	m.Accounts = append(m.Accounts, *account)
	return nil
}

func (m *MockAccountRepository) FindByID(_ context.Context, accountID uuid.UUID) (*domain.Account, error) {
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID {
			account := m.Accounts[i]
			return &account, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockAccountRepository) FindByUserID(_ context.Context, userID string) ([]domain.Account, error) {
	var accounts []domain.Account
	for _, account := range m.Accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(_ context.Context, account *domain.Account) (int64, error) {
	for i := range m.Accounts {
		if m.Accounts[i].ID == account.ID && m.Accounts[i].UserID == account.UserID {
			m.Accounts[i] = *account
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockAccountRepository) Delete(_ context.Context, accountID uuid.UUID) error {
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID {
			m.Accounts = append(m.Accounts[:i], m.Accounts[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockAccountRepository) AdjustBalance(_ context.Context, _ domain.Tx, accountID uuid.UUID, delta float64) error {
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID {
			m.Accounts[i].Balance += delta
			return nil
		}
	}
	return sql.ErrNoRows
}

// Balance is a test convenience for asserting on an account's current state.
func (m *MockAccountRepository) Balance(accountID uuid.UUID) float64 {
	for _, account := range m.Accounts {
		if account.ID == accountID {
			return account.Balance
		}
	}
	return 0
}
