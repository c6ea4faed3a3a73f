package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

type MockAccountService struct {
	account  *domain.Account
	accounts []domain.Account
	err      error
}

func (m *MockAccountService) CreateAccount(_ context.Context, userID, name, accountType string, openingBalance float64) (*domain.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Account{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    name,
		Type:    accountType,
		Balance: openingBalance,
	}, nil
}

func (m *MockAccountService) GetAccount(_ context.Context, _ string, _ uuid.UUID) (*domain.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.account, nil
}

func (m *MockAccountService) GetAllAccounts(_ context.Context, _ string) ([]domain.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.accounts, nil
}

func (m *MockAccountService) UpdateAccount(_ context.Context, _ string, _ uuid.UUID, _ domain.AccountUpdate) (*domain.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.account, nil
}

func (m *MockAccountService) DeleteAccount(_ context.Context, _ string, _ uuid.UUID) error {
	return m.err
}
