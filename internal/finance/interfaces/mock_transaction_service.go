package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

type MockTransactionService struct {
	transaction  *domain.Transaction
	transactions []domain.Transaction
	err          error

	lastFilter domain.TransactionFilter
	deletedID  uuid.UUID
}

func (m *MockTransactionService) CreateTransaction(_ context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	transaction.ID = uuid.New()
	return transaction, nil
}

func (m *MockTransactionService) GetTransaction(_ context.Context, _ string, _ uuid.UUID) (*domain.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.transaction, nil
}

func (m *MockTransactionService) GetUserTransactions(_ context.Context, _ string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.transactions, nil
}

func (m *MockTransactionService) UpdateTransaction(_ context.Context, _ string, _ uuid.UUID, _ domain.TransactionUpdate) (*domain.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.transaction, nil
}

func (m *MockTransactionService) DeleteTransaction(_ context.Context, _ string, transactionID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = transactionID
	return nil
}
