package infrastructure

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

// memTx satisfies domain.Tx for in-memory repositories. Mutations apply
// immediately; Commit and Rollback are no-ops.
type memTx struct{}

func (memTx) Commit() error   { return nil }
func (memTx) Rollback() error { return nil }

type MockTransactionRepository struct {
	Transactions []domain.Transaction
}

func (m *MockTransactionRepository) BeginTransaction(_ context.Context) (domain.Tx, error) {
	return memTx{}, nil
}

func (m *MockTransactionRepository) SaveWithTransaction(_ context.Context, _ domain.Tx, transaction *domain.Transaction) error {
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockTransactionRepository) UpdateWithTransaction(_ context.Context, _ domain.Tx, transaction *domain.Transaction) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transaction.ID {
			m.Transactions[i] = *transaction
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockTransactionRepository) DeleteWithTransaction(_ context.Context, _ domain.Tx, transactionID uuid.UUID) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockTransactionRepository) FindByID(_ context.Context, transactionID uuid.UUID) (*domain.Transaction, error) {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID {
			transaction := m.Transactions[i]
			return &transaction, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockTransactionRepository) FindByFilter(_ context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var matched []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if filter.AccountID != nil && transaction.AccountID != *filter.AccountID {
			continue
		}
		if filter.CategoryID != nil && (transaction.CategoryID == nil || *transaction.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Type != "" && transaction.Type != filter.Type {
			continue
		}
		if filter.StartDate != nil && transaction.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && transaction.Date.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, transaction)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return strings.Compare(matched[i].ID.String(), matched[j].ID.String()) > 0
	})

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (m *MockTransactionRepository) GetTransactionsInDateRange(_ context.Context, userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	var matched []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if transaction.Date.Before(startDate) || transaction.Date.After(endDate) {
			continue
		}
		matched = append(matched, transaction)
	}
	return matched, nil
}

func (m *MockTransactionRepository) ExistsByAccountID(_ context.Context, accountID uuid.UUID) (bool, error) {
	for _, transaction := range m.Transactions {
		if transaction.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}
