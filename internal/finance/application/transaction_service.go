package application

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
	financeErrors "github.com/nabhi/financeflow/internal/finance/errors"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

type CategoryServiceInterface interface {
	GetCategory(ctx context.Context, categoryID int) (*domain.Category, error)
	DoesCategoryExist(ctx context.Context, categoryID int) (bool, error)
	GetAllCategories(ctx context.Context, categoryType string) ([]domain.Category, error)
}

// TransactionService keeps account balances consistent under transaction
// mutation: every committed create/update/delete applies exactly one signed
// effect, and the balance adjustment commits in the same DB transaction as
// the row change.
//
// Concurrent updates of the same transaction row can interleave between
// reading the old row and committing the revert-then-apply; the last commit
// wins. Known limitation, acceptable for single-user account access.
type TransactionService struct {
	repo            domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryService CategoryServiceInterface
}

func NewTransactionService(repo domain.TransactionRepository, accountRepo domain.AccountRepository, categoryService CategoryServiceInterface) *TransactionService {
	return &TransactionService{repo: repo, accountRepo: accountRepo, categoryService: categoryService}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	transaction.ID = uuid.New()
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	account, err := s.resolveOwnedAccount(ctx, transaction.AccountID, transaction.UserID)
	if err != nil {
		return nil, err
	}

	if transaction.CategoryID != nil {
		category, err := s.categoryService.GetCategory(ctx, *transaction.CategoryID)
		if err != nil {
			if financeErrors.IsNotFoundError(err) {
				return nil, financeErrors.ErrInvalidCategory
			}
			return nil, err
		}
		transaction.CategoryName = category.Name
	}

	transaction.CreatedAt = time.Now().UTC()
	err = s.withTransaction(ctx, func(tx domain.Tx) error {
		if err := s.repo.SaveWithTransaction(ctx, tx, transaction); err != nil {
			return err
		}
		return s.accountRepo.AdjustBalance(ctx, tx, account.ID, transaction.Effect())
	})
	if err != nil {
		return nil, err
	}

	transaction.AccountName = account.Name
	return transaction, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, userID string, transactionID uuid.UUID) (*domain.Transaction, error) {
	return s.getOwnedTransaction(ctx, userID, transactionID)
}

func (s *TransactionService) GetUserTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Type != "" && !domain.IsValidTransactionType(filter.Type) {
		return nil, financeErrors.NewValidationError("Invalid transaction type")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	transactions, err := s.repo.FindByFilter(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID uuid.UUID, update domain.TransactionUpdate) (*domain.Transaction, error) {
	existing, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	oldAccountID := existing.AccountID
	oldEffect := existing.Effect()

	updated := *existing
	if update.Amount != nil {
		updated.Amount = *update.Amount
		updated.RoundToTwoDecimalPlaces()
	}
	if update.Type != nil {
		updated.Type = *update.Type
	}
	if update.AccountID != nil {
		updated.AccountID = *update.AccountID
	}
	if update.Date != nil {
		updated.Date = *update.Date
	}
	if update.Description != nil {
		updated.Description = *update.Description
	}
	if update.CategoryID != nil {
		exists, err := s.categoryService.DoesCategoryExist(ctx, *update.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, financeErrors.ErrInvalidCategory
		}
		updated.CategoryID = update.CategoryID
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if update.TouchesBalance() {
		// The new account may equal the old one; ownership still has to hold.
		newAccount, err := s.resolveOwnedAccount(ctx, updated.AccountID, userID)
		if err != nil {
			return nil, err
		}
		err = s.withTransaction(ctx, func(tx domain.Tx) error {
			if err := s.accountRepo.AdjustBalance(ctx, tx, oldAccountID, -oldEffect); err != nil {
				return err
			}
			if err := s.accountRepo.AdjustBalance(ctx, tx, newAccount.ID, updated.Effect()); err != nil {
				return err
			}
			return s.repo.UpdateWithTransaction(ctx, tx, &updated)
		})
		if err != nil {
			return nil, err
		}
	} else {
		err = s.withTransaction(ctx, func(tx domain.Tx) error {
			return s.repo.UpdateWithTransaction(ctx, tx, &updated)
		})
		if err != nil {
			return nil, err
		}
	}

	return s.getOwnedTransaction(ctx, userID, transactionID)
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID uuid.UUID) error {
	existing, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	return s.withTransaction(ctx, func(tx domain.Tx) error {
		if err := s.accountRepo.AdjustBalance(ctx, tx, existing.AccountID, -existing.Effect()); err != nil {
			return err
		}
		return s.repo.DeleteWithTransaction(ctx, tx, transactionID)
	})
}

func (s *TransactionService) getOwnedTransaction(ctx context.Context, userID string, transactionID uuid.UUID) (*domain.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrTransactionNotFound
		}
		return nil, err
	}
	if transaction.UserID != userID {
		return nil, financeErrors.ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *TransactionService) resolveOwnedAccount(ctx context.Context, accountID uuid.UUID, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrAccountNotFound
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, financeErrors.ErrAccountNotFound
	}
	return account, nil
}

func (s *TransactionService) withTransaction(ctx context.Context, fn func(tx domain.Tx) error) error {
	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		safeRollback(tx)
		return err
	}
	return tx.Commit()
}

func safeRollback(tx domain.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Printf("Error during transaction rollback: %v", err)
	}
}
