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

type AccountService struct {
	repo            domain.AccountRepository
	transactionRepo domain.TransactionRepository
}

func NewAccountService(repo domain.AccountRepository, transactionRepo domain.TransactionRepository) *AccountService {
	return &AccountService{repo: repo, transactionRepo: transactionRepo}
}

func (s *AccountService) CreateAccount(ctx context.Context, userID, name, accountType string, openingBalance float64) (*domain.Account, error) {
	account := &domain.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      accountType,
		Balance:   openingBalance,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, userID string, accountID uuid.UUID) (*domain.Account, error) {
	return s.getOwnedAccount(ctx, userID, accountID)
}

func (s *AccountService) GetAllAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount changes name and type only; the balance field is owned by the
// transaction engine.
func (s *AccountService) UpdateAccount(ctx context.Context, userID string, accountID uuid.UUID, update domain.AccountUpdate) (*domain.Account, error) {
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Type != nil {
		account.Type = *update.Type
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	affected, err := s.repo.Update(ctx, account)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, financeErrors.ErrAccountNotFound
	}
	return account, nil
}

// DeleteAccount refuses while transactions still reference the account, so a
// balance never silently loses its history.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string, accountID uuid.UUID) error {
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}

	hasTransactions, err := s.transactionRepo.ExistsByAccountID(ctx, account.ID)
	if err != nil {
		return err
	}
	if hasTransactions {
		return financeErrors.ErrAccountHasTransactions
	}

	return s.repo.Delete(ctx, account.ID)
}

func (s *AccountService) getOwnedAccount(ctx context.Context, userID string, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, accountID)
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
