package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `INSERT INTO accounts (id, user_id, name, type, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.UserID, account.Name, account.Type, account.Balance,
		account.CreatedAt, account.UpdatedAt)
	return err
}

func (r *AccountRepository) FindByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, user_id, name, type, balance, created_at, updated_at
              FROM accounts WHERE id = $1`

	var account domain.Account
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID, &account.UserID, &account.Name, &account.Type, &account.Balance,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT id, user_id, name, type, balance, created_at, updated_at
              FROM accounts WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID, &account.UserID, &account.Name, &account.Type, &account.Balance,
			&account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) (int64, error) {
	query := `
        UPDATE accounts
        SET name = $1, type = $2, updated_at = $3
        WHERE id = $4 AND user_id = $5
    `
	result, err := r.db.ExecContext(ctx, query, account.Name, account.Type, time.Now(), account.ID, account.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *AccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	return err
}

func (r *AccountRepository) AdjustBalance(ctx context.Context, tx domain.Tx, accountID uuid.UUID, delta float64) error {
	sqlTx := tx.(*sql.Tx)
	_, err := sqlTx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
		delta, accountID)
	return err
}
