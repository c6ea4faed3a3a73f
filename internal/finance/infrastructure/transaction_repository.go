package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nabhi/financeflow/internal/finance/domain"
)

const transactionColumns = `
        t.id, t.user_id, t.account_id, t.category_id, t.amount, t.type, t.date,
        t.description, t.created_at, a.name, COALESCE(c.name, '')`

const transactionJoins = `
        FROM transactions t
        JOIN accounts a ON a.id = t.account_id
        LEFT JOIN categories c ON c.id = t.category_id`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) BeginTransaction(ctx context.Context) (domain.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

func (r *TransactionRepository) SaveWithTransaction(ctx context.Context, tx domain.Tx, transaction *domain.Transaction) error {
	sqlTx := tx.(*sql.Tx)
	_, err := sqlTx.ExecContext(ctx,
		`INSERT INTO transactions
        (id, user_id, account_id, category_id, amount, type, date, description, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		transaction.ID, transaction.UserID, transaction.AccountID, transaction.CategoryID,
		transaction.Amount, transaction.Type, transaction.Date, transaction.Description, transaction.CreatedAt,
	)
	return err
}

func (r *TransactionRepository) UpdateWithTransaction(ctx context.Context, tx domain.Tx, transaction *domain.Transaction) error {
	sqlTx := tx.(*sql.Tx)
	_, err := sqlTx.ExecContext(ctx,
		`UPDATE transactions
        SET account_id = $1, category_id = $2, amount = $3, type = $4, date = $5, description = $6
        WHERE id = $7`,
		transaction.AccountID, transaction.CategoryID, transaction.Amount, transaction.Type,
		transaction.Date, transaction.Description, transaction.ID,
	)
	return err
}

func (r *TransactionRepository) DeleteWithTransaction(ctx context.Context, tx domain.Tx, transactionID uuid.UUID) error {
	sqlTx := tx.(*sql.Tx)
	_, err := sqlTx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, transactionID)
	return err
}

func (r *TransactionRepository) FindByID(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionJoins + ` WHERE t.id = $1`

	var transaction domain.Transaction
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&transaction.ID, &transaction.UserID, &transaction.AccountID, &transaction.CategoryID,
		&transaction.Amount, &transaction.Type, &transaction.Date, &transaction.Description,
		&transaction.CreatedAt, &transaction.AccountName, &transaction.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) FindByFilter(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionJoins + ` WHERE t.user_id = $1`
	args := []interface{}{userID}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += fmt.Sprintf(" AND t.account_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}

	// Secondary id ordering keeps equal-date rows stable across calls.
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY t.date DESC, t.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.queryTransactions(ctx, query, args...)
}

func (r *TransactionRepository) GetTransactionsInDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionJoins + `
        WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
        ORDER BY t.date DESC, t.id DESC`
	return r.queryTransactions(ctx, query, userID, startDate, endDate)
}

func (r *TransactionRepository) ExistsByAccountID(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE account_id = $1)`
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID, &transaction.UserID, &transaction.AccountID, &transaction.CategoryID,
			&transaction.Amount, &transaction.Type, &transaction.Date, &transaction.Description,
			&transaction.CreatedAt, &transaction.AccountName, &transaction.CategoryName,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
