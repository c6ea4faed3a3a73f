//go:build integration

package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nabhi/financeflow/internal/finance/application"
	"github.com/nabhi/financeflow/internal/finance/domain"
)

const schema = `
CREATE TABLE users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email TEXT NOT NULL UNIQUE,
    login TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    two_factor_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    two_factor_method TEXT NOT NULL DEFAULT '',
    hash_token TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE user_two_factor_secrets (
    user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    secret TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE categories (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT,
    type TEXT NOT NULL
);

CREATE TABLE accounts (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    balance DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE transactions (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    account_id UUID NOT NULL REFERENCES accounts(id),
    category_id INT REFERENCES categories(id),
    amount DOUBLE PRECISION NOT NULL,
    type TEXT NOT NULL,
    date TIMESTAMPTZ NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE budgets (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    amount DOUBLE PRECISION NOT NULL,
    period TEXT NOT NULL,
    category_id INT NOT NULL REFERENCES categories(id),
    created_at TIMESTAMPTZ NOT NULL
);
`

func setupTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("financeflow_test"),
		postgres.WithUsername("financeflow"),
		postgres.WithPassword("financeflow"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("could not terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())

	_, err = db.Exec(schema)
	require.NoError(t, err)

	return db
}

func insertTestUser(t *testing.T, db *sql.DB, email, login string) string {
	t.Helper()
	var userID string
	err := db.QueryRow(
		`INSERT INTO users (email, login, password_hash, hash_token) VALUES ($1, $2, 'x', 'x') RETURNING id`,
		email, login,
	).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func findCategoryID(t *testing.T, categories []domain.Category, name string) int {
	t.Helper()
	for _, category := range categories {
		if category.Name == name {
			return category.ID
		}
	}
	t.Fatalf("category %q not seeded", name)
	return 0
}

func TestPostgresTransactionLifecycle(t *testing.T) {
	db := setupTestDatabase(t)
	ctx := context.Background()

	transactionRepo := NewTransactionRepository(db)
	accountRepo := NewAccountRepository(db)
	categoryRepo := NewCategoryRepository(db)

	categoryService := application.NewCategoryService(categoryRepo)
	require.NoError(t, categoryService.SeedDefaultCategories(ctx))
	// Seeding again must be a no-op.
	require.NoError(t, categoryService.SeedDefaultCategories(ctx))

	categories, err := categoryService.GetAllCategories(ctx, "")
	require.NoError(t, err)
	foodCategoryID := findCategoryID(t, categories, "Food & Dining")

	accountService := application.NewAccountService(accountRepo, transactionRepo)
	transactionService := application.NewTransactionService(transactionRepo, accountRepo, categoryService)

	userID := insertTestUser(t, db, "nabhi@example.com", "nabhi-dev")

	account, err := accountService.CreateAccount(ctx, userID, "Checking", "checking", 500)
	require.NoError(t, err)

	created, err := transactionService.CreateTransaction(ctx, &domain.Transaction{
		UserID:      userID,
		AccountID:   account.ID,
		CategoryID:  &foodCategoryID,
		Amount:      100,
		Type:        domain.TypeExpense,
		Date:        time.Now().UTC(),
		Description: "Groceries",
	})
	require.NoError(t, err)

	fetched, err := transactionService.GetTransaction(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checking", fetched.AccountName)
	assert.Equal(t, "Food & Dining", fetched.CategoryName)

	account, err = accountService.GetAccount(ctx, userID, account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 400, account.Balance, 0.001)

	// Flipping the type reverts the old effect before applying the new one.
	income := domain.TypeIncome
	amount := 250.0
	_, err = transactionService.UpdateTransaction(ctx, userID, created.ID, domain.TransactionUpdate{
		Amount: &amount,
		Type:   &income,
	})
	require.NoError(t, err)

	account, err = accountService.GetAccount(ctx, userID, account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 750, account.Balance, 0.001)

	// The account cannot be removed while the transaction references it.
	err = accountService.DeleteAccount(ctx, userID, account.ID)
	assert.Error(t, err)

	require.NoError(t, transactionService.DeleteTransaction(ctx, userID, created.ID))

	account, err = accountService.GetAccount(ctx, userID, account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500, account.Balance, 0.001)

	require.NoError(t, accountService.DeleteAccount(ctx, userID, account.ID))
}

func TestPostgresTransactionFiltering(t *testing.T) {
	db := setupTestDatabase(t)
	ctx := context.Background()

	transactionRepo := NewTransactionRepository(db)
	accountRepo := NewAccountRepository(db)
	categoryRepo := NewCategoryRepository(db)

	categoryService := application.NewCategoryService(categoryRepo)
	require.NoError(t, categoryService.SeedDefaultCategories(ctx))

	accountService := application.NewAccountService(accountRepo, transactionRepo)
	transactionService := application.NewTransactionService(transactionRepo, accountRepo, categoryService)

	userID := insertTestUser(t, db, "filter@example.com", "filter-user")
	otherUserID := insertTestUser(t, db, "other@example.com", "other-user")

	account, err := accountService.CreateAccount(ctx, userID, "Wallet", "checking", 0)
	require.NoError(t, err)
	otherAccount, err := accountService.CreateAccount(ctx, otherUserID, "Wallet", "checking", 0)
	require.NoError(t, err)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for day, transactionType := range map[int]string{
		1: domain.TypeIncome,
		2: domain.TypeExpense,
		3: domain.TypeExpense,
	} {
		_, err = transactionService.CreateTransaction(ctx, &domain.Transaction{
			UserID:    userID,
			AccountID: account.ID,
			Amount:    float64(10 * day),
			Type:      transactionType,
			Date:      base.AddDate(0, 0, day),
		})
		require.NoError(t, err)
	}
	_, err = transactionService.CreateTransaction(ctx, &domain.Transaction{
		UserID:    otherUserID,
		AccountID: otherAccount.ID,
		Amount:    999,
		Type:      domain.TypeExpense,
		Date:      base,
	})
	require.NoError(t, err)

	expenses, err := transactionService.GetUserTransactions(ctx, userID, domain.TransactionFilter{Type: domain.TypeExpense})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)
	for _, transaction := range expenses {
		assert.Equal(t, domain.TypeExpense, transaction.Type)
	}

	// Newest first, stable across calls.
	all, err := transactionService.GetUserTransactions(ctx, userID, domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Date.After(all[1].Date))

	start := base.AddDate(0, 0, 2)
	inRange, err := transactionRepo.GetTransactionsInDateRange(ctx, userID, start, base.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)
}

func TestPostgresBudgetProgress(t *testing.T) {
	db := setupTestDatabase(t)
	ctx := context.Background()

	transactionRepo := NewTransactionRepository(db)
	accountRepo := NewAccountRepository(db)
	categoryRepo := NewCategoryRepository(db)
	budgetRepo := NewBudgetRepository(db)

	categoryService := application.NewCategoryService(categoryRepo)
	require.NoError(t, categoryService.SeedDefaultCategories(ctx))

	categories, err := categoryService.GetAllCategories(ctx, "expense")
	require.NoError(t, err)
	foodCategoryID := findCategoryID(t, categories, "Food & Dining")

	accountService := application.NewAccountService(accountRepo, transactionRepo)
	transactionService := application.NewTransactionService(transactionRepo, accountRepo, categoryService)
	budgetService := application.NewBudgetService(budgetRepo, transactionRepo, categoryService)

	userID := insertTestUser(t, db, "budget@example.com", "budget-user")
	account, err := accountService.CreateAccount(ctx, userID, "Checking", "checking", 1000)
	require.NoError(t, err)

	budget, err := budgetService.CreateBudget(ctx, userID, "Groceries", 400, "monthly", foodCategoryID)
	require.NoError(t, err)

	now := time.Now().UTC()
	_, err = transactionService.CreateTransaction(ctx, &domain.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: &foodCategoryID,
		Amount:     150,
		Type:       domain.TypeExpense,
		Date:       now,
	})
	require.NoError(t, err)

	progress, err := budgetService.GetBudgetProgress(ctx, userID, budget.ID, now)
	require.NoError(t, err)
	assert.InDelta(t, 150, progress.Spent, 0.001)
	assert.InDelta(t, 250, progress.Remaining, 0.001)
	assert.InDelta(t, 37.5, progress.PercentUsed, 0.001)
}
