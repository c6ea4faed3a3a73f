package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// NotFoundError covers both missing records and records owned by another
// user, so a caller cannot tell "not yours" apart from "does not exist".
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

// InsufficientDataError signals that an analytics call had no transactions to
// work with. It is informational, not a failure.
type InsufficientDataError struct {
	Msg string
}

func (e *InsufficientDataError) Error() string {
	return e.Msg
}

func NewInsufficientDataError(msg string) error {
	return &InsufficientDataError{Msg: msg}
}

func IsInsufficientDataError(err error) bool {
	var insufficientDataError *InsufficientDataError
	return errors.As(err, &insufficientDataError)
}

var (
	ErrAccountNotFound     = NewNotFoundError("Account not found")
	ErrTransactionNotFound = NewNotFoundError("Transaction not found")
	ErrBudgetNotFound      = NewNotFoundError("Budget not found")

	ErrInvalidCategory     = NewValidationError("Invalid category")
	ErrInvalidAmount       = NewValidationError("Amount must be a positive, finite number")
	ErrInvalidAccountType  = NewValidationError("Account type must be 'checking', 'savings', 'credit' or 'investment'")
	ErrInvalidBudgetPeriod = NewValidationError("Budget period must be 'weekly', 'monthly' or 'yearly'")

	ErrNoTransactionsInPeriod = NewInsufficientDataError("No transactions found for analysis period")
	ErrNoSpendingData         = NewInsufficientDataError("Insufficient data for pattern analysis")

	ErrAccountHasTransactions = NewValidationError("Account still has transactions and cannot be deleted")
)
