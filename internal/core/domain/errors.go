package domain

import "errors"

// Domain errors are the only failure modes the core produces. The HTTP
// handlers translate them to status codes; nothing here is retryable.
var (
	// ErrInvalidCurrency means the currency code is not in the allowed set.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInvalidAmount means a payment amount was zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidInitialBalance means an account was opened with a negative balance.
	ErrInvalidInitialBalance = errors.New("initial balance cannot be negative")

	// ErrCurrencyMismatch means the payment currency differs from the account currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrInsufficientBalance means the balance does not cover amount + fee.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrTransactionLimitExceeded means the account already made 3 debits today.
	ErrTransactionLimitExceeded = errors.New("daily transaction limit exceeded")

	// ErrAccountNotFound means the store has no account with the given id.
	ErrAccountNotFound = errors.New("account not found")
)
