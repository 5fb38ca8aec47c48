package handler

import (
	"errors"
	"net/http"

	"github.com/d4rfl0w/bank-account-task/internal/core/domain"
)

// statusForError maps domain failures to HTTP status codes. Anything the
// taxonomy does not cover is a 500: the domain never produced it.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTransactionLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidInitialBalance),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
