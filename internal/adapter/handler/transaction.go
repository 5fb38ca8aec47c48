package handler

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/d4rfl0w/bank-account-task/internal/core/domain"
)

type TransactionHandler struct {
	Store domain.AccountStore
}

type DepositRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// parsePayment turns a raw (amount, currency) pair into a domain Payment.
func parsePayment(amount, currency string) (domain.Payment, error) {
	cur, err := domain.NewCurrency(currency)
	if err != nil {
		return domain.Payment{}, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	return domain.NewPayment(value, cur)
}

// Deposit credits an account. No fee, no daily limit.
func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	payment, err := parsePayment(req.Amount, req.Currency)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	account, err := h.Store.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := account.Credit(payment); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.Store.Save(c.Context(), account); err != nil {
		slog.Error("Failed to persist deposit", "error", err, "account_id", account.ID())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save deposit"})
	}

	slog.Info("💰 Deposit recorded", "account_id", account.ID(), "amount", req.Amount)
	return c.JSON(accountResponse(account))
}

// GetHistory returns the account's transaction projection, oldest first.
func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	account, err := h.Store.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"account_id":   account.ID(),
		"transactions": account.TransactionHistory(),
	})
}
