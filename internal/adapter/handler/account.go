package handler

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/d4rfl0w/bank-account-task/internal/core/domain"
)

type AccountHandler struct {
	Store domain.AccountStore
}

// CreateAccountRequest defines what the user sends us. Amounts travel as
// strings so the client controls decimal precision, not float64.
type CreateAccountRequest struct {
	Currency       string `json:"currency"`
	InitialBalance string `json:"initial_balance"`
}

func accountResponse(account *domain.Account) fiber.Map {
	return fiber.Map{
		"id":       account.ID(),
		"currency": account.Currency().Code(),
		"balance":  account.Balance(),
	}
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Invalid account body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	currency, err := domain.NewCurrency(req.Currency)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	initial := decimal.Zero
	if req.InitialBalance != "" {
		initial, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid initial balance"})
		}
	}

	account, err := domain.NewAccount(currency, initial)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.Store.Save(c.Context(), account); err != nil {
		slog.Error("Failed to save account", "error", err, "account_id", account.ID())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create account"})
	}

	slog.Info("✅ Account opened", "account_id", account.ID(), "currency", currency.Code())
	return c.Status(http.StatusCreated).JSON(accountResponse(account))
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.Store.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(accountResponse(account))
}
