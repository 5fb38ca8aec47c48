package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/d4rfl0w/bank-account-task/internal/adapter/storage"
	"github.com/d4rfl0w/bank-account-task/internal/core/service"
)

type PaymentHandler struct {
	Service *service.PaymentService

	// Hooks and WebhookURL are optional; when both are set, completed
	// payments are announced to the configured endpoint.
	Hooks      *storage.WebhookQueue
	WebhookURL string
}

type PaymentRequest struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

// MakePayment debits an account through the payment service. Domain
// errors come back verbatim; only their HTTP status is decided here.
func (h *PaymentHandler) MakePayment(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AccountID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "account_id is required"})
	}

	payment, err := parsePayment(req.Amount, req.Currency)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.Service.MakePayment(c.Context(), req.AccountID, payment); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if h.Hooks != nil && h.WebhookURL != "" {
		err := h.Hooks.Enqueue(c.Context(), h.WebhookURL, fiber.Map{
			"event":      "payment.completed",
			"account_id": req.AccountID,
			"amount":     req.Amount,
			"currency":   req.Currency,
			"occurred":   time.Now().UTC(),
		})
		if err != nil {
			// The payment itself went through; delivery is best effort.
			slog.Error("Failed to enqueue payment webhook", "error", err, "account_id", req.AccountID)
		}
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Payment completed"})
}
