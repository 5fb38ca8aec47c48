package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/d4rfl0w/bank-account-task/internal/adapter/storage"
	"github.com/d4rfl0w/bank-account-task/internal/core/service"
)

func newTestApp() *fiber.App {
	store := storage.NewMemoryAccountStore()
	payments := service.NewPaymentService(store)

	accountHandler := &AccountHandler{Store: store}
	transactionHandler := &TransactionHandler{Store: store}
	paymentHandler := &PaymentHandler{Service: payments}

	app := fiber.New()
	api := app.Group("/v1")
	api.Post("/accounts", accountHandler.CreateAccount)
	api.Get("/accounts/:id", accountHandler.GetAccount)
	api.Get("/accounts/:id/transactions", transactionHandler.GetHistory)
	api.Post("/accounts/:id/deposit", transactionHandler.Deposit)
	api.Post("/payments", paymentHandler.MakePayment)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp, raw
}

type accountBody struct {
	ID       string          `json:"id"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

func createAccount(t *testing.T, app *fiber.App, currency, balance string) accountBody {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/v1/accounts", fiber.Map{
		"currency":        currency,
		"initial_balance": balance,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create account status=%d body=%s", resp.StatusCode, raw)
	}
	var acc accountBody
	if err := json.Unmarshal(raw, &acc); err != nil {
		t.Fatal(err)
	}
	return acc
}

func TestCreateAccount(t *testing.T) {
	app := newTestApp()

	acc := createAccount(t, app, "USD", "100")
	if acc.ID == "" || acc.Currency != "USD" {
		t.Fatalf("unexpected account: %+v", acc)
	}
	if !acc.Balance.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("balance=%s want=100", acc.Balance)
	}
}

func TestCreateAccountRejectsBadInput(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/v1/accounts", fiber.Map{"currency": "JPY"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown currency status=%d want=400", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/v1/accounts", fiber.Map{
		"currency":        "USD",
		"initial_balance": "-5",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative balance status=%d want=400", resp.StatusCode)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodGet, "/v1/accounts/unknown", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want=404", resp.StatusCode)
	}
}

func TestPaymentFlow(t *testing.T) {
	app := newTestApp()
	acc := createAccount(t, app, "USD", "100")

	resp, raw := doJSON(t, app, http.MethodPost, "/v1/payments", fiber.Map{
		"account_id": acc.ID,
		"amount":     "50",
		"currency":   "USD",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payment status=%d body=%s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, app, http.MethodGet, "/v1/accounts/"+acc.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status=%d", resp.StatusCode)
	}
	var got accountBody
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Balance.Equal(decimal.RequireFromString("49.75")) {
		t.Fatalf("balance after 50 + 0.5%% fee = %s, want 49.75", got.Balance)
	}
}

func TestPaymentInsufficientBalance(t *testing.T) {
	app := newTestApp()
	acc := createAccount(t, app, "USD", "20")

	resp, _ := doJSON(t, app, http.MethodPost, "/v1/payments", fiber.Map{
		"account_id": acc.ID,
		"amount":     "30",
		"currency":   "USD",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status=%d want=409", resp.StatusCode)
	}

	// Balance untouched.
	_, raw := doJSON(t, app, http.MethodGet, "/v1/accounts/"+acc.ID, nil)
	var got accountBody
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Balance.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("balance=%s want=20", got.Balance)
	}
}

func TestPaymentCurrencyMismatch(t *testing.T) {
	app := newTestApp()
	acc := createAccount(t, app, "USD", "100")

	resp, _ := doJSON(t, app, http.MethodPost, "/v1/payments", fiber.Map{
		"account_id": acc.ID,
		"amount":     "10",
		"currency":   "EUR",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", resp.StatusCode)
	}
}

func TestPaymentUnknownAccount(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/v1/payments", fiber.Map{
		"account_id": "missing",
		"amount":     "10",
		"currency":   "USD",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want=404", resp.StatusCode)
	}
}

func TestDepositAndHistory(t *testing.T) {
	app := newTestApp()
	acc := createAccount(t, app, "USD", "100")

	resp, raw := doJSON(t, app, http.MethodPost, "/v1/accounts/"+acc.ID+"/deposit", fiber.Map{
		"amount":   "50",
		"currency": "USD",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deposit status=%d body=%s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, app, http.MethodPost, "/v1/payments", fiber.Map{
		"account_id": acc.ID,
		"amount":     "30",
		"currency":   "USD",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payment status=%d body=%s", resp.StatusCode, raw)
	}

	_, raw = doJSON(t, app, http.MethodGet, "/v1/accounts/"+acc.ID+"/transactions", nil)
	var history struct {
		Transactions []struct {
			Type   string          `json:"type"`
			Amount decimal.Decimal `json:"amount"`
			Date   string          `json:"date"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &history); err != nil {
		t.Fatal(err)
	}
	if len(history.Transactions) != 2 {
		t.Fatalf("history len=%d want=2", len(history.Transactions))
	}
	if history.Transactions[0].Type != "credit" || !history.Transactions[0].Amount.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("first=%+v want credit 50", history.Transactions[0])
	}
	// Debit entries record the total including the fee.
	if history.Transactions[1].Type != "debit" || !history.Transactions[1].Amount.Equal(decimal.RequireFromString("30.15")) {
		t.Fatalf("second=%+v want debit 30.15", history.Transactions[1])
	}
}
