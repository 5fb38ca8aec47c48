package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewPaymentPositiveAmount(t *testing.T) {
	usd, _ := NewCurrency("USD")
	amount := decimal.RequireFromString("50.01")

	p, err := NewPayment(amount, usd)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Amount().Equal(amount) {
		t.Fatalf("Amount()=%s want=%s", p.Amount(), amount)
	}
	if !p.Currency().Equals(usd) {
		t.Fatalf("Currency()=%s want=USD", p.Currency().Code())
	}
}

func TestNewPaymentRejectsNonPositive(t *testing.T) {
	usd, _ := NewCurrency("USD")
	for _, raw := range []string{"0", "-1", "-0.01"} {
		if _, err := NewPayment(decimal.RequireFromString(raw), usd); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("NewPayment(%s): want ErrInvalidAmount, got %v", raw, err)
		}
	}
}
