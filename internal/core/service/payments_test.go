package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/d4rfl0w/bank-account-task/internal/core/domain"
)

// stubStore records calls so tests can check sequencing.
type stubStore struct {
	account *domain.Account
	findErr error
	saveErr error
	saved   []*domain.Account
}

func (s *stubStore) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.account, nil
}

func (s *stubStore) Save(ctx context.Context, account *domain.Account) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, account)
	return nil
}

func usdPayment(t *testing.T, amount string) domain.Payment {
	t.Helper()
	usd, err := domain.NewCurrency("USD")
	if err != nil {
		t.Fatal(err)
	}
	p, err := domain.NewPayment(decimal.RequireFromString(amount), usd)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestMakePayment(t *testing.T) {
	usd, _ := domain.NewCurrency("USD")
	account, err := domain.NewAccount(usd, decimal.RequireFromString("100"))
	if err != nil {
		t.Fatal(err)
	}
	store := &stubStore{account: account}
	svc := NewPaymentService(store)

	if err := svc.MakePayment(context.Background(), account.ID(), usdPayment(t, "50")); err != nil {
		t.Fatal(err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved %d accounts, want 1", len(store.saved))
	}
	if want := decimal.RequireFromString("49.75"); !store.saved[0].Balance().Equal(want) {
		t.Fatalf("persisted balance=%s want=%s", store.saved[0].Balance(), want)
	}
}

func TestMakePaymentUnknownAccount(t *testing.T) {
	store := &stubStore{findErr: domain.ErrAccountNotFound}
	svc := NewPaymentService(store)

	err := svc.MakePayment(context.Background(), "missing", usdPayment(t, "50"))
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatal("nothing should be saved when lookup fails")
	}
}

func TestMakePaymentDebitFailureNotPersisted(t *testing.T) {
	usd, _ := domain.NewCurrency("USD")
	account, _ := domain.NewAccount(usd, decimal.RequireFromString("10"))
	store := &stubStore{account: account}
	svc := NewPaymentService(store)

	err := svc.MakePayment(context.Background(), account.ID(), usdPayment(t, "50"))
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatal("failed debit should not be saved")
	}
}

func TestMakePaymentSaveErrorPropagates(t *testing.T) {
	usd, _ := domain.NewCurrency("USD")
	account, _ := domain.NewAccount(usd, decimal.RequireFromString("100"))
	boom := errors.New("db down")
	store := &stubStore{account: account, saveErr: boom}
	svc := NewPaymentService(store)

	if err := svc.MakePayment(context.Background(), account.ID(), usdPayment(t, "50")); !errors.Is(err, boom) {
		t.Fatalf("want save error back verbatim, got %v", err)
	}
}
