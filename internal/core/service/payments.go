package service

import (
	"context"
	"log/slog"

	"github.com/d4rfl0w/bank-account-task/internal/core/domain"
)

// PaymentService sequences a payment: look the account up, debit it,
// persist the result. No business rules live here; any failure from the
// store or the aggregate is surfaced verbatim.
type PaymentService struct {
	Store domain.AccountStore
}

func NewPaymentService(store domain.AccountStore) *PaymentService {
	return &PaymentService{Store: store}
}

func (s *PaymentService) MakePayment(ctx context.Context, accountID string, payment domain.Payment) error {
	account, err := s.Store.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := account.Debit(payment); err != nil {
		return err
	}

	if err := s.Store.Save(ctx, account); err != nil {
		return err
	}

	slog.Info("Payment completed",
		"account_id", accountID,
		"amount", payment.Amount(),
		"currency", payment.Currency().Code(),
	)
	return nil
}
