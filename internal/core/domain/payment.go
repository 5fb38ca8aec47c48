package domain

import "github.com/shopspring/decimal"

// Payment is an immutable (amount, currency) pair handed to the account
// mutators. It is a transient input: the aggregate copies what it needs
// into the ledger and never keeps a reference.
type Payment struct {
	amount   decimal.Decimal
	currency Currency
}

// NewPayment requires a strictly positive amount. There is no upper bound.
func NewPayment(amount decimal.Decimal, currency Currency) (Payment, error) {
	if amount.Sign() <= 0 {
		return Payment{}, ErrInvalidAmount
	}
	return Payment{amount: amount, currency: currency}, nil
}

func (p Payment) Amount() decimal.Decimal {
	return p.amount
}

func (p Payment) Currency() Currency {
	return p.currency
}
