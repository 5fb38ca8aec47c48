package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind tags a ledger entry as a credit or a debit.
type TransactionKind string

const (
	TxCredit TransactionKind = "credit"
	TxDebit  TransactionKind = "debit"
)

// Transaction is one immutable ledger entry. For debits Amount is the
// total deducted (requested amount plus fee), not the requested amount.
type Transaction struct {
	Kind      TransactionKind
	Amount    decimal.Decimal
	Timestamp time.Time
}

// HistoryEntry is the read-only projection of a ledger entry returned
// by TransactionHistory, with the timestamp rendered to the second.
type HistoryEntry struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

const (
	historyTimeLayout = "2006-01-02 15:04:05"
	dayLayout         = "2006-01-02"

	// dailyDebitLimit caps successful debits per calendar date.
	dailyDebitLimit = 3
)

// debitFeeRate is the surcharge applied to every debit: 0.5% of the
// requested amount. Credits carry no fee.
var debitFeeRate = decimal.RequireFromString("0.005")

// Account is the aggregate root: a currency, a balance and an append-only
// ledger, mutated only through Credit and Debit. Validation runs entirely
// before any mutation, so a failed call leaves the account unchanged.
// The mutex serializes callers so the limit check and the ledger append
// act as one unit.
type Account struct {
	mu       sync.Mutex
	id       string
	currency Currency
	balance  decimal.Decimal
	ledger   []Transaction
	now      func() time.Time
}

// NewAccount opens an account with a fresh id and an empty ledger.
// The initial balance may be zero but never negative.
func NewAccount(currency Currency, initialBalance decimal.Decimal) (*Account, error) {
	if initialBalance.Sign() < 0 {
		return nil, ErrInvalidInitialBalance
	}
	return &Account{
		id:       uuid.NewString(),
		currency: currency,
		balance:  initialBalance,
		now:      time.Now,
	}, nil
}

// RestoreAccount rebuilds an aggregate from a persisted snapshot.
// The ledger slice is copied, so the caller keeps ownership of its own.
func RestoreAccount(id string, currency Currency, balance decimal.Decimal, ledger []Transaction) *Account {
	cp := make([]Transaction, len(ledger))
	copy(cp, ledger)
	return &Account{
		id:       id,
		currency: currency,
		balance:  balance,
		ledger:   cp,
		now:      time.Now,
	}
}

func (a *Account) ID() string {
	return a.id
}

func (a *Account) Currency() Currency {
	return a.currency
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Credit adds the payment amount to the balance and records it.
// No fee and no daily limit apply to credits.
func (a *Account) Credit(p Payment) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !p.Currency().Equals(a.currency) {
		return ErrCurrencyMismatch
	}

	a.balance = a.balance.Add(p.Amount())
	a.ledger = append(a.ledger, Transaction{
		Kind:      TxCredit,
		Amount:    p.Amount(),
		Timestamp: a.now(),
	})
	return nil
}

// Debit deducts the payment amount plus the 0.5% fee. The balance check
// runs before the daily-limit check, so when both would fail the caller
// sees ErrInsufficientBalance. Failed attempts are never recorded and
// never count toward the limit.
func (a *Account) Debit(p Payment) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !p.Currency().Equals(a.currency) {
		return ErrCurrencyMismatch
	}

	fee := p.Amount().Mul(debitFeeRate)
	total := p.Amount().Add(fee)

	if a.balance.LessThan(total) {
		return ErrInsufficientBalance
	}
	if a.countDebitsOn(a.now()) >= dailyDebitLimit {
		return ErrTransactionLimitExceeded
	}

	a.balance = a.balance.Sub(total)
	a.ledger = append(a.ledger, Transaction{
		Kind:      TxDebit,
		Amount:    total,
		Timestamp: a.now(),
	})
	return nil
}

// countDebitsOn rescans the ledger for debits sharing the given calendar
// date. Deliberately no cached counter: the limit stays trivially
// consistent with ledger content.
func (a *Account) countDebitsOn(t time.Time) int {
	day := t.Format(dayLayout)
	n := 0
	for _, tx := range a.ledger {
		if tx.Kind == TxDebit && tx.Timestamp.Format(dayLayout) == day {
			n++
		}
	}
	return n
}

// Ledger returns a copy of the raw ledger, oldest entry first.
func (a *Account) Ledger() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Transaction, len(a.ledger))
	copy(out, a.ledger)
	return out
}

// TransactionHistory returns a snapshot projection of the ledger.
// It is not a live view: later transactions do not show up in it.
func (a *Account) TransactionHistory() []HistoryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]HistoryEntry, 0, len(a.ledger))
	for _, tx := range a.ledger {
		out = append(out, HistoryEntry{
			Type:   string(tx.Kind),
			Amount: tx.Amount,
			Date:   tx.Timestamp.Format(historyTimeLayout),
		})
	}
	return out
}
