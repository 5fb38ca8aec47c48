package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/d4rfl0w/bank-account-task/internal/core/domain"
)

// accountSnapshot is what the memory store actually keeps: plain data,
// never a pointer to a live aggregate.
type accountSnapshot struct {
	currency domain.Currency
	balance  decimal.Decimal
	ledger   []domain.Transaction
}

// MemoryAccountStore keeps account snapshots in a map keyed by account id.
// Useful for tests and for running the service without a database.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[string]accountSnapshot
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[string]accountSnapshot)}
}

func (s *MemoryAccountStore) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	// RestoreAccount copies the ledger, so the caller cannot reach the
	// stored snapshot through the returned aggregate.
	return domain.RestoreAccount(id, snap.currency, snap.balance, snap.ledger), nil
}

// Save upserts by the account's id: a second save with the same id
// replaces the previous snapshot.
func (s *MemoryAccountStore) Save(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID()] = accountSnapshot{
		currency: account.Currency(),
		balance:  account.Balance(),
		ledger:   account.Ledger(),
	}
	return nil
}
