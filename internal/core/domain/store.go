package domain

import "context"

// AccountStore is the persistence contract the adapters implement.
// Save upserts by the account's own id, never by object identity:
// saving the same id twice replaces the previous snapshot.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	Save(ctx context.Context, account *Account) error
}
