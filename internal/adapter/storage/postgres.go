package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/d4rfl0w/bank-account-task/internal/core/domain"
)

// PostgresAccountStore persists account snapshots in two tables:
// accounts (one row per account) and account_entries (the ledger, one
// row per transaction, insertion order preserved by the serial id).
type PostgresAccountStore struct {
	Db *pgxpool.Pool
}

func NewPostgresAccountStore(db *pgxpool.Pool) *PostgresAccountStore {
	return &PostgresAccountStore{Db: db}
}

func (s *PostgresAccountStore) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var code, balanceRaw string
	err := s.Db.QueryRow(ctx,
		`SELECT currency, balance::text FROM accounts WHERE id = $1`, id).
		Scan(&code, &balanceRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	currency, err := domain.NewCurrency(code)
	if err != nil {
		return nil, fmt.Errorf("corrupt account row %s: %w", id, err)
	}
	balance, err := decimal.NewFromString(balanceRaw)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance for account %s: %w", id, err)
	}

	rows, err := s.Db.Query(ctx,
		`SELECT kind, amount::text, created_at
		 FROM account_entries
		 WHERE account_id = $1
		 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	defer rows.Close()

	var ledger []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var kind, amountRaw string
		if err := rows.Scan(&kind, &amountRaw, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		tx.Kind = domain.TransactionKind(kind)
		if tx.Amount, err = decimal.NewFromString(amountRaw); err != nil {
			return nil, fmt.Errorf("corrupt ledger amount for account %s: %w", id, err)
		}
		ledger = append(ledger, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	return domain.RestoreAccount(id, currency, balance, ledger), nil
}

// Save rewrites the account's snapshot in one transaction: upsert the
// account row by id, then replace the ledger rows. The ledger is
// append-only in the domain, so rewriting it is just re-inserting the
// same prefix plus the new entries.
func (s *PostgresAccountStore) Save(ctx context.Context, account *domain.Account) error {
	tx, err := s.Db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO accounts (id, currency, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance`,
		account.ID(), account.Currency().Code(), account.Balance().String())
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM account_entries WHERE account_id = $1`, account.ID()); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}

	for _, entry := range account.Ledger() {
		_, err := tx.Exec(ctx, `
			INSERT INTO account_entries (account_id, kind, amount, created_at)
			VALUES ($1, $2, $3, $4)`,
			account.ID(), string(entry.Kind), entry.Amount.String(), entry.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert ledger entry: %w", err)
		}
	}

	return tx.Commit(ctx)
}
