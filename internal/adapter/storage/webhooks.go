package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WebhookQueue enqueues outbound notification jobs for the worker to pick
// up. Delivery state lives entirely in the webhook_jobs table.
type WebhookQueue struct {
	Db *pgxpool.Pool
}

func NewWebhookQueue(db *pgxpool.Pool) *WebhookQueue {
	return &WebhookQueue{Db: db}
}

func (q *WebhookQueue) Enqueue(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	_, err = q.Db.Exec(ctx,
		`INSERT INTO webhook_jobs (id, url, payload) VALUES ($1, $2, $3)`,
		uuid.NewString(), url, body)
	if err != nil {
		return fmt.Errorf("failed to enqueue webhook: %w", err)
	}
	return nil
}
