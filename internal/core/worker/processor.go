package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/d4rfl0w/bank-account-task/internal/core/notifications"
)

const maxAttempts = 5

// StartWebhookWorker polls webhook_jobs and delivers pending payment
// notifications. One job at a time; FOR UPDATE SKIP LOCKED keeps multiple
// instances from grabbing the same row.
func StartWebhookWorker(db *pgxpool.Pool, secret string) {
	go func() {
		slog.Info("👷 Webhook worker started")
		for {
			processNextJob(db, secret)
			time.Sleep(5 * time.Second)
		}
	}()
}

func processNextJob(db *pgxpool.Pool, secret string) {
	ctx := context.Background()

	query := `
		SELECT id, url, payload, attempts
		FROM webhook_jobs
		WHERE status = 'PENDING' AND next_run_at <= NOW()
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`

	var id string
	var url string
	var payloadBytes []byte
	var attempts int

	if err := db.QueryRow(ctx, query).Scan(&id, &url, &payloadBytes, &attempts); err != nil {
		// Nothing pending.
		return
	}

	var payload any
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		slog.Error("Webhook worker: unreadable payload", "error", err, "job_id", id)
		db.Exec(ctx, `UPDATE webhook_jobs SET status = 'FAILED' WHERE id = $1`, id)
		return
	}

	slog.Info("Webhook worker: delivering", "url", url, "job_id", id)

	if err := notifications.SendWebhook(url, payload, secret); err != nil {
		slog.Error("Webhook worker: delivery failed", "error", err, "attempts", attempts)
		nextRun := time.Now().Add(time.Duration(attempts*10+10) * time.Second)

		if attempts+1 >= maxAttempts {
			db.Exec(ctx, `UPDATE webhook_jobs SET status = 'FAILED' WHERE id = $1`, id)
			slog.Error("Webhook worker: giving up on job", "job_id", id)
		} else {
			db.Exec(ctx, `UPDATE webhook_jobs SET attempts = attempts + 1, next_run_at = $2 WHERE id = $1`, id, nextRun)
		}
		return
	}

	db.Exec(ctx, `UPDATE webhook_jobs SET status = 'COMPLETED' WHERE id = $1`, id)
	slog.Info("✅ Webhook worker: delivered", "job_id", id)
}
