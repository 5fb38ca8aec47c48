package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/d4rfl0w/bank-account-task/internal/adapter/handler"
	"github.com/d4rfl0w/bank-account-task/internal/adapter/middleware"
	"github.com/d4rfl0w/bank-account-task/internal/adapter/storage"
	"github.com/d4rfl0w/bank-account-task/internal/core/config"
	"github.com/d4rfl0w/bank-account-task/internal/core/domain"
	"github.com/d4rfl0w/bank-account-task/internal/core/service"
	"github.com/d4rfl0w/bank-account-task/internal/core/worker"
)

func main() {
	cfg := config.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Postgres when configured, in-memory otherwise. The in-memory store
	// loses everything on restart but runs without any infrastructure.
	var store domain.AccountStore
	var dbPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err := storage.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			slog.Error("❌ Database connection failed", "error", err)
			os.Exit(1)
		}
		if err := storage.Migrate(context.Background(), pool); err != nil {
			slog.Error("❌ Migration failed", "error", err)
			os.Exit(1)
		}
		dbPool = pool
		store = storage.NewPostgresAccountStore(pool)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory account store")
		store = storage.NewMemoryAccountStore()
	}

	payments := service.NewPaymentService(store)

	accountHandler := &handler.AccountHandler{Store: store}
	transactionHandler := &handler.TransactionHandler{Store: store}
	paymentHandler := &handler.PaymentHandler{Service: payments}
	if dbPool != nil && cfg.WebhookURL != "" {
		paymentHandler.Hooks = storage.NewWebhookQueue(dbPool)
		paymentHandler.WebhookURL = cfg.WebhookURL
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/v1")
	api.Post("/accounts", accountHandler.CreateAccount)
	api.Get("/accounts/:id", accountHandler.GetAccount)
	api.Get("/accounts/:id/transactions", transactionHandler.GetHistory)
	api.Post("/accounts/:id/deposit", transactionHandler.Deposit)

	if dbPool != nil {
		api.Post("/payments", middleware.Idempotency(dbPool), paymentHandler.MakePayment)
		worker.StartWebhookWorker(dbPool, cfg.WebhookSecret)
	} else {
		api.Post("/payments", paymentHandler.MakePayment)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("🚀 Server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}()

	<-stop
	slog.Info("🛑 Shutting down server...")

	if dbPool != nil {
		dbPool.Close()
		slog.Info("Database connection closed")
	}

	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	slog.Info("👋 Server exited")
}
