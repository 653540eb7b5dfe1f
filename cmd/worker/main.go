// Package main is the entry point for the stockcard maintenance worker.
// It periodically removes expired idempotency records and refresh tokens.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"stockcard/internal/infrastructure/storage/postgres"
	"stockcard/internal/infrastructure/storage/postgres/auth_repo"
	"stockcard/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting stockcard worker")

	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	worker := &MaintenanceWorker{
		idempotency: postgres.NewIdempotencyStore(txManager, getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour)),
		tokens:      auth_repo.NewTokenRepo(txManager),
		interval:    getEnvDuration("CLEANUP_INTERVAL", 15*time.Minute),
		log:         log,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// MaintenanceWorker runs periodic database cleanup jobs.
type MaintenanceWorker struct {
	idempotency *postgres.IdempotencyStore
	tokens      *auth_repo.TokenRepo
	interval    time.Duration
	log         *logger.Logger
}

// Run executes cleanup jobs until the context is cancelled.
func (w *MaintenanceWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run once at startup, then on every tick
	w.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.cleanup(ctx)
		}
	}
}

func (w *MaintenanceWorker) cleanup(ctx context.Context) {
	if removed, err := w.idempotency.CleanupExpired(ctx); err != nil {
		w.log.Warnw("idempotency cleanup failed", "error", err)
	} else if removed > 0 {
		w.log.Infow("expired idempotency records removed", "count", removed)
	}

	if removed, err := w.tokens.CleanupExpiredTokens(ctx); err != nil {
		w.log.Warnw("token cleanup failed", "error", err)
	} else if removed > 0 {
		w.log.Infow("expired refresh tokens removed", "count", removed)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
