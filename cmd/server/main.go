// Package main is the entry point for the stock card API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockcard/internal/domain/auth"
	"stockcard/internal/domain/catalogs/brand"
	"stockcard/internal/domain/catalogs/location"
	"stockcard/internal/domain/catalogs/product"
	"stockcard/internal/domain/catalogs/unit"
	"stockcard/internal/domain/catalogs/warehouse"
	"stockcard/internal/domain/documents/adjustment"
	"stockcard/internal/domain/documents/transfer"
	"stockcard/internal/domain/stockcard"
	v1 "stockcard/internal/infrastructure/http/v1"
	"stockcard/internal/infrastructure/numerator"
	"stockcard/internal/infrastructure/storage/postgres"
	"stockcard/internal/infrastructure/storage/postgres/auth_repo"
	"stockcard/internal/infrastructure/storage/postgres/catalog_repo"
	"stockcard/internal/infrastructure/storage/postgres/document_repo"
	"stockcard/internal/infrastructure/storage/postgres/report_repo"
	"stockcard/internal/infrastructure/storage/postgres/stock_repo"
	"stockcard/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stockcard server")

	// --- Database connection ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- JWT Service ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	// --- Auth Service ---
	userRepo := auth_repo.NewUserRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)
	authService := auth.NewService(userRepo, tokenRepo, txManager, jwtService, auth.DefaultServiceConfig())

	// --- Numerator Service ---
	numeratorService := numerator.New(txManager)

	// --- Catalog services ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	brandRepo := catalog_repo.NewBrandRepo(txManager)
	unitRepo := catalog_repo.NewUnitRepo(txManager)
	locationRepo := catalog_repo.NewLocationRepo(txManager)
	warehouseRepo := catalog_repo.NewWarehouseRepo(txManager)

	productService := product.NewService(productRepo, txManager, numeratorService)
	brandService := brand.NewService(brandRepo, txManager, numeratorService)
	unitService := unit.NewService(unitRepo, txManager, numeratorService)
	locationService := location.NewService(locationRepo, txManager, numeratorService)
	warehouseService := warehouse.NewService(warehouseRepo, txManager, numeratorService)

	// --- Document services ---
	stockRepo := stock_repo.NewStockRepo(txManager)
	transferService := transfer.NewService(document_repo.NewTransferRepo(txManager), stockRepo, numeratorService, txManager)
	adjustmentService := adjustment.NewService(document_repo.NewAdjustmentRepo(txManager), stockRepo, numeratorService, txManager)

	// --- Stock card report service ---
	snapshotArchive, err := report_repo.NewSnapshotArchive(txManager)
	if err != nil {
		log.Fatalw("failed to initialize snapshot archive", "error", err)
	}

	reportService := stockcard.NewService(stockcard.Config{
		Wizards:    report_repo.NewWizardStore(txManager),
		Products:   productRepo,
		Brands:     brandRepo,
		Units:      unitRepo,
		Locations:  locationRepo,
		Warehouses: warehouseRepo,
		StockRepo:  stockRepo,
		Archive:    snapshotArchive,
		Timeout:    getEnvDuration("REPORT_TIMEOUT", 2*time.Minute),
	})

	// --- Idempotency store (optional) ---
	var idempotencyStore *postgres.IdempotencyStore
	if getEnv("IDEMPOTENCY_ENABLED", "true") == "true" {
		ttl := getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour)
		idempotencyStore = postgres.NewIdempotencyStore(txManager, ttl)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		JWTValidator:     jwtService,
		AuthService:      authService,
		IdempotencyStore: idempotencyStore,
		Products:         productService,
		Brands:           brandService,
		Units:            unitService,
		Locations:        locationService,
		Warehouses:       warehouseService,
		Transfers:        transferService,
		Adjustments:      adjustmentService,
		Reports:          reportService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
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
