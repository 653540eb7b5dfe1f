package v1

import (
	"github.com/gin-gonic/gin"

	"stockcard/internal/domain/auth"
	"stockcard/internal/domain/catalogs/brand"
	"stockcard/internal/domain/catalogs/location"
	"stockcard/internal/domain/catalogs/product"
	"stockcard/internal/domain/catalogs/unit"
	"stockcard/internal/domain/catalogs/warehouse"
	"stockcard/internal/domain/documents/adjustment"
	"stockcard/internal/domain/documents/transfer"
	"stockcard/internal/domain/stockcard"
	"stockcard/internal/infrastructure/http/v1/handlers"
	"stockcard/internal/infrastructure/http/v1/middleware"
	"stockcard/internal/infrastructure/storage/postgres"
	"stockcard/pkg/logger"
)

// RouterConfig holds the wired services the HTTP layer exposes.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// IdempotencyStore enables idempotent replays of mutating requests
	// when set
	IdempotencyStore *postgres.IdempotencyStore

	// Catalog services
	Products   *product.Service
	Brands     *brand.Service
	Units      *unit.Service
	Locations  *location.Service
	Warehouses *warehouse.Service

	// Document services
	Transfers   *transfer.Service
	Adjustments *adjustment.Service

	// Reports is the stock card report service
	Reports *stockcard.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		// Idempotent replays for mutating operations
		if cfg.IdempotencyStore != nil {
			protected.Use(middleware.Idempotency(cfg.IdempotencyStore))
		}

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	publicAuth := rg.Group("/auth")

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	RegisterCatalogRoutes(catalogs.Group("/products"), handlers.NewProductHandler(baseHandler, cfg.Products))
	RegisterCatalogRoutes(catalogs.Group("/brands"), handlers.NewBrandHandler(baseHandler, cfg.Brands))
	RegisterCatalogRoutes(catalogs.Group("/units"), handlers.NewUnitHandler(baseHandler, cfg.Units))
	RegisterCatalogRoutes(catalogs.Group("/locations"), handlers.NewLocationHandler(baseHandler, cfg.Locations))
	RegisterCatalogRoutes(catalogs.Group("/warehouses"), handlers.NewWarehouseHandler(baseHandler, cfg.Warehouses))
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	RegisterDocumentRoutes(docsGroup.Group("/transfers"), handlers.NewTransferHandler(baseHandler, cfg.Transfers))
	RegisterDocumentRoutes(docsGroup.Group("/adjustments"), handlers.NewAdjustmentHandler(baseHandler, cfg.Adjustments))
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	stockCardHandler := handlers.NewStockCardHandler(baseHandler, cfg.Reports)
	stockCardHandler.RegisterRoutes(reportsGroup.Group("/stock-card"))
}
