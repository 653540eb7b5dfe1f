// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/entity"
	"stockcard/internal/core/id"
	"stockcard/internal/core/types"
	"stockcard/internal/domain"
	"stockcard/internal/domain/catalogs/brand"
	"stockcard/internal/domain/catalogs/location"
	"stockcard/internal/domain/catalogs/product"
	"stockcard/internal/domain/catalogs/unit"
	"stockcard/internal/domain/catalogs/warehouse"
	"stockcard/internal/domain/documents/adjustment"
	"stockcard/internal/domain/documents/transfer"
	"stockcard/internal/infrastructure/numerator"
	"stockcard/internal/infrastructure/storage/postgres"
	"stockcard/internal/infrastructure/storage/postgres/catalog_repo"
	"stockcard/internal/infrastructure/storage/postgres/document_repo"
	"stockcard/internal/infrastructure/storage/postgres/stock_repo"
	"stockcard/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@stockcard.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			is_active, is_admin, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, $4, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return nil
}

// demoServices bundles the wired services the demo seed works through.
// Going through the services keeps numbering, validation and stock
// registration identical to the API path.
type demoServices struct {
	units       *unit.Service
	brands      *brand.Service
	locations   *location.Service
	warehouses  *warehouse.Service
	products    *product.Service
	transfers   *transfer.Service
	adjustments *adjustment.Service
}

func buildDemoServices(pool *postgres.Pool) *demoServices {
	txManager := postgres.NewTxManager(pool)
	gen := numerator.New(txManager)
	stockRepo := stock_repo.NewStockRepo(txManager)

	return &demoServices{
		units:       unit.NewService(catalog_repo.NewUnitRepo(txManager), txManager, gen),
		brands:      brand.NewService(catalog_repo.NewBrandRepo(txManager), txManager, gen),
		locations:   location.NewService(catalog_repo.NewLocationRepo(txManager), txManager, gen),
		warehouses:  warehouse.NewService(catalog_repo.NewWarehouseRepo(txManager), txManager, gen),
		products:    product.NewService(catalog_repo.NewProductRepo(txManager), txManager, gen),
		transfers:   transfer.NewService(document_repo.NewTransferRepo(txManager), stockRepo, gen, txManager),
		adjustments: adjustment.NewService(document_repo.NewAdjustmentRepo(txManager), stockRepo, gen, txManager),
	}
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	svc := buildDemoServices(pool)

	// 1. Units
	unitIDs := make(map[string]id.ID)
	for _, u := range []struct {
		code   string
		name   string
		symbol string
		uType  unit.UnitType
	}{
		{"PCS", "Piece", "pcs", unit.TypePiece},
		{"KG", "Kilogram", "kg", unit.TypeWeight},
		{"BOX", "Box", "box", unit.TypePack},
	} {
		item := unit.NewUnit(u.code, u.name, u.symbol, u.uType)
		item.IsBase = true
		uid, err := ensureCatalog(ctx, svc.units.CatalogService, item, u.code)
		if err != nil {
			log.Warnw("failed to seed unit", "code", u.code, "error", err)
			continue
		}
		unitIDs[u.code] = uid
	}

	// 2. Brand
	brandEntity := brand.NewBrand("BR-DEMO", "Demo Brand")
	brandID, err := ensureCatalog(ctx, svc.brands.CatalogService, brandEntity, "BR-DEMO")
	if err != nil {
		log.Warnw("failed to seed brand", "error", err)
	}

	// 3. Locations: a warehouse stock root with two shelves, plus the
	// virtual counterparts moves cross at the boundary.
	locIDs := make(map[string]id.ID)
	for _, l := range []struct {
		code   string
		name   string
		usage  location.Usage
		parent string // code of parent, resolved below
	}{
		{"WH-STOCK", "Main Warehouse/Stock", location.UsageInternal, ""},
		{"WH-SHELF1", "Shelf 1", location.UsageInternal, "WH-STOCK"},
		{"WH-SHELF2", "Shelf 2", location.UsageInternal, "WH-STOCK"},
		{"VIRT-SUP", "Virtual/Suppliers", location.UsageSupplier, ""},
		{"VIRT-CUST", "Virtual/Customers", location.UsageCustomer, ""},
		{"VIRT-INV", "Virtual/Inventory Adjustment", location.UsageInventory, ""},
	} {
		item := location.NewLocation(l.code, l.name, l.usage)
		item.CompleteName = l.name
		if l.parent != "" {
			if parentID, ok := locIDs[l.parent]; ok {
				item.SetParent(parentID.String())
			}
		}
		lid, err := ensureCatalog(ctx, svc.locations.CatalogService, item, l.code)
		if err != nil {
			log.Warnw("failed to seed location", "code", l.code, "error", err)
			continue
		}
		locIDs[l.code] = lid
	}

	// 4. Warehouse anchored at the stock root location
	whEntity := warehouse.NewWarehouse("WH-001", "Main Warehouse")
	if rootID, ok := locIDs["WH-STOCK"]; ok {
		whEntity.RootLocationID = &rootID
	}
	whEntity.IsDefault = true
	whID, err := ensureCatalog(ctx, svc.warehouses.CatalogService, whEntity, "WH-001")
	if err != nil {
		log.Warnw("failed to seed warehouse", "error", err)
	} else {
		// Backfill the warehouse reference on its locations
		for _, code := range []string{"WH-STOCK", "WH-SHELF1", "WH-SHELF2"} {
			lid, ok := locIDs[code]
			if !ok {
				continue
			}
			loc, err := svc.locations.GetByID(ctx, lid)
			if err != nil || loc.WarehouseID != nil {
				continue
			}
			loc.WarehouseID = &whID
			if err := svc.locations.Update(ctx, loc); err != nil {
				log.Warnw("failed to link location to warehouse", "code", code, "error", err)
			}
		}
	}

	// 5. Products
	prodIDs := make(map[string]id.ID)
	for _, p := range []struct {
		code     string
		name     string
		article  string
		unitCode string
	}{
		{"PR-00001", "Office Paper A4", "PAP-A4", "BOX"},
		{"PR-00002", "Ballpoint Pen Blue", "PEN-BLU", "PCS"},
		{"PR-00003", "Desktop Stapler", "STP-001", "PCS"},
		{"PR-00004", "Paper Clips 28mm", "CLP-028", "BOX"},
	} {
		item := product.NewProduct(p.code, p.name, product.TypeGoods)
		article := p.article
		item.Article = &article
		if uid, ok := unitIDs[p.unitCode]; ok {
			uid := uid
			item.BaseUnitID = &uid
		}
		if !id.IsNil(brandID) {
			item.BrandID = &brandID
		}
		pid, err := ensureCatalog(ctx, svc.products.CatalogService, item, p.code)
		if err != nil {
			log.Warnw("failed to seed product", "code", p.code, "error", err)
			continue
		}
		prodIDs[p.code] = pid
	}

	// 6. Demo movements: a posted receipt, an internal move and an
	// inventory write-off, spread over the past weeks so stock card
	// reports over a date range have an opening balance and lines.
	if err := seedDemoMovements(ctx, svc, log, locIDs, prodIDs); err != nil {
		log.Warnw("failed to seed demo movements", "error", err)
	}

	log.Info("demo data seeded successfully")
	return nil
}

func seedDemoMovements(ctx context.Context, svc *demoServices, log *logger.Logger, locIDs, prodIDs map[string]id.ID) error {
	supplier, ok1 := locIDs["VIRT-SUP"]
	stockLoc, ok2 := locIDs["WH-STOCK"]
	shelf1, ok3 := locIDs["WH-SHELF1"]
	invLoc, ok4 := locIDs["VIRT-INV"]
	paper, ok5 := prodIDs["PR-00001"]
	pen, ok6 := prodIDs["PR-00002"]
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
		return errors.New("demo catalogs incomplete, skipping movements")
	}

	// Re-runs would double the stock, so bail out if movements exist
	existing, err := svc.transfers.List(ctx, transfer.ListFilter{
		ListFilter: domain.ListFilter{Limit: 1},
	})
	if err != nil {
		return fmt.Errorf("check existing transfers: %w", err)
	}
	if existing.TotalCount > 0 {
		log.Info("demo movements already exist, skipping")
		return nil
	}

	now := time.Now()

	receipt := transfer.NewTransfer(transfer.OperationIncoming, supplier, stockLoc)
	receipt.Date = now.AddDate(0, 0, -21)
	receipt.Comment = "Initial receipt from supplier"
	receipt.AddLine(paper, types.NewQuantityFromFloat64(100), "")
	receipt.AddLine(pen, types.NewQuantityFromFloat64(500), "")
	if err := createAndPost(ctx, svc.transfers, receipt); err != nil {
		return fmt.Errorf("seed receipt: %w", err)
	}

	move := transfer.NewTransfer(transfer.OperationInternal, stockLoc, shelf1)
	move.Date = now.AddDate(0, 0, -10)
	move.Comment = "Restock shelf 1"
	move.AddLine(paper, types.NewQuantityFromFloat64(20), "")
	if err := createAndPost(ctx, svc.transfers, move); err != nil {
		return fmt.Errorf("seed internal move: %w", err)
	}

	writeOff := adjustment.NewAdjustment(stockLoc, invLoc)
	writeOff.Date = now.AddDate(0, 0, -3)
	writeOff.Comment = "Damaged goods write-off"
	writeOff.AddLine(paper, types.NewQuantityFromFloat64(-2), "")
	if err := svc.adjustments.Create(ctx, writeOff); err != nil {
		return fmt.Errorf("seed adjustment: %w", err)
	}
	if err := svc.adjustments.Post(ctx, writeOff.ID); err != nil {
		return fmt.Errorf("post adjustment: %w", err)
	}

	log.Info("demo movements posted")
	return nil
}

func createAndPost(ctx context.Context, svc *transfer.Service, doc *transfer.Transfer) error {
	if err := svc.Create(ctx, doc); err != nil {
		return err
	}
	return svc.Post(ctx, doc.ID)
}

// catalogEntity is what ensureCatalog needs from a seeded catalog item.
type catalogEntity interface {
	entity.Validatable
	GetID() id.ID
}

// ensureCatalog creates the entity unless one with the same code already
// exists, and returns the effective ID either way. Keeps the seeder
// re-runnable.
func ensureCatalog[T catalogEntity](ctx context.Context, svc *domain.CatalogService[T], e T, code string) (id.ID, error) {
	existing, err := svc.GetByCode(ctx, code)
	if err == nil {
		return existing.GetID(), nil
	}
	if !apperror.IsNotFound(err) {
		return id.Nil(), err
	}

	if err := svc.Create(ctx, e); err != nil {
		return id.Nil(), err
	}
	return e.GetID(), nil
}
