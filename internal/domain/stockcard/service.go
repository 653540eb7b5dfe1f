package stockcard

import (
	"context"
	"fmt"
	"time"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain/catalogs/brand"
	"stockcard/internal/domain/catalogs/location"
	"stockcard/internal/domain/catalogs/product"
	"stockcard/internal/domain/catalogs/unit"
	"stockcard/internal/domain/catalogs/warehouse"
	"stockcard/internal/domain/stock"
	"stockcard/pkg/logger"
)

// DefaultTimeout bounds one report run when no other deadline is
// configured.
const DefaultTimeout = 2 * time.Minute

// SnapshotArchiver stores generated report documents for later
// re-rendering. Never consulted during generation.
type SnapshotArchiver interface {
	SaveSnapshot(ctx context.Context, wizardID id.ID, report *Report) error
	GetSnapshot(ctx context.Context, wizardID id.ID) (*Report, error)
}

// Service generates stock card reports.
type Service struct {
	wizards    Store
	products   product.Repository
	brands     brand.Repository
	units      unit.Repository
	locations  location.Repository
	warehouses warehouse.Repository
	scope      *ScopeResolver
	stockRepo  stock.Repository
	archive    SnapshotArchiver
	timeout    time.Duration
}

// Config wires the report service.
type Config struct {
	Wizards    Store
	Products   product.Repository
	Brands     brand.Repository
	Units      unit.Repository
	Locations  location.Repository
	Warehouses warehouse.Repository
	StockRepo  stock.Repository

	// Archive is optional; when set, generated reports are stored as
	// retrievable snapshots
	Archive SnapshotArchiver

	// Timeout bounds one report run; zero means DefaultTimeout
	Timeout time.Duration
}

// NewService creates the report service.
func NewService(cfg Config) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Service{
		wizards:    cfg.Wizards,
		products:   cfg.Products,
		brands:     cfg.Brands,
		units:      cfg.Units,
		locations:  cfg.Locations,
		warehouses: cfg.Warehouses,
		scope:      NewScopeResolver(cfg.Locations),
		stockRepo:  cfg.StockRepo,
		archive:    cfg.Archive,
		timeout:    timeout,
	}
}

// CreateWizard validates and persists a report request. Defaults,
// date-range and scope checks and line-filter compilation all happen
// here, so a stored wizard is always runnable.
func (s *Service) CreateWizard(ctx context.Context, w *Wizard) error {
	if w == nil {
		return apperror.NewMissingReportContext()
	}

	w.ApplyDefaults(s.reportDefaults(ctx))

	if err := w.Validate(ctx); err != nil {
		return err
	}

	if _, err := CompileLineFilter(w.LineFilter); err != nil {
		return err
	}

	if id.IsNil(w.ID) {
		w.ID = id.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	if err := s.wizards.Create(ctx, w); err != nil {
		return fmt.Errorf("save wizard: %w", err)
	}

	logger.Info(ctx, "report wizard created",
		"wizard_id", w.ID,
		"date_from", FormatReportDate(w.DateFrom),
		"date_to", FormatReportDate(w.DateTo))

	return nil
}

// Generate builds the stock card document for a stored wizard.
// The whole run shares one deadline; exceeding it fails the run,
// partial ledgers are never returned.
func (s *Service) Generate(ctx context.Context, wizardID id.ID) (*Report, error) {
	w, err := s.wizards.GetByID(ctx, wizardID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewWizardNotFound(wizardID)
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report, err := s.generate(ctx, w)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		if err := s.archive.SaveSnapshot(ctx, w.ID, report); err != nil {
			logger.Warn(ctx, "report snapshot not saved",
				"wizard_id", w.ID, "error", err)
		}
	}

	return report, nil
}

// GenerateFromRequest is the one-shot path: persist the request and
// generate in a single call. A nil payload means the caller lost its
// report context.
func (s *Service) GenerateFromRequest(ctx context.Context, w *Wizard) (*Report, error) {
	if w == nil {
		return nil, apperror.NewMissingReportContext()
	}

	if err := s.CreateWizard(ctx, w); err != nil {
		return nil, err
	}

	return s.Generate(ctx, w.ID)
}

// Snapshot returns the archived copy of a previously generated report.
func (s *Service) Snapshot(ctx context.Context, wizardID id.ID) (*Report, error) {
	if s.archive == nil {
		return nil, apperror.NewNotFound("report snapshot", wizardID)
	}
	return s.archive.GetSnapshot(ctx, wizardID)
}

func (s *Service) generate(ctx context.Context, w *Wizard) (*Report, error) {
	if err := w.Validate(ctx); err != nil {
		return nil, err
	}

	lineFilter, err := CompileLineFilter(w.LineFilter)
	if err != nil {
		return nil, err
	}

	rootID, warehouseName, locationName, err := s.resolveRoot(ctx, w)
	if err != nil {
		return nil, err
	}

	products, err := s.resolveProducts(ctx, w)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperror.NewNoProductsMatched()
	}

	scope, err := s.scope.Resolve(ctx, rootID)
	if err != nil {
		return nil, err
	}

	brandName, err := s.resolveBrandName(ctx, w)
	if err != nil {
		return nil, err
	}

	unitNames, err := s.unitNames(ctx, products)
	if err != nil {
		return nil, err
	}

	source := s.ledgerSource(w)

	ledgers := make([]ProductLedger, 0, len(products))
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report run aborted: %w", err)
		}

		ledger, err := s.buildProductLedger(ctx, source, p, scope, w, lineFilter, unitNames)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}

	report := &Report{
		DateFrom:        w.DateFrom,
		DateTo:          w.DateTo,
		DateFromDisplay: FormatReportDate(w.DateFrom),
		DateToDisplay:   FormatReportDate(w.DateTo),
		WarehouseName:   warehouseName,
		LocationName:    locationName,
		BrandName:       brandName,
		UseMoveLines:    w.UseMoveLines,
		Products:        ledgers,
		GeneratedAt:     time.Now().UTC(),
	}

	logger.Info(ctx, "stock card generated",
		"wizard_id", w.ID,
		"products", len(ledgers),
		"locations", scope.Len(),
		"use_move_lines", w.UseMoveLines)

	return report, nil
}

func (s *Service) buildProductLedger(
	ctx context.Context,
	source LedgerSource,
	p *product.Product,
	scope LocationSet,
	w *Wizard,
	lineFilter *LineFilter,
	unitNames map[id.ID]string,
) (ProductLedger, error) {
	opening, err := source.OpeningBalance(ctx, p.ID, scope, w.DateFrom)
	if err != nil {
		return ProductLedger{}, fmt.Errorf("opening balance for %s: %w", p.ID, err)
	}

	lines, closing, err := source.ReplayWindow(ctx, p.ID, scope, w.DateFrom, w.DateTo, opening)
	if err != nil {
		return ProductLedger{}, fmt.Errorf("replay window for %s: %w", p.ID, err)
	}

	// Balances come from the full selection; the filter only trims the
	// lines shown.
	lines, err = lineFilter.Apply(lines)
	if err != nil {
		return ProductLedger{}, err
	}

	var unitName string
	if p.BaseUnitID != nil {
		unitName = unitNames[*p.BaseUnitID]
	}

	return ProductLedger{
		ProductID:      p.ID,
		ProductName:    p.Name,
		ProductCode:    p.DisplayCode(),
		Unit:           unitName,
		OpeningBalance: opening.Float64(),
		ClosingBalance: closing.Float64(),
		Lines:          lines,
	}, nil
}

func (s *Service) ledgerSource(w *Wizard) LedgerSource {
	if w.UseMoveLines {
		return NewMoveLineSource(s.stockRepo)
	}
	return NewMoveSource(s.stockRepo)
}

// resolveRoot maps the wizard selection to the scope root location.
// An explicit location wins over the warehouse.
func (s *Service) resolveRoot(ctx context.Context, w *Wizard) (id.ID, string, string, error) {
	if w.LocationID != nil {
		loc, err := s.locations.GetByID(ctx, *w.LocationID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return id.Nil(), "", "", apperror.NewInvalidWarehouse("selected location does not exist")
			}
			return id.Nil(), "", "", err
		}
		return loc.ID, "", loc.DisplayName(), nil
	}

	wh, err := s.warehouses.GetByID(ctx, *w.WarehouseID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return id.Nil(), "", "", apperror.NewInvalidWarehouse("selected warehouse does not exist")
		}
		return id.Nil(), "", "", err
	}

	if !wh.CanReport() {
		return id.Nil(), "", "", apperror.NewInvalidWarehouse("warehouse has no stock location")
	}

	return *wh.RootLocationID, wh.Name, "", nil
}

// resolveProducts applies the selection priority: explicit IDs, then
// brand, then all active products.
func (s *Service) resolveProducts(ctx context.Context, w *Wizard) ([]*product.Product, error) {
	switch {
	case len(w.ProductIDs) > 0:
		return s.products.ListByIDs(ctx, w.ProductIDs)
	case w.BrandID != nil:
		return s.products.ListByBrand(ctx, *w.BrandID)
	default:
		return s.products.ListActive(ctx)
	}
}

func (s *Service) resolveBrandName(ctx context.Context, w *Wizard) (string, error) {
	if w.BrandID == nil {
		return AllBrandsLabel, nil
	}

	b, err := s.brands.GetByID(ctx, *w.BrandID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return AllBrandsLabel, nil
		}
		return "", err
	}

	return b.Name, nil
}

// unitNames batches the unit lookup for all products in one query.
func (s *Service) unitNames(ctx context.Context, products []*product.Product) (map[id.ID]string, error) {
	seen := make(map[id.ID]struct{})
	ids := make([]id.ID, 0, len(products))
	for _, p := range products {
		if p.BaseUnitID == nil {
			continue
		}
		if _, ok := seen[*p.BaseUnitID]; ok {
			continue
		}
		seen[*p.BaseUnitID] = struct{}{}
		ids = append(ids, *p.BaseUnitID)
	}

	if len(ids) == 0 {
		return map[id.ID]string{}, nil
	}

	return s.units.NamesByIDs(ctx, ids)
}

func (s *Service) reportDefaults(ctx context.Context) ReportDefaults {
	wh, err := s.warehouses.GetDefault(ctx)
	if err != nil || wh == nil {
		return ReportDefaults{}
	}

	warehouseID := wh.ID
	return ReportDefaults{WarehouseID: &warehouseID}
}
