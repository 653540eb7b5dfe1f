package stockcard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain/catalogs/brand"
	"stockcard/internal/domain/catalogs/location"
	"stockcard/internal/domain/catalogs/product"
	"stockcard/internal/domain/catalogs/unit"
	"stockcard/internal/domain/catalogs/warehouse"
	"stockcard/internal/domain/stock"
)

type stubWizardStore struct {
	byID    map[id.ID]*Wizard
	created []*Wizard
}

func newStubWizardStore() *stubWizardStore {
	return &stubWizardStore{byID: make(map[id.ID]*Wizard)}
}

func (s *stubWizardStore) Create(ctx context.Context, w *Wizard) error {
	s.byID[w.ID] = w
	s.created = append(s.created, w)
	return nil
}

func (s *stubWizardStore) GetByID(ctx context.Context, wizardID id.ID) (*Wizard, error) {
	w, ok := s.byID[wizardID]
	if !ok {
		return nil, apperror.NewNotFound("wizard", wizardID)
	}
	return w, nil
}

type stubProductRepo struct {
	product.Repository
	products []*product.Product
}

func (r *stubProductRepo) ListByIDs(ctx context.Context, ids []id.ID) ([]*product.Product, error) {
	out := make([]*product.Product, 0)
	for _, p := range r.products {
		for _, want := range ids {
			if p.ID == want {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListByBrand(ctx context.Context, brandID id.ID) ([]*product.Product, error) {
	out := make([]*product.Product, 0)
	for _, p := range r.products {
		if p.BrandID != nil && *p.BrandID == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListActive(ctx context.Context) ([]*product.Product, error) {
	return r.products, nil
}

type stubBrandRepo struct {
	brand.Repository
	byID map[id.ID]*brand.Brand
}

func (r *stubBrandRepo) GetByID(ctx context.Context, brandID id.ID) (*brand.Brand, error) {
	b, ok := r.byID[brandID]
	if !ok {
		return nil, apperror.NewNotFound("brand", brandID)
	}
	return b, nil
}

type stubUnitRepo struct {
	unit.Repository
	names map[id.ID]string
}

func (r *stubUnitRepo) NamesByIDs(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	out := make(map[id.ID]string, len(ids))
	for _, unitID := range ids {
		if name, ok := r.names[unitID]; ok {
			out[unitID] = name
		}
	}
	return out, nil
}

type stubWarehouseRepo struct {
	warehouse.Repository
	byID map[id.ID]*warehouse.Warehouse
	def  *warehouse.Warehouse
}

func (r *stubWarehouseRepo) GetByID(ctx context.Context, whID id.ID) (*warehouse.Warehouse, error) {
	wh, ok := r.byID[whID]
	if !ok {
		return nil, apperror.NewNotFound("warehouse", whID)
	}
	return wh, nil
}

func (r *stubWarehouseRepo) GetDefault(ctx context.Context) (*warehouse.Warehouse, error) {
	if r.def == nil {
		return nil, apperror.NewNotFound("warehouse", "default")
	}
	return r.def, nil
}

type stubArchive struct {
	saved map[id.ID]*Report
}

func (a *stubArchive) SaveSnapshot(ctx context.Context, wizardID id.ID, report *Report) error {
	if a.saved == nil {
		a.saved = make(map[id.ID]*Report)
	}
	a.saved[wizardID] = report
	return nil
}

func (a *stubArchive) GetSnapshot(ctx context.Context, wizardID id.ID) (*Report, error) {
	report, ok := a.saved[wizardID]
	if !ok {
		return nil, apperror.NewNotFound("report snapshot", wizardID)
	}
	return report, nil
}

// fixture wires a service over one warehouse with a two-level location
// tree, one brand and one lot-tracked product.
type fixture struct {
	service   *Service
	wizards   *stubWizardStore
	stockRepo *stubStockRepo
	archive   *stubArchive

	warehouseID id.ID
	rootLoc     id.ID
	shelfLoc    id.ID
	supplierLoc id.ID
	brandID     id.ID
	productID   id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		wizards:     newStubWizardStore(),
		stockRepo:   &stubStockRepo{},
		archive:     &stubArchive{},
		warehouseID: id.New(),
		rootLoc:     id.New(),
		shelfLoc:    id.New(),
		supplierLoc: id.New(),
		brandID:     id.New(),
		productID:   id.New(),
	}

	wh := warehouse.NewWarehouse("WH-01", "Main Warehouse")
	wh.ID = f.warehouseID
	wh.RootLocationID = &f.rootLoc

	rootLocation := location.NewLocation("LOC-01", "Stock", location.UsageInternal)
	rootLocation.ID = f.rootLoc
	rootLocation.CompleteName = "Main Warehouse/Stock"

	unitID := id.New()
	b := brand.NewBrand("BR-01", "Acme")
	b.ID = f.brandID

	p := product.NewProduct("PR-01", "Widget", product.TypeGoods)
	p.ID = f.productID
	p.BaseUnitID = &unitID
	p.BrandID = &f.brandID

	f.service = NewService(Config{
		Wizards:  f.wizards,
		Products: &stubProductRepo{products: []*product.Product{p}},
		Brands:   &stubBrandRepo{byID: map[id.ID]*brand.Brand{f.brandID: b}},
		Units:    &stubUnitRepo{names: map[id.ID]string{unitID: "pcs"}},
		Locations: &stubLocationRepo{
			descendants: map[id.ID][]id.ID{
				f.rootLoc:  {f.rootLoc, f.shelfLoc},
				f.shelfLoc: {f.shelfLoc},
			},
			byID: map[id.ID]*location.Location{f.rootLoc: rootLocation},
		},
		Warehouses: &stubWarehouseRepo{
			byID: map[id.ID]*warehouse.Warehouse{f.warehouseID: wh},
			def:  wh,
		},
		StockRepo: f.stockRepo,
		Archive:   f.archive,
	})

	return f
}

func (f *fixture) wizard() *Wizard {
	warehouseID := f.warehouseID
	return &Wizard{
		DateFrom:    day(1),
		DateTo:      day(31),
		WarehouseID: &warehouseID,
	}
}

func TestGenerateFromRequestNilPayload(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GenerateFromRequest(context.Background(), nil)
	assert.True(t, apperror.IsCode(err, apperror.CodeMissingReportContext))
}

func TestGenerateWizardNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Generate(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeWizardNotFound))
	assert.Equal(t, 404, apperror.GetHTTPStatus(err))
}

func TestCreateWizardInvalidDateRange(t *testing.T) {
	f := newFixture(t)

	w := f.wizard()
	w.DateFrom, w.DateTo = w.DateTo, w.DateFrom

	err := f.service.CreateWizard(context.Background(), w)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidDateRange))
	assert.Empty(t, f.wizards.created, "rejected wizard must not be stored")
}

func TestCreateWizardInvalidLineFilter(t *testing.T) {
	f := newFixture(t)

	w := f.wizard()
	w.LineFilter = "qty_in >"

	err := f.service.CreateWizard(context.Background(), w)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, f.wizards.created)
}

func TestCreateWizardAppliesDefaultWarehouse(t *testing.T) {
	f := newFixture(t)

	w := &Wizard{DateFrom: day(1), DateTo: day(31)}
	require.NoError(t, f.service.CreateWizard(context.Background(), w))
	if assert.NotNil(t, w.WarehouseID) {
		assert.Equal(t, f.warehouseID, *w.WarehouseID)
	}
}

func TestGenerateNoProductsMatched(t *testing.T) {
	f := newFixture(t)

	w := f.wizard()
	emptyBrand := id.New()
	w.BrandID = &emptyBrand
	require.NoError(t, f.service.CreateWizard(context.Background(), w))

	_, err := f.service.Generate(context.Background(), w.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNoProductsMatched))
	assert.Equal(t, 422, apperror.GetHTTPStatus(err))
}

func TestGenerateInvalidWarehouse(t *testing.T) {
	f := newFixture(t)

	unknown := id.New()
	w := &Wizard{DateFrom: day(1), DateTo: day(31), WarehouseID: &unknown}
	w.ID = id.New()
	f.wizards.byID[w.ID] = w

	_, err := f.service.Generate(context.Background(), w.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidWarehouse))
}

func TestGenerateFullReport(t *testing.T) {
	f := newFixture(t)

	transferID := id.New()
	external := f.supplierLoc

	receipt := doneMove(f.productID, external, f.rootLoc, 10, day(2))
	receipt.DocumentRef = stock.DocumentRef{TransferID: &transferID, TransferType: stock.OpIncoming, TransferNumber: "TR-2026-00001"}
	receipt.SourceLocationName = "Suppliers"
	receipt.DestLocationName = "Main Warehouse/Stock"

	delivery := doneMove(f.productID, f.shelfLoc, external, 3, day(5))
	delivery.DocumentRef = stock.DocumentRef{TransferID: &transferID, TransferType: stock.OpOutgoing, TransferNumber: "TR-2026-00002"}

	f.stockRepo.moves = []*stock.Move{receipt, delivery}

	report, err := f.service.GenerateFromRequest(context.Background(), f.wizard())
	require.NoError(t, err)

	assert.Equal(t, "01/03/2026", report.DateFromDisplay)
	assert.Equal(t, "31/03/2026", report.DateToDisplay)
	assert.Equal(t, "Main Warehouse", report.WarehouseName)
	assert.Equal(t, AllBrandsLabel, report.BrandName)
	assert.False(t, report.UseMoveLines)

	require.Len(t, report.Products, 1)
	ledger := report.Products[0]
	assert.Equal(t, f.productID, ledger.ProductID)
	assert.Equal(t, "Widget", ledger.ProductName)
	assert.Equal(t, "PR-01", ledger.ProductCode)
	assert.Equal(t, "pcs", ledger.Unit)
	assert.Equal(t, 0.0, ledger.OpeningBalance)
	assert.Equal(t, 7.0, ledger.ClosingBalance)

	require.Len(t, ledger.Lines, 2)
	assert.Equal(t, DocTypeReceipt, ledger.Lines[0].DocType)
	assert.Equal(t, "TR-2026-00001", ledger.Lines[0].Reference)
	assert.Equal(t, "Main Warehouse/Stock", ledger.Lines[0].Destination)
	assert.Equal(t, DocTypeDelivery, ledger.Lines[1].DocType)
	assert.Equal(t, 7.0, ledger.Lines[1].Balance)
}

func TestGenerateWithExplicitLocation(t *testing.T) {
	f := newFixture(t)

	w := f.wizard()
	w.WarehouseID = nil
	rootLoc := f.rootLoc
	w.LocationID = &rootLoc

	report, err := f.service.GenerateFromRequest(context.Background(), w)
	require.NoError(t, err)
	assert.Empty(t, report.WarehouseName)
	assert.Equal(t, "Main Warehouse/Stock", report.LocationName)
}

func TestGenerateBrandNameOnReport(t *testing.T) {
	f := newFixture(t)

	w := f.wizard()
	brandID := f.brandID
	w.BrandID = &brandID

	report, err := f.service.GenerateFromRequest(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, "Acme", report.BrandName)
}

func TestGenerateMoveLineGranularity(t *testing.T) {
	f := newFixture(t)

	f.stockRepo.moveLines = []*stock.MoveLine{{
		ID:               id.New(),
		MoveID:           id.New(),
		ProductID:        f.productID,
		SourceLocationID: f.supplierLoc,
		DestLocationID:   f.rootLoc,
		QtyDone:          qty(5),
		Date:             day(4),
		State:            stock.StateDone,
		LotName:          "LOT-7",
	}}

	w := f.wizard()
	w.UseMoveLines = true

	report, err := f.service.GenerateFromRequest(context.Background(), w)
	require.NoError(t, err)
	assert.True(t, report.UseMoveLines)

	require.Len(t, report.Products, 1)
	require.Len(t, report.Products[0].Lines, 1)
	assert.Equal(t, "LOT-7", report.Products[0].Lines[0].Lot)
}

func TestGenerateLineFilterKeepsBalances(t *testing.T) {
	f := newFixture(t)

	external := f.supplierLoc
	f.stockRepo.moves = []*stock.Move{
		doneMove(f.productID, external, f.rootLoc, 10, day(2)),
		doneMove(f.productID, f.rootLoc, external, 3, day(5)),
	}

	w := f.wizard()
	w.LineFilter = "qty_out > 0.0"

	report, err := f.service.GenerateFromRequest(context.Background(), w)
	require.NoError(t, err)

	require.Len(t, report.Products, 1)
	ledger := report.Products[0]
	// Only the outgoing line survives the filter, balances do not move.
	require.Len(t, ledger.Lines, 1)
	assert.Equal(t, 3.0, ledger.Lines[0].QtyOut)
	assert.Equal(t, 0.0, ledger.OpeningBalance)
	assert.Equal(t, 7.0, ledger.ClosingBalance)
	assert.Equal(t, 7.0, ledger.Lines[0].Balance)
}

func TestGenerateArchivesSnapshot(t *testing.T) {
	f := newFixture(t)

	w := f.wizard()
	report, err := f.service.GenerateFromRequest(context.Background(), w)
	require.NoError(t, err)

	stored, err := f.service.Snapshot(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, report.DateFromDisplay, stored.DateFromDisplay)
	assert.Len(t, f.archive.saved, 1)
}
