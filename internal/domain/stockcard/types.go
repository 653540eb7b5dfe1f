// Package stockcard builds the per-product stock card report: opening
// balance, chronological movement lines with a running balance, and
// closing balance over a date range and a warehouse scope.
package stockcard

import (
	"sort"
	"time"

	"stockcard/internal/core/id"
)

// DocType classifies a ledger line by its originating document.
type DocType string

const (
	DocTypeReceipt    DocType = "Receipt"
	DocTypeDelivery   DocType = "Delivery"
	DocTypeInternal   DocType = "Internal Transfer"
	DocTypeAdjustment DocType = "Adjustment"
	DocTypeMovement   DocType = "Movement"
)

// DateDisplayLayout is the report date format (DD/MM/YYYY).
const DateDisplayLayout = "02/01/2006"

// AllBrandsLabel is shown when the report is not narrowed to a brand.
const AllBrandsLabel = "All Brands"

// FormatReportDate renders a date for report headers.
func FormatReportDate(t time.Time) string {
	return t.Format(DateDisplayLayout)
}

// LocationSet is the resolved report scope: a flat, duplicate-free set
// of location IDs (the selected root plus all its descendants).
type LocationSet map[id.ID]struct{}

// NewLocationSet builds a set from location IDs, dropping duplicates.
func NewLocationSet(ids ...id.ID) LocationSet {
	set := make(LocationSet, len(ids))
	for _, locID := range ids {
		set[locID] = struct{}{}
	}
	return set
}

// Contains reports whether the location is inside the scope.
func (s LocationSet) Contains(locID id.ID) bool {
	_, ok := s[locID]
	return ok
}

// IDs returns the member IDs in deterministic (bytewise) order.
func (s LocationSet) IDs() []id.ID {
	ids := make([]id.ID, 0, len(s))
	for locID := range s {
		ids = append(ids, locID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return id.Compare(ids[i], ids[j]) < 0
	})
	return ids
}

// Len returns the number of locations in the scope.
func (s LocationSet) Len() int { return len(s) }

// LedgerLine is one movement row of a product's stock card.
// Quantities are float64 at the report surface; the underlying
// arithmetic is exact fixed-point.
type LedgerLine struct {
	Date        time.Time `json:"date"`
	Reference   string    `json:"reference"`
	DocType     DocType   `json:"docType"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Lot         string    `json:"lot,omitempty"`
	QtyIn       float64   `json:"qtyIn"`
	QtyOut      float64   `json:"qtyOut"`
	Balance     float64   `json:"balance"`
}

// ProductLedger is the stock card of one product.
type ProductLedger struct {
	ProductID      id.ID        `json:"productId"`
	ProductName    string       `json:"productName"`
	ProductCode    string       `json:"productCode,omitempty"`
	Unit           string       `json:"unit,omitempty"`
	OpeningBalance float64      `json:"openingBalance"`
	ClosingBalance float64      `json:"closingBalance"`
	Lines          []LedgerLine `json:"lines"`
}

// Report is the generated stock card document model. Rendering
// (HTML/PDF) is the caller's concern.
type Report struct {
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`

	// DD/MM/YYYY header dates
	DateFromDisplay string `json:"dateFromDisplay"`
	DateToDisplay   string `json:"dateToDisplay"`

	WarehouseName string `json:"warehouseName,omitempty"`
	LocationName  string `json:"locationName,omitempty"`
	BrandName     string `json:"brandName"`

	// UseMoveLines echoes the requested granularity
	UseMoveLines bool `json:"useMoveLines"`

	Products []ProductLedger `json:"products"`

	GeneratedAt time.Time `json:"generatedAt"`
}
