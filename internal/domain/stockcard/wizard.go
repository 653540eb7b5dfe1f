package stockcard

import (
	"context"
	"time"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
)

// Wizard is a persisted report request. A wizard captures everything
// needed to (re)generate one stock card document.
type Wizard struct {
	ID id.ID `db:"id" json:"id"`

	// DateFrom / DateTo bound the closed reporting window
	DateFrom time.Time `db:"date_from" json:"dateFrom"`
	DateTo   time.Time `db:"date_to" json:"dateTo"`

	// WarehouseID selects the warehouse whose root location anchors the
	// scope; LocationID overrides with an explicit location subtree
	WarehouseID *id.ID `db:"warehouse_id" json:"warehouseId,omitempty"`
	LocationID  *id.ID `db:"location_id" json:"locationId,omitempty"`

	// BrandID narrows product resolution when ProductIDs is empty
	BrandID *id.ID `db:"brand_id" json:"brandId,omitempty"`

	// ProductIDs is the explicit product selection; empty means resolve
	// by brand, or all active products when brand is unset too
	ProductIDs []id.ID `db:"-" json:"productIds,omitempty"`

	// UseMoveLines selects the fine-grained ledger source (with lots)
	UseMoveLines bool `db:"use_move_lines" json:"useMoveLines"`

	// LineFilter is an optional CEL expression applied to output lines
	LineFilter string `db:"line_filter" json:"lineFilter,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks the wizard at acceptance time, before any data is
// touched.
func (w *Wizard) Validate(ctx context.Context) error {
	if w.DateFrom.IsZero() || w.DateTo.IsZero() {
		return apperror.NewInvalidDateRange(
			FormatReportDate(w.DateFrom), FormatReportDate(w.DateTo))
	}

	if w.DateFrom.After(w.DateTo) {
		return apperror.NewInvalidDateRange(
			FormatReportDate(w.DateFrom), FormatReportDate(w.DateTo))
	}

	if w.WarehouseID == nil && w.LocationID == nil {
		return apperror.NewInvalidWarehouse("warehouse or location is required")
	}

	return nil
}

// ReportDefaults supplies fallbacks applied to a wizard before
// validation. Replaces the ambient company context of classic ERPs
// with an explicit dependency.
type ReportDefaults struct {
	// WarehouseID is used when the wizard names neither a warehouse nor
	// a location
	WarehouseID *id.ID
}

// ApplyDefaults fills unset wizard fields from the defaults.
func (w *Wizard) ApplyDefaults(d ReportDefaults) {
	if w.WarehouseID == nil && w.LocationID == nil && d.WarehouseID != nil {
		warehouseID := *d.WarehouseID
		w.WarehouseID = &warehouseID
	}
}

// Store persists wizards.
type Store interface {
	// Create saves a new wizard.
	Create(ctx context.Context, w *Wizard) error

	// GetByID loads a wizard; a missing id yields a not-found error.
	GetByID(ctx context.Context, wizardID id.ID) (*Wizard, error)
}
