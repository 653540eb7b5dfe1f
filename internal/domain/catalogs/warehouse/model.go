// Package warehouse provides the Warehouse catalog.
// A warehouse anchors the report scope: its root stock location plus all
// child locations form the set of "inside" endpoints for the ledger.
package warehouse

import (
	"context"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/entity"
	"stockcard/internal/core/id"
)

// Warehouse represents a storage site.
type Warehouse struct {
	entity.Catalog

	// RootLocationID is the warehouse's stock location; report scope
	// resolves to this location and all its descendants
	RootLocationID *id.ID `db:"root_location_id" json:"rootLocationId,omitempty"`

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`

	// IsActive indicates if warehouse is operational
	IsActive bool `db:"is_active" json:"isActive"`

	// IsDefault indicates if this is the default warehouse for reports
	IsDefault bool `db:"is_default" json:"isDefault"`

	// Description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewWarehouse creates a new Warehouse with required fields.
func NewWarehouse(code, name string) *Warehouse {
	return &Warehouse{
		Catalog:  entity.NewCatalog(code, name),
		IsActive: true,
	}
}

// Validate implements entity.Validatable interface.
func (w *Warehouse) Validate(ctx context.Context) error {
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Folders group warehouses and carry no stock location.
	if !w.IsFolder && w.RootLocationID != nil && id.IsNil(*w.RootLocationID) {
		return apperror.NewValidation("root location reference is empty").
			WithDetail("field", "rootLocationId")
	}

	return nil
}

// CanReport returns true if the warehouse can be the subject of a stock card.
func (w *Warehouse) CanReport() bool {
	return w.IsActive && !w.IsFolder && w.RootLocationID != nil
}
