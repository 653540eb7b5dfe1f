// Package location provides the Location catalog.
// Locations form a tree: a warehouse's stock location with shelves and
// zones nested under it, plus virtual counterpart locations (supplier,
// customer, inventory loss) that moves cross when goods enter or leave.
package location

import (
	"context"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/entity"
	"stockcard/internal/core/id"
)

// Usage defines what a location is used for.
type Usage string

const (
	UsageInternal  Usage = "internal"  // physical storage inside a warehouse
	UsageSupplier  Usage = "supplier"  // virtual: goods arrive from here
	UsageCustomer  Usage = "customer"  // virtual: goods leave to here
	UsageInventory Usage = "inventory" // virtual: adjustment counterpart
	UsageTransit   Usage = "transit"   // goods in transit between warehouses
	UsageView      Usage = "view"      // grouping node, never holds stock
)

// Location represents a node of the storage tree.
type Location struct {
	entity.Catalog

	// Usage defines the location role
	Usage Usage `db:"usage" json:"usage"`

	// CompleteName is the slash-joined path from root (e.g., "WH/Stock/Shelf 1")
	CompleteName string `db:"complete_name" json:"completeName"`

	// WarehouseID is the owning warehouse (nil for virtual locations)
	WarehouseID *id.ID `db:"warehouse_id" json:"warehouseId,omitempty"`
}

// NewLocation creates a new Location with required fields.
func NewLocation(code, name string, usage Usage) *Location {
	return &Location{
		Catalog: entity.NewCatalog(code, name),
		Usage:   usage,
	}
}

// Validate implements entity.Validatable interface.
func (l *Location) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidUsage(l.Usage) {
		return apperror.NewValidation("invalid location usage").
			WithDetail("field", "usage").
			WithDetail("value", string(l.Usage))
	}

	return nil
}

// HoldsStock returns true if the location can physically hold goods.
func (l *Location) HoldsStock() bool {
	return l.Usage == UsageInternal || l.Usage == UsageTransit
}

// DisplayName returns the complete path when known, the bare name otherwise.
func (l *Location) DisplayName() string {
	if l.CompleteName != "" {
		return l.CompleteName
	}
	return l.Name
}

func isValidUsage(u Usage) bool {
	switch u {
	case UsageInternal, UsageSupplier, UsageCustomer, UsageInventory, UsageTransit, UsageView:
		return true
	}
	return false
}
