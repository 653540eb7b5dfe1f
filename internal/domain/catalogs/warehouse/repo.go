package warehouse

import (
	"context"

	"stockcard/internal/domain"
)

// Repository defines the interface for Warehouse persistence.
type Repository interface {
	domain.CatalogRepository[*Warehouse]

	// GetDefault retrieves the default warehouse.
	// Returns a not-found error when none is marked as default.
	GetDefault(ctx context.Context) (*Warehouse, error)

	// ClearDefault clears the default flag on all warehouses.
	ClearDefault(ctx context.Context) error
}
