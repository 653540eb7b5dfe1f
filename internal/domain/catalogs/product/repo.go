package product

import (
	"context"

	"stockcard/internal/core/id"
	"stockcard/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListByIDs retrieves products by explicit IDs, ordered by name.
	ListByIDs(ctx context.Context, ids []id.ID) ([]*Product, error)

	// ListByBrand retrieves all active products of a brand, ordered by name.
	ListByBrand(ctx context.Context, brandID id.ID) ([]*Product, error)

	// ListActive retrieves all active (not deleted, not folder) products, ordered by name.
	ListActive(ctx context.Context) ([]*Product, error)
}
