package location

import (
	"context"

	"stockcard/internal/core/id"
	"stockcard/internal/domain"
)

// Repository defines the interface for Location persistence.
type Repository interface {
	domain.CatalogRepository[*Location]

	// DescendantIDs returns the IDs of root and all its transitive children.
	// Returns a not-found error when root does not exist.
	DescendantIDs(ctx context.Context, root id.ID) ([]id.ID, error)
}
