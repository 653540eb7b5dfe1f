package unit

import (
	"context"

	"stockcard/internal/core/id"
	"stockcard/internal/domain"
)

// Repository defines the interface for Unit persistence.
type Repository interface {
	domain.CatalogRepository[*Unit]

	// NamesByIDs returns unit display names keyed by ID in one query.
	NamesByIDs(ctx context.Context, ids []id.ID) (map[id.ID]string, error)
}
