package catalog_repo

import (
	"context"
	"fmt"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain/catalogs/location"
	"stockcard/internal/infrastructure/storage/postgres"
)

const locationTable = "cat_locations"

// LocationRepo implements location.Repository.
type LocationRepo struct {
	*BaseCatalogRepo[*location.Location]
}

// NewLocationRepo creates a new location repository.
func NewLocationRepo(txManager *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*location.Location](
			txManager,
			locationTable,
			postgres.ExtractDBColumns[location.Location](),
			func() *location.Location { return &location.Location{} },
		),
	}
}

// DescendantIDs returns the IDs of root and all its transitive
// children in one recursive CTE. A missing root is reported as
// not-found, never as an empty result.
func (r *LocationRepo) DescendantIDs(ctx context.Context, root id.ID) ([]id.ID, error) {
	cteSQL := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id
			FROM %s
			WHERE id = $1

			UNION ALL

			SELECT c.id
			FROM %s c
			INNER JOIN subtree s ON c.parent_id = s.id
			WHERE c.deletion_mark = false
		)
		SELECT id FROM subtree
	`, locationTable, locationTable)

	rows, err := r.Querier(ctx).Query(ctx, cteSQL, root)
	if err != nil {
		return nil, fmt.Errorf("descendant ids: %w", err)
	}
	defer rows.Close()

	var ids []id.ID
	for rows.Next() {
		var locID id.ID
		if err := rows.Scan(&locID); err != nil {
			return nil, fmt.Errorf("scan location id: %w", err)
		}
		ids = append(ids, locID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("descendant ids: %w", err)
	}

	if len(ids) == 0 {
		return nil, apperror.NewNotFound("location", root.String())
	}

	return ids, nil
}
