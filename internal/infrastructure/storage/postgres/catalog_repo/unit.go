package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/catalogs/unit"
	"stockcard/internal/infrastructure/storage/postgres"
)

const unitTable = "cat_units"

// UnitRepo implements unit.Repository.
type UnitRepo struct {
	*BaseCatalogRepo[*unit.Unit]
}

// NewUnitRepo creates a new unit repository.
func NewUnitRepo(txManager *postgres.TxManager) *UnitRepo {
	return &UnitRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*unit.Unit](
			txManager,
			unitTable,
			postgres.ExtractDBColumns[unit.Unit](),
			func() *unit.Unit { return &unit.Unit{} },
		),
	}
}

// NamesByIDs returns unit display names keyed by ID in one query.
func (r *UnitRepo) NamesByIDs(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	names := make(map[id.ID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	q := r.Builder().
		Select("id", "name").
		From(unitTable).
		Where(squirrel.Eq{"id": ids})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("unit names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var unitID id.ID
		var name string
		if err := rows.Scan(&unitID, &name); err != nil {
			return nil, fmt.Errorf("scan unit name: %w", err)
		}
		names[unitID] = name
	}

	return names, rows.Err()
}
