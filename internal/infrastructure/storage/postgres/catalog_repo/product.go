package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/catalogs/product"
	"stockcard/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// ListByIDs retrieves products by explicit IDs, ordered by name.
func (r *ProductRepo) ListByIDs(ctx context.Context, ids []id.ID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.selectMany(ctx, q, "list by ids")
}

// ListByBrand retrieves all active products of a brand, ordered by name.
func (r *ProductRepo) ListByBrand(ctx context.Context, brandID id.ID) ([]*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"brand_id": brandID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"is_folder": false}).
		OrderBy("name ASC")

	return r.selectMany(ctx, q, "list by brand")
}

// ListActive retrieves all active products, ordered by name.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"is_folder": false}).
		OrderBy("name ASC")

	return r.selectMany(ctx, q, "list active")
}

func (r *ProductRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder, op string) ([]*product.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}
