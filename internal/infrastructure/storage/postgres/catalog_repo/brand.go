package catalog_repo

import (
	"stockcard/internal/domain/catalogs/brand"
	"stockcard/internal/infrastructure/storage/postgres"
)

const brandTable = "cat_brands"

// BrandRepo implements brand.Repository.
type BrandRepo struct {
	*BaseCatalogRepo[*brand.Brand]
}

// NewBrandRepo creates a new brand repository.
func NewBrandRepo(txManager *postgres.TxManager) *BrandRepo {
	return &BrandRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*brand.Brand](
			txManager,
			brandTable,
			postgres.ExtractDBColumns[brand.Brand](),
			func() *brand.Brand { return &brand.Brand{} },
		),
	}
}
