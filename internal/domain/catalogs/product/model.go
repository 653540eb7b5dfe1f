// Package product provides the Product catalog.
// Products are the subject of stock movements and the stock card report.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/entity"
	"stockcard/internal/core/id"
)

// ProductType defines the type of item.
type ProductType string

const (
	TypeGoods    ProductType = "goods"
	TypeMaterial ProductType = "material"
	TypeProduct  ProductType = "product" // manufactured output
)

// Product represents a stockable item.
type Product struct {
	entity.Catalog

	// Type defines item category
	Type ProductType `db:"type" json:"type"`

	// Article is the item article/SKU, shown as the product code on reports
	Article *string `db:"article" json:"article,omitempty"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// BaseUnitID is the reference to base unit of measure
	BaseUnitID *id.ID `db:"base_unit_id" json:"baseUnitId,omitempty"`

	// BrandID groups products for report selection
	BrandID *id.ID `db:"brand_id" json:"brandId,omitempty"`

	// Weight in kg (for logistics)
	Weight decimal.Decimal `db:"weight" json:"weight"`

	// Volume in cubic meters (for logistics)
	Volume decimal.Decimal `db:"volume" json:"volume"`

	// TrackLots indicates if item is tracked by lot/batch numbers
	TrackLots bool `db:"track_lots" json:"trackLots"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, itemType ProductType) *Product {
	return &Product{
		Catalog: entity.NewCatalog(code, name),
		Type:    itemType,
		Weight:  decimal.Zero,
		Volume:  decimal.Zero,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidProductType(p.Type) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.Weight.IsNegative() {
		return apperror.NewValidation("weight cannot be negative").
			WithDetail("field", "weight")
	}

	if p.Volume.IsNegative() {
		return apperror.NewValidation("volume cannot be negative").
			WithDetail("field", "volume")
	}

	return nil
}

// DisplayCode returns the article when set, otherwise the catalog code.
func (p *Product) DisplayCode() string {
	if p.Article != nil && *p.Article != "" {
		return *p.Article
	}
	return p.Code
}

func isValidProductType(t ProductType) bool {
	switch t {
	case TypeGoods, TypeMaterial, TypeProduct:
		return true
	}
	return false
}
