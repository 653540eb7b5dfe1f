// Package brand provides the Brand catalog.
// Brands group products for selection on the stock card report.
package brand

import (
	"context"

	"stockcard/internal/core/entity"
)

// Brand represents a product brand.
type Brand struct {
	entity.Catalog

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewBrand creates a new Brand with required fields.
func NewBrand(code, name string) *Brand {
	return &Brand{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (b *Brand) Validate(ctx context.Context) error {
	return b.Catalog.Validate(ctx)
}
