package dto

import (
	"github.com/shopspring/decimal"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Type        product.ProductType `json:"type" binding:"required"`
	Article     *string             `json:"article"`
	Barcode     *string             `json:"barcode"`
	BaseUnitID  *string             `json:"baseUnitId" binding:"omitempty,uuid"`
	BrandID     *string             `json:"brandId" binding:"omitempty,uuid"`
	Weight      decimal.Decimal     `json:"weight"`
	Volume      decimal.Decimal     `json:"volume"`
	TrackLots   bool                `json:"trackLots"`
	Description *string             `json:"description"`
	ParentID    *string             `json:"parentId"`
	IsFolder    bool                `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Type)
	p.Article = r.Article
	p.Barcode = r.Barcode
	p.BaseUnitID = parseIDPtr(r.BaseUnitID)
	p.BrandID = parseIDPtr(r.BrandID)
	p.Weight = r.Weight
	p.Volume = r.Volume
	p.TrackLots = r.TrackLots
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Type        product.ProductType `json:"type" binding:"required"`
	Article     *string             `json:"article"`
	Barcode     *string             `json:"barcode"`
	BaseUnitID  *string             `json:"baseUnitId" binding:"omitempty,uuid"`
	BrandID     *string             `json:"brandId" binding:"omitempty,uuid"`
	Weight      decimal.Decimal     `json:"weight"`
	Volume      decimal.Decimal     `json:"volume"`
	TrackLots   bool                `json:"trackLots"`
	Description *string             `json:"description"`
	ParentID    *string             `json:"parentId"`
	IsFolder    bool                `json:"isFolder"`
	Version     int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Type = r.Type
	p.Article = r.Article
	p.Barcode = r.Barcode
	p.BaseUnitID = parseIDPtr(r.BaseUnitID)
	p.BrandID = parseIDPtr(r.BrandID)
	p.Weight = r.Weight
	p.Volume = r.Volume
	p.TrackLots = r.TrackLots
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	Type        product.ProductType `json:"type"`
	Article     *string             `json:"article,omitempty"`
	Barcode     *string             `json:"barcode,omitempty"`
	BaseUnitID  *string             `json:"baseUnitId,omitempty"`
	BrandID     *string             `json:"brandId,omitempty"`
	Weight      decimal.Decimal     `json:"weight"`
	Volume      decimal.Decimal     `json:"volume"`
	TrackLots   bool                `json:"trackLots"`
	Description *string             `json:"description,omitempty"`
}

// FromProduct converts domain entity to response DTO.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Type:            p.Type,
		Article:         p.Article,
		Barcode:         p.Barcode,
		BaseUnitID:      idPtrString(p.BaseUnitID),
		BrandID:         idPtrString(p.BrandID),
		Weight:          p.Weight,
		Volume:          p.Volume,
		TrackLots:       p.TrackLots,
		Description:     p.Description,
	}
}

// parseIDPtr parses an optional UUID string. Format is enforced by
// binding tags, so a malformed value maps to nil.
func parseIDPtr(s *string) *id.ID {
	if s == nil || *s == "" {
		return nil
	}
	parsed, err := id.Parse(*s)
	if err != nil {
		return nil
	}
	return &parsed
}

func deref(v *id.ID) id.ID {
	if v == nil {
		return id.Nil()
	}
	return *v
}

func idPtrString(v *id.ID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
