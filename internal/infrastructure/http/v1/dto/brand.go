package dto

import (
	"stockcard/internal/domain/catalogs/brand"
)

// --- Request DTOs ---

// CreateBrandRequest is the request body for creating a brand.
type CreateBrandRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	IsFolder    bool    `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBrandRequest) ToEntity() *brand.Brand {
	b := brand.NewBrand(r.Code, r.Name)
	b.Description = r.Description
	b.ParentID = r.ParentID
	b.IsFolder = r.IsFolder
	return b
}

// UpdateBrandRequest is the request body for updating a brand.
type UpdateBrandRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	IsFolder    bool    `json:"isFolder"`
	Version     int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBrandRequest) ApplyTo(b *brand.Brand) {
	b.Code = r.Code
	b.Name = r.Name
	b.Description = r.Description
	b.ParentID = r.ParentID
	b.IsFolder = r.IsFolder
	b.Version = r.Version
}

// --- Response DTOs ---

// BrandResponse is the response body for a brand.
type BrandResponse struct {
	CatalogResponse
	Description *string `json:"description,omitempty"`
}

// FromBrand converts domain entity to response DTO.
func FromBrand(b *brand.Brand) *BrandResponse {
	return &BrandResponse{
		CatalogResponse: FromCatalog(b.Catalog),
		Description:     b.Description,
	}
}
