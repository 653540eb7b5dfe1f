package dto

import (
	"stockcard/internal/domain/catalogs/warehouse"
)

// --- Request DTOs ---

// CreateWarehouseRequest is the request body for creating a warehouse.
type CreateWarehouseRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	RootLocationID *string `json:"rootLocationId" binding:"omitempty,uuid"`
	Address        *string `json:"address"`
	IsActive       *bool   `json:"isActive"`
	IsDefault      bool    `json:"isDefault"`
	Description    *string `json:"description"`
	ParentID       *string `json:"parentId"`
	IsFolder       bool    `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateWarehouseRequest) ToEntity() *warehouse.Warehouse {
	w := warehouse.NewWarehouse(r.Code, r.Name)
	w.RootLocationID = parseIDPtr(r.RootLocationID)
	w.Address = r.Address
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
	w.IsDefault = r.IsDefault
	w.Description = r.Description
	w.ParentID = r.ParentID
	w.IsFolder = r.IsFolder
	return w
}

// UpdateWarehouseRequest is the request body for updating a warehouse.
type UpdateWarehouseRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	RootLocationID *string `json:"rootLocationId" binding:"omitempty,uuid"`
	Address        *string `json:"address"`
	IsActive       bool    `json:"isActive"`
	IsDefault      bool    `json:"isDefault"`
	Description    *string `json:"description"`
	ParentID       *string `json:"parentId"`
	IsFolder       bool    `json:"isFolder"`
	Version        int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateWarehouseRequest) ApplyTo(w *warehouse.Warehouse) {
	w.Code = r.Code
	w.Name = r.Name
	w.RootLocationID = parseIDPtr(r.RootLocationID)
	w.Address = r.Address
	w.IsActive = r.IsActive
	w.IsDefault = r.IsDefault
	w.Description = r.Description
	w.ParentID = r.ParentID
	w.IsFolder = r.IsFolder
	w.Version = r.Version
}

// --- Response DTOs ---

// WarehouseResponse is the response body for a warehouse.
type WarehouseResponse struct {
	CatalogResponse
	RootLocationID *string `json:"rootLocationId,omitempty"`
	Address        *string `json:"address,omitempty"`
	IsActive       bool    `json:"isActive"`
	IsDefault      bool    `json:"isDefault"`
	Description    *string `json:"description,omitempty"`
}

// FromWarehouse converts domain entity to response DTO.
func FromWarehouse(w *warehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		CatalogResponse: FromCatalog(w.Catalog),
		RootLocationID:  idPtrString(w.RootLocationID),
		Address:         w.Address,
		IsActive:        w.IsActive,
		IsDefault:       w.IsDefault,
		Description:     w.Description,
	}
}
