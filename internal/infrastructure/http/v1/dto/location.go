package dto

import (
	"stockcard/internal/domain/catalogs/location"
)

// --- Request DTOs ---

// CreateLocationRequest is the request body for creating a location.
type CreateLocationRequest struct {
	Code        string         `json:"code"`
	Name        string         `json:"name" binding:"required"`
	Usage       location.Usage `json:"usage" binding:"required"`
	WarehouseID *string        `json:"warehouseId" binding:"omitempty,uuid"`
	ParentID    *string        `json:"parentId"`
	IsFolder    bool           `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLocationRequest) ToEntity() *location.Location {
	l := location.NewLocation(r.Code, r.Name, r.Usage)
	l.WarehouseID = parseIDPtr(r.WarehouseID)
	l.ParentID = r.ParentID
	l.IsFolder = r.IsFolder
	return l
}

// UpdateLocationRequest is the request body for updating a location.
type UpdateLocationRequest struct {
	Code        string         `json:"code"`
	Name        string         `json:"name" binding:"required"`
	Usage       location.Usage `json:"usage" binding:"required"`
	WarehouseID *string        `json:"warehouseId" binding:"omitempty,uuid"`
	ParentID    *string        `json:"parentId"`
	IsFolder    bool           `json:"isFolder"`
	Version     int            `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateLocationRequest) ApplyTo(l *location.Location) {
	l.Code = r.Code
	l.Name = r.Name
	l.Usage = r.Usage
	l.WarehouseID = parseIDPtr(r.WarehouseID)
	l.ParentID = r.ParentID
	l.IsFolder = r.IsFolder
	l.Version = r.Version
}

// --- Response DTOs ---

// LocationResponse is the response body for a location.
type LocationResponse struct {
	CatalogResponse
	Usage        location.Usage `json:"usage"`
	CompleteName string         `json:"completeName,omitempty"`
	WarehouseID  *string        `json:"warehouseId,omitempty"`
}

// FromLocation converts domain entity to response DTO.
func FromLocation(l *location.Location) *LocationResponse {
	return &LocationResponse{
		CatalogResponse: FromCatalog(l.Catalog),
		Usage:           l.Usage,
		CompleteName:    l.CompleteName,
		WarehouseID:     idPtrString(l.WarehouseID),
	}
}
