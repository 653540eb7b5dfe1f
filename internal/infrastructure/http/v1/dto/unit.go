package dto

import (
	"github.com/shopspring/decimal"

	"stockcard/internal/domain/catalogs/unit"
)

// --- Request DTOs ---

// CreateUnitRequest is the request body for creating a unit.
type CreateUnitRequest struct {
	Code             string           `json:"code"`
	Name             string           `json:"name" binding:"required"`
	Symbol           string           `json:"symbol" binding:"required"`
	Type             unit.UnitType    `json:"type" binding:"required"`
	BaseUnitID       *string          `json:"baseUnitId"`
	ConversionFactor *decimal.Decimal `json:"conversionFactor"`
	IsBase           *bool            `json:"isBase"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateUnitRequest) ToEntity() *unit.Unit {
	u := unit.NewUnit(r.Code, r.Name, r.Symbol, r.Type)
	u.BaseUnitID = r.BaseUnitID
	if r.ConversionFactor != nil {
		u.ConversionFactor = *r.ConversionFactor
	}
	if r.IsBase != nil {
		u.IsBase = *r.IsBase
	}
	return u
}

// UpdateUnitRequest is the request body for updating a unit.
type UpdateUnitRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name" binding:"required"`
	Symbol           string          `json:"symbol" binding:"required"`
	Type             unit.UnitType   `json:"type" binding:"required"`
	BaseUnitID       *string         `json:"baseUnitId"`
	ConversionFactor decimal.Decimal `json:"conversionFactor"`
	IsBase           bool            `json:"isBase"`
	Version          int             `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateUnitRequest) ApplyTo(u *unit.Unit) {
	u.Code = r.Code
	u.Name = r.Name
	u.Symbol = r.Symbol
	u.Type = r.Type
	u.BaseUnitID = r.BaseUnitID
	u.ConversionFactor = r.ConversionFactor
	u.IsBase = r.IsBase
	u.Version = r.Version
}

// --- Response DTOs ---

// UnitResponse is the response body for a unit.
type UnitResponse struct {
	CatalogResponse
	Symbol           string          `json:"symbol"`
	Type             unit.UnitType   `json:"type"`
	BaseUnitID       *string         `json:"baseUnitId,omitempty"`
	ConversionFactor decimal.Decimal `json:"conversionFactor"`
	IsBase           bool            `json:"isBase"`
}

// FromUnit converts domain entity to response DTO.
func FromUnit(u *unit.Unit) *UnitResponse {
	return &UnitResponse{
		CatalogResponse:  FromCatalog(u.Catalog),
		Symbol:           u.Symbol,
		Type:             u.Type,
		BaseUnitID:       u.BaseUnitID,
		ConversionFactor: u.ConversionFactor,
		IsBase:           u.IsBase,
	}
}
