package dto

import (
	"time"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/stockcard"
)

// --- Request DTOs ---

// CreateStockCardWizardRequest is the request body for a stock card
// report request. Dates are RFC 3339 timestamps; the window is closed
// on both ends.
type CreateStockCardWizardRequest struct {
	DateFrom time.Time `json:"dateFrom" binding:"required"`
	DateTo   time.Time `json:"dateTo" binding:"required"`

	// WarehouseID anchors the report scope; LocationID overrides it with
	// an explicit location subtree. When both are empty the default
	// warehouse is used.
	WarehouseID *string `json:"warehouseId" binding:"omitempty,uuid"`
	LocationID  *string `json:"locationId" binding:"omitempty,uuid"`

	// BrandID narrows product selection when ProductIDs is empty
	BrandID *string `json:"brandId" binding:"omitempty,uuid"`

	// ProductIDs is the explicit product selection
	ProductIDs []string `json:"productIds" binding:"omitempty,dive,uuid"`

	// UseMoveLines selects the fine-grained ledger source (with lots)
	UseMoveLines bool `json:"useMoveLines"`

	// LineFilter is an optional CEL expression applied to output lines
	LineFilter string `json:"lineFilter"`
}

// ToWizard converts DTO to domain wizard.
func (r *CreateStockCardWizardRequest) ToWizard() *stockcard.Wizard {
	productIDs := make([]id.ID, 0, len(r.ProductIDs))
	for _, s := range r.ProductIDs {
		if parsed, err := id.Parse(s); err == nil {
			productIDs = append(productIDs, parsed)
		}
	}

	return &stockcard.Wizard{
		DateFrom:     r.DateFrom,
		DateTo:       r.DateTo,
		WarehouseID:  parseIDPtr(r.WarehouseID),
		LocationID:   parseIDPtr(r.LocationID),
		BrandID:      parseIDPtr(r.BrandID),
		ProductIDs:   productIDs,
		UseMoveLines: r.UseMoveLines,
		LineFilter:   r.LineFilter,
	}
}

// --- Response DTOs ---

// StockCardWizardResponse echoes the stored report request.
type StockCardWizardResponse struct {
	ID           string    `json:"id"`
	DateFrom     time.Time `json:"dateFrom"`
	DateTo       time.Time `json:"dateTo"`
	WarehouseID  *string   `json:"warehouseId,omitempty"`
	LocationID   *string   `json:"locationId,omitempty"`
	BrandID      *string   `json:"brandId,omitempty"`
	ProductIDs   []string  `json:"productIds,omitempty"`
	UseMoveLines bool      `json:"useMoveLines"`
	LineFilter   string    `json:"lineFilter,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromWizard converts domain wizard to response DTO.
func FromWizard(w *stockcard.Wizard) *StockCardWizardResponse {
	productIDs := make([]string, len(w.ProductIDs))
	for i, pid := range w.ProductIDs {
		productIDs[i] = pid.String()
	}

	return &StockCardWizardResponse{
		ID:           w.ID.String(),
		DateFrom:     w.DateFrom,
		DateTo:       w.DateTo,
		WarehouseID:  idPtrString(w.WarehouseID),
		LocationID:   idPtrString(w.LocationID),
		BrandID:      idPtrString(w.BrandID),
		ProductIDs:   productIDs,
		UseMoveLines: w.UseMoveLines,
		LineFilter:   w.LineFilter,
		CreatedAt:    w.CreatedAt,
	}
}

// The generated report document (stockcard.Report) is returned as-is:
// its JSON shape is the report contract.
