package dto

import (
	"time"

	"stockcard/internal/core/types"
	"stockcard/internal/domain/documents/adjustment"
)

// --- Request DTOs ---

// AdjustmentLineRequest is one counted difference line.
type AdjustmentLineRequest struct {
	ProductID string         `json:"productId" binding:"required,uuid"`
	QtyDiff   types.Quantity `json:"qtyDiff" binding:"required"`
	LotName   string         `json:"lotName"`
}

// CreateAdjustmentRequest is the request body for creating an adjustment.
type CreateAdjustmentRequest struct {
	LocationID          string                  `json:"locationId" binding:"required,uuid"`
	InventoryLocationID string                  `json:"inventoryLocationId" binding:"required,uuid"`
	Date                *time.Time              `json:"date"`
	Reference           string                  `json:"reference"`
	Comment             string                  `json:"comment"`
	Lines               []AdjustmentLineRequest `json:"lines" binding:"required,min=1,dive"`

	// PostImmediately posts the document right after creation
	PostImmediately bool `json:"postImmediately"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateAdjustmentRequest) ToEntity() *adjustment.Adjustment {
	doc := adjustment.NewAdjustment(
		deref(parseIDPtr(&r.LocationID)),
		deref(parseIDPtr(&r.InventoryLocationID)),
	)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Reference = r.Reference
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		doc.AddLine(deref(parseIDPtr(&line.ProductID)), line.QtyDiff, line.LotName)
	}

	return doc
}

// UpdateAdjustmentRequest is the request body for updating an adjustment.
type UpdateAdjustmentRequest struct {
	LocationID          string                  `json:"locationId" binding:"required,uuid"`
	InventoryLocationID string                  `json:"inventoryLocationId" binding:"required,uuid"`
	Date                *time.Time              `json:"date"`
	Reference           string                  `json:"reference"`
	Comment             string                  `json:"comment"`
	Lines               []AdjustmentLineRequest `json:"lines" binding:"required,min=1,dive"`
	Version             int                     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced
// wholesale; line IDs are regenerated.
func (r *UpdateAdjustmentRequest) ApplyTo(doc *adjustment.Adjustment) {
	doc.LocationID = deref(parseIDPtr(&r.LocationID))
	doc.InventoryLocationID = deref(parseIDPtr(&r.InventoryLocationID))
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Reference = r.Reference
	doc.Comment = r.Comment
	doc.Version = r.Version

	doc.Lines = doc.Lines[:0]
	for _, line := range r.Lines {
		doc.AddLine(deref(parseIDPtr(&line.ProductID)), line.QtyDiff, line.LotName)
	}
}

// --- Response DTOs ---

// AdjustmentLineResponse is one adjustment line in API responses.
type AdjustmentLineResponse struct {
	LineID    string         `json:"lineId"`
	LineNo    int            `json:"lineNo"`
	ProductID string         `json:"productId"`
	QtyDiff   types.Quantity `json:"qtyDiff"`
	LotName   string         `json:"lotName,omitempty"`
}

// AdjustmentResponse is the response body for an adjustment.
type AdjustmentResponse struct {
	DocumentResponse
	LocationID          string                   `json:"locationId"`
	InventoryLocationID string                   `json:"inventoryLocationId"`
	Reference           string                   `json:"reference,omitempty"`
	Lines               []AdjustmentLineResponse `json:"lines"`
}

// FromAdjustment converts domain entity to response DTO.
func FromAdjustment(doc *adjustment.Adjustment) *AdjustmentResponse {
	lines := make([]AdjustmentLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = AdjustmentLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			QtyDiff:   line.QtyDiff,
			LotName:   line.LotName,
		}
	}

	return &AdjustmentResponse{
		DocumentResponse:    FromDocument(doc.Document),
		LocationID:          doc.LocationID.String(),
		InventoryLocationID: doc.InventoryLocationID.String(),
		Reference:           doc.Reference,
		Lines:               lines,
	}
}
