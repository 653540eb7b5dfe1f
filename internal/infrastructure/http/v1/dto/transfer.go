package dto

import (
	"time"

	"stockcard/internal/core/types"
	"stockcard/internal/domain/documents/transfer"
)

// --- Request DTOs ---

// TransferLineRequest is one line of a transfer document.
type TransferLineRequest struct {
	ProductID string         `json:"productId" binding:"required,uuid"`
	Quantity  types.Quantity `json:"quantity" binding:"required"`
	LotName   string         `json:"lotName"`
}

// CreateTransferRequest is the request body for creating a transfer.
type CreateTransferRequest struct {
	OperationType    transfer.OperationType `json:"operationType" binding:"required"`
	SourceLocationID string                 `json:"sourceLocationId" binding:"required,uuid"`
	DestLocationID   string                 `json:"destLocationId" binding:"required,uuid"`
	Date             *time.Time             `json:"date"`
	Reference        string                 `json:"reference"`
	Comment          string                 `json:"comment"`
	Lines            []TransferLineRequest  `json:"lines" binding:"required,min=1,dive"`

	// PostImmediately posts the document right after creation
	PostImmediately bool `json:"postImmediately"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateTransferRequest) ToEntity() *transfer.Transfer {
	sourceID := parseIDPtr(&r.SourceLocationID)
	destID := parseIDPtr(&r.DestLocationID)

	doc := transfer.NewTransfer(r.OperationType, deref(sourceID), deref(destID))
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Reference = r.Reference
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		doc.AddLine(deref(parseIDPtr(&line.ProductID)), line.Quantity, line.LotName)
	}

	return doc
}

// UpdateTransferRequest is the request body for updating a transfer.
type UpdateTransferRequest struct {
	OperationType    transfer.OperationType `json:"operationType" binding:"required"`
	SourceLocationID string                 `json:"sourceLocationId" binding:"required,uuid"`
	DestLocationID   string                 `json:"destLocationId" binding:"required,uuid"`
	Date             *time.Time             `json:"date"`
	Reference        string                 `json:"reference"`
	Comment          string                 `json:"comment"`
	Lines            []TransferLineRequest  `json:"lines" binding:"required,min=1,dive"`
	Version          int                    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced
// wholesale; line IDs are regenerated.
func (r *UpdateTransferRequest) ApplyTo(doc *transfer.Transfer) {
	doc.OperationType = r.OperationType
	doc.SourceLocationID = deref(parseIDPtr(&r.SourceLocationID))
	doc.DestLocationID = deref(parseIDPtr(&r.DestLocationID))
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Reference = r.Reference
	doc.Comment = r.Comment
	doc.Version = r.Version

	doc.Lines = doc.Lines[:0]
	for _, line := range r.Lines {
		doc.AddLine(deref(parseIDPtr(&line.ProductID)), line.Quantity, line.LotName)
	}
}

// --- Response DTOs ---

// TransferLineResponse is one line of a transfer in API responses.
type TransferLineResponse struct {
	LineID    string         `json:"lineId"`
	LineNo    int            `json:"lineNo"`
	ProductID string         `json:"productId"`
	Quantity  types.Quantity `json:"quantity"`
	LotName   string         `json:"lotName,omitempty"`
}

// TransferResponse is the response body for a transfer.
type TransferResponse struct {
	DocumentResponse
	OperationType    transfer.OperationType `json:"operationType"`
	SourceLocationID string                 `json:"sourceLocationId"`
	DestLocationID   string                 `json:"destLocationId"`
	Reference        string                 `json:"reference,omitempty"`
	Lines            []TransferLineResponse `json:"lines"`
}

// FromTransfer converts domain entity to response DTO.
func FromTransfer(doc *transfer.Transfer) *TransferResponse {
	lines := make([]TransferLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = TransferLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			LotName:   line.LotName,
		}
	}

	return &TransferResponse{
		DocumentResponse: FromDocument(doc.Document),
		OperationType:    doc.OperationType,
		SourceLocationID: doc.SourceLocationID.String(),
		DestLocationID:   doc.DestLocationID.String(),
		Reference:        doc.Reference,
		Lines:            lines,
	}
}
