// Package transfer provides the Transfer document.
// A transfer moves product quantities between two locations: receipts
// from suppliers, deliveries to customers and internal relocations are
// all transfers distinguished by operation type.
package transfer

import (
	"context"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/entity"
	"stockcard/internal/core/id"
	"stockcard/internal/core/types"
	"stockcard/internal/domain/stock"
)

// OperationType classifies the business direction of a transfer.
type OperationType string

const (
	// OperationIncoming receives goods from an external source location.
	OperationIncoming OperationType = OperationType(stock.OpIncoming)

	// OperationOutgoing ships goods to an external destination location.
	OperationOutgoing OperationType = OperationType(stock.OpOutgoing)

	// OperationInternal relocates goods between internal locations.
	OperationInternal OperationType = OperationType(stock.OpInternal)
)

// Valid reports whether the operation type is one of the known codes.
func (t OperationType) Valid() bool {
	switch t {
	case OperationIncoming, OperationOutgoing, OperationInternal:
		return true
	}
	return false
}

// Transfer represents a stock transfer document.
type Transfer struct {
	entity.Document

	// OperationType is the business direction of the transfer
	OperationType OperationType `db:"operation_type" json:"operationType"`

	// SourceLocationID is where quantities leave
	SourceLocationID id.ID `db:"source_location_id" json:"sourceLocationId"`

	// DestLocationID is where quantities arrive
	DestLocationID id.ID `db:"dest_location_id" json:"destLocationId"`

	// Reference is an optional external reference (supplier doc, order number)
	Reference string `db:"reference" json:"reference,omitempty"`

	// Table part: transferred goods
	Lines []TransferLine `db:"-" json:"lines"`
}

// TransferLine represents a line in the transfer.
type TransferLine struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Product reference
	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity to move
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// LotName identifies the lot/batch when the product tracks lots
	LotName string `db:"lot_name" json:"lotName,omitempty"`
}

// NewTransfer creates a new transfer document.
func NewTransfer(opType OperationType, sourceID, destID id.ID) *Transfer {
	return &Transfer{
		Document:         entity.NewDocument(),
		OperationType:    opType,
		SourceLocationID: sourceID,
		DestLocationID:   destID,
		Lines:            make([]TransferLine, 0),
	}
}

// AddLine adds a line to the transfer.
func (t *Transfer) AddLine(productID id.ID, qty types.Quantity, lotName string) {
	t.Lines = append(t.Lines, TransferLine{
		LineID:    id.New(),
		LineNo:    len(t.Lines) + 1,
		ProductID: productID,
		Quantity:  qty,
		LotName:   lotName,
	})
}

// Validate implements entity.Validatable.
func (t *Transfer) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if !t.OperationType.Valid() {
		return apperror.NewValidation("unknown operation type").
			WithDetail("field", "operationType").
			WithDetail("value", string(t.OperationType))
	}

	if id.IsNil(t.SourceLocationID) {
		return apperror.NewValidation("source location is required").
			WithDetail("field", "sourceLocationId")
	}

	if id.IsNil(t.DestLocationID) {
		return apperror.NewValidation("destination location is required").
			WithDetail("field", "destLocationId")
	}

	if len(t.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range t.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity.IsZero() || line.Quantity.IsNegative() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// BuildMoves materializes this transfer as done stock movements.
// One move per line, each with one executed move line.
func (t *Transfer) BuildMoves() ([]*stock.Move, []*stock.MoveLine) {
	ref := stock.DocumentRef{
		TransferID:     &t.ID,
		TransferNumber: t.Number,
		TransferType:   string(t.OperationType),
		Reference:      t.Reference,
	}

	moves := make([]*stock.Move, 0, len(t.Lines))
	moveLines := make([]*stock.MoveLine, 0, len(t.Lines))

	for _, line := range t.Lines {
		move := stock.NewMove(line.ProductID, t.SourceLocationID, t.DestLocationID, line.Quantity, t.Date)
		move.State = stock.StateDone
		move.DocumentRef = ref

		moves = append(moves, move)
		moveLines = append(moveLines, &stock.MoveLine{
			ID:               id.New(),
			MoveID:           move.ID,
			ProductID:        line.ProductID,
			SourceLocationID: t.SourceLocationID,
			DestLocationID:   t.DestLocationID,
			QtyDone:          line.Quantity,
			Date:             move.Date,
			State:            stock.StateDone,
			LotName:          line.LotName,
			DocumentRef:      ref,
		})
	}

	return moves, moveLines
}
