// Package adjustment provides the InventoryAdjustment document.
// An adjustment corrects the recorded quantity of products at one
// location after a physical count. Each line carries a signed
// difference; posting turns differences into movements against the
// inventory counterpart location.
package adjustment

import (
	"context"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/entity"
	"stockcard/internal/core/id"
	"stockcard/internal/core/types"
	"stockcard/internal/domain/stock"
)

// Adjustment represents an inventory adjustment document.
type Adjustment struct {
	entity.Document

	// LocationID is the counted stock location
	LocationID id.ID `db:"location_id" json:"locationId"`

	// InventoryLocationID is the virtual counterpart location; surpluses
	// arrive from it, shortages leave to it
	InventoryLocationID id.ID `db:"inventory_location_id" json:"inventoryLocationId"`

	// Reference is an optional external reference (count sheet number)
	Reference string `db:"reference" json:"reference,omitempty"`

	// Table part: counted differences
	Lines []AdjustmentLine `db:"-" json:"lines"`
}

// AdjustmentLine represents one counted product difference.
type AdjustmentLine struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Product reference
	ProductID id.ID `db:"product_id" json:"productId"`

	// QtyDiff is the signed difference: positive for surplus, negative
	// for shortage
	QtyDiff types.Quantity `db:"qty_diff" json:"qtyDiff"`

	// LotName identifies the lot/batch when the product tracks lots
	LotName string `db:"lot_name" json:"lotName,omitempty"`
}

// NewAdjustment creates a new adjustment document.
func NewAdjustment(locationID, inventoryLocationID id.ID) *Adjustment {
	return &Adjustment{
		Document:            entity.NewDocument(),
		LocationID:          locationID,
		InventoryLocationID: inventoryLocationID,
		Lines:               make([]AdjustmentLine, 0),
	}
}

// AddLine adds a counted difference to the adjustment.
func (a *Adjustment) AddLine(productID id.ID, qtyDiff types.Quantity, lotName string) {
	a.Lines = append(a.Lines, AdjustmentLine{
		LineID:    id.New(),
		LineNo:    len(a.Lines) + 1,
		ProductID: productID,
		QtyDiff:   qtyDiff,
		LotName:   lotName,
	})
}

// Validate implements entity.Validatable.
func (a *Adjustment) Validate(ctx context.Context) error {
	if err := a.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(a.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}

	if id.IsNil(a.InventoryLocationID) {
		return apperror.NewValidation("inventory counterpart location is required").
			WithDetail("field", "inventoryLocationId")
	}

	if len(a.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range a.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.QtyDiff.IsZero() {
			return apperror.NewValidation("difference cannot be zero").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// BuildMoves materializes the counted differences as done movements.
// Surpluses flow from the inventory location into the counted location,
// shortages flow the other way. Quantities on moves are absolute.
func (a *Adjustment) BuildMoves() ([]*stock.Move, []*stock.MoveLine) {
	ref := stock.DocumentRef{
		AdjustmentID:     &a.ID,
		AdjustmentNumber: a.Number,
		Reference:        a.Reference,
	}

	moves := make([]*stock.Move, 0, len(a.Lines))
	moveLines := make([]*stock.MoveLine, 0, len(a.Lines))

	for _, line := range a.Lines {
		source, dest := a.InventoryLocationID, a.LocationID
		qty := line.QtyDiff
		if qty.IsNegative() {
			source, dest = a.LocationID, a.InventoryLocationID
			qty = qty.Neg()
		}

		move := stock.NewMove(line.ProductID, source, dest, qty, a.Date)
		move.State = stock.StateDone
		move.DocumentRef = ref

		moves = append(moves, move)
		moveLines = append(moveLines, &stock.MoveLine{
			ID:               id.New(),
			MoveID:           move.ID,
			ProductID:        line.ProductID,
			SourceLocationID: source,
			DestLocationID:   dest,
			QtyDone:          qty,
			Date:             move.Date,
			State:            stock.StateDone,
			LotName:          line.LotName,
			DocumentRef:      ref,
		})
	}

	return moves, moveLines
}
