// Package stock provides the movement ledger entities.
// A Move records a quantity of one product travelling from a source
// location to a destination location at a point in time. MoveLines are
// the fine-grained legs of a move (per lot / per shelf). Only moves in
// StateDone count for any balance.
package stock

import (
	"context"
	"time"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/core/types"
)

// MoveState is the lifecycle state of a movement.
type MoveState string

const (
	StateDraft     MoveState = "draft"
	StateDone      MoveState = "done"
	StateCancelled MoveState = "cancelled"
)

// Transfer operation type codes carried on DocumentRef.
// They mirror the operation types of the transfer document.
const (
	OpIncoming = "incoming"
	OpOutgoing = "outgoing"
	OpInternal = "internal"
)

// DocumentRef points a movement back at its originating document.
// At most one of TransferID / AdjustmentID is set; both may be nil for
// movements created directly (technical corrections, migrations).
type DocumentRef struct {
	// TransferID references the originating transfer document
	TransferID *id.ID `db:"transfer_id" json:"transferId,omitempty"`

	// TransferNumber is the denormalized transfer document number
	TransferNumber string `db:"transfer_number" json:"transferNumber,omitempty"`

	// TransferType is the transfer operation type code
	// (OpIncoming, OpOutgoing, OpInternal)
	TransferType string `db:"transfer_type" json:"transferType,omitempty"`

	// AdjustmentID references the originating inventory adjustment
	AdjustmentID *id.ID `db:"adjustment_id" json:"adjustmentId,omitempty"`

	// AdjustmentNumber is the denormalized adjustment document number
	AdjustmentNumber string `db:"adjustment_number" json:"adjustmentNumber,omitempty"`

	// Reference is the human-readable movement reference
	Reference string `db:"reference" json:"reference,omitempty"`
}

// Label returns the best display reference for a ledger line.
func (r DocumentRef) Label() string {
	switch {
	case r.Reference != "":
		return r.Reference
	case r.TransferNumber != "":
		return r.TransferNumber
	case r.AdjustmentNumber != "":
		return r.AdjustmentNumber
	default:
		return ""
	}
}

// Move is one product movement between two locations.
// Moves are immutable once done; corrections are new moves.
type Move struct {
	ID id.ID `db:"id" json:"id"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// SourceLocationID is where the quantity leaves
	SourceLocationID id.ID `db:"source_location_id" json:"sourceLocationId"`

	// DestLocationID is where the quantity arrives
	DestLocationID id.ID `db:"dest_location_id" json:"destLocationId"`

	// Quantity moved, always non-negative; direction comes from the endpoints
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Date is the effective movement date (UTC)
	Date time.Time `db:"date" json:"date"`

	State MoveState `db:"state" json:"state"`

	DocumentRef

	// Denormalized names for report output
	SourceLocationName string `db:"source_location_name" json:"sourceLocationName,omitempty"`
	DestLocationName   string `db:"dest_location_name" json:"destLocationName,omitempty"`
}

// NewMove creates a draft move.
func NewMove(productID, source, dest id.ID, qty types.Quantity, date time.Time) *Move {
	return &Move{
		ID:               id.New(),
		ProductID:        productID,
		SourceLocationID: source,
		DestLocationID:   dest,
		Quantity:         qty,
		Date:             date.UTC(),
		State:            StateDraft,
	}
}

// Validate checks move invariants.
func (m *Move) Validate(ctx context.Context) error {
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("product is required").WithDetail("field", "productId")
	}
	if id.IsNil(m.SourceLocationID) || id.IsNil(m.DestLocationID) {
		return apperror.NewValidation("both locations are required").WithDetail("field", "locations")
	}
	if m.Quantity.IsNegative() {
		return apperror.NewValidation("quantity cannot be negative").WithDetail("field", "quantity")
	}
	if m.Date.IsZero() {
		return apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	return nil
}

// IsDone returns true when the move counts for balances.
func (m *Move) IsDone() bool {
	return m.State == StateDone
}

// MoveLine is one executed leg of a move: same endpoints, optionally a
// lot. QtyDone on the lines of a move sums to the move quantity.
type MoveLine struct {
	ID id.ID `db:"id" json:"id"`

	// MoveID is the owning move
	MoveID id.ID `db:"move_id" json:"moveId"`

	ProductID id.ID `db:"product_id" json:"productId"`

	SourceLocationID id.ID `db:"source_location_id" json:"sourceLocationId"`
	DestLocationID   id.ID `db:"dest_location_id" json:"destLocationId"`

	// QtyDone is the executed quantity, non-negative
	QtyDone types.Quantity `db:"qty_done" json:"qtyDone"`

	// Date mirrors the owning move's date
	Date time.Time `db:"date" json:"date"`

	State MoveState `db:"state" json:"state"`

	// LotName identifies the lot/batch when the product tracks lots
	LotName string `db:"lot_name" json:"lotName,omitempty"`

	DocumentRef

	SourceLocationName string `db:"source_location_name" json:"sourceLocationName,omitempty"`
	DestLocationName   string `db:"dest_location_name" json:"destLocationName,omitempty"`
}
