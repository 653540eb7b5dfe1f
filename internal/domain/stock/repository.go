package stock

import (
	"context"
	"time"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/filter"
)

// MoveQuery selects movements touching a location set.
// A movement qualifies when its source OR destination is in LocationIDs.
type MoveQuery struct {
	// ProductID limits to one product (required for ledger queries)
	ProductID id.ID

	// LocationIDs is the resolved scope; matched against either endpoint
	LocationIDs []id.ID

	// DateBefore selects strictly earlier movements (opening balance pass)
	DateBefore *time.Time

	// DateFrom / DateTo select the closed reporting window
	DateFrom *time.Time
	DateTo   *time.Time

	// States limits by lifecycle state; ledger queries pass only StateDone
	States []MoveState

	// AdvancedFilters adds arbitrary predicates (translated by the repository)
	AdvancedFilters []filter.Item
}

// DoneWindowQuery builds the window selection for one product.
func DoneWindowQuery(productID id.ID, locationIDs []id.ID, from, to time.Time) MoveQuery {
	return MoveQuery{
		ProductID:   productID,
		LocationIDs: locationIDs,
		DateFrom:    &from,
		DateTo:      &to,
		States:      []MoveState{StateDone},
	}
}

// DoneBeforeQuery builds the opening-balance selection for one product.
func DoneBeforeQuery(productID id.ID, locationIDs []id.ID, before time.Time) MoveQuery {
	return MoveQuery{
		ProductID:   productID,
		LocationIDs: locationIDs,
		DateBefore:  &before,
		States:      []MoveState{StateDone},
	}
}

// Repository defines the interface for movement persistence.
type Repository interface {
	// CreateMoves inserts moves (used when posting documents).
	CreateMoves(ctx context.Context, moves []*Move) error

	// CreateMoveLines inserts move lines.
	CreateMoveLines(ctx context.Context, lines []*MoveLine) error

	// DeleteForTransfer removes all moves and lines of a transfer (unpost).
	DeleteForTransfer(ctx context.Context, transferID id.ID) error

	// DeleteForAdjustment removes all moves and lines of an adjustment (unpost).
	DeleteForAdjustment(ctx context.Context, adjustmentID id.ID) error

	// ListMoves returns moves matching the query,
	// ordered by (date ASC, id ASC).
	ListMoves(ctx context.Context, q MoveQuery) ([]*Move, error)

	// ListMoveLines returns move lines matching the query,
	// ordered by (date ASC, id ASC).
	ListMoveLines(ctx context.Context, q MoveQuery) ([]*MoveLine, error)
}
