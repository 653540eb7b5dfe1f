package stockcard

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcard/internal/core/id"
	"stockcard/internal/core/types"
	"stockcard/internal/domain/stock"
)

func qty(units int64) types.Quantity {
	return types.Quantity(units * types.QuantityScale)
}

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 0, 0, 0, 0, time.UTC)
}

// stubStockRepo serves canned moves/lines, honoring the query's date
// bounds the way a real repository would.
type stubStockRepo struct {
	moves     []*stock.Move
	moveLines []*stock.MoveLine
	lastQuery stock.MoveQuery
}

func (r *stubStockRepo) CreateMoves(ctx context.Context, moves []*stock.Move) error { return nil }
func (r *stubStockRepo) CreateMoveLines(ctx context.Context, lines []*stock.MoveLine) error {
	return nil
}
func (r *stubStockRepo) DeleteForTransfer(ctx context.Context, transferID id.ID) error { return nil }
func (r *stubStockRepo) DeleteForAdjustment(ctx context.Context, adjustmentID id.ID) error {
	return nil
}

func (r *stubStockRepo) ListMoves(ctx context.Context, q stock.MoveQuery) ([]*stock.Move, error) {
	r.lastQuery = q
	out := make([]*stock.Move, 0, len(r.moves))
	for _, m := range r.moves {
		if inQueryWindow(m.Date, q) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubStockRepo) ListMoveLines(ctx context.Context, q stock.MoveQuery) ([]*stock.MoveLine, error) {
	r.lastQuery = q
	out := make([]*stock.MoveLine, 0, len(r.moveLines))
	for _, ml := range r.moveLines {
		if inQueryWindow(ml.Date, q) {
			out = append(out, ml)
		}
	}
	return out, nil
}

func inQueryWindow(date time.Time, q stock.MoveQuery) bool {
	if q.DateBefore != nil && !date.Before(*q.DateBefore) {
		return false
	}
	if q.DateFrom != nil && date.Before(*q.DateFrom) {
		return false
	}
	if q.DateTo != nil && date.After(*q.DateTo) {
		return false
	}
	return true
}

func doneMove(productID, source, dest id.ID, units int64, date time.Time) *stock.Move {
	m := stock.NewMove(productID, source, dest, qty(units), date)
	m.State = stock.StateDone
	return m
}

// Three days at one warehouse: a receipt, an internal relocation that
// stays inside the scope, and a delivery.
func TestMoveSourceThreeDayScenario(t *testing.T) {
	productID := id.New()
	locA := id.New()
	locB := id.New()
	external := id.New()
	scope := NewLocationSet(locA, locB)

	transferID := id.New()
	receipt := doneMove(productID, external, locA, 10, day(1))
	receipt.DocumentRef = stock.DocumentRef{TransferID: &transferID, TransferType: stock.OpIncoming, TransferNumber: "TR-1"}

	relocation := doneMove(productID, locA, locB, 4, day(2))
	relocation.DocumentRef = stock.DocumentRef{TransferID: &transferID, TransferType: stock.OpInternal, TransferNumber: "TR-2"}

	delivery := doneMove(productID, locA, external, 3, day(3))
	delivery.DocumentRef = stock.DocumentRef{TransferID: &transferID, TransferType: stock.OpOutgoing, TransferNumber: "TR-3"}

	repo := &stubStockRepo{moves: []*stock.Move{receipt, relocation, delivery}}
	source := NewMoveSource(repo)

	lines, closing, err := source.ReplayWindow(context.Background(), productID, scope, day(1), day(3), 0)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, DocTypeReceipt, lines[0].DocType)
	assert.Equal(t, 10.0, lines[0].QtyIn)
	assert.Equal(t, 0.0, lines[0].QtyOut)
	assert.Equal(t, 10.0, lines[0].Balance)

	// Both endpoints inside the scope: one line, both legs, net zero.
	assert.Equal(t, DocTypeInternal, lines[1].DocType)
	assert.Equal(t, 4.0, lines[1].QtyIn)
	assert.Equal(t, 4.0, lines[1].QtyOut)
	assert.Equal(t, 10.0, lines[1].Balance)

	assert.Equal(t, DocTypeDelivery, lines[2].DocType)
	assert.Equal(t, 0.0, lines[2].QtyIn)
	assert.Equal(t, 3.0, lines[2].QtyOut)
	assert.Equal(t, 7.0, lines[2].Balance)

	assert.Equal(t, qty(7), closing)
}

func TestOpeningBalanceZeroWhenNothingQualifies(t *testing.T) {
	repo := &stubStockRepo{}
	source := NewMoveSource(repo)

	opening, err := source.OpeningBalance(context.Background(), id.New(), NewLocationSet(id.New()), day(1))
	require.NoError(t, err)
	assert.True(t, opening.IsZero())
}

func TestOpeningBalancePermutationInvariance(t *testing.T) {
	productID := id.New()
	inside := id.New()
	external := id.New()
	scope := NewLocationSet(inside)

	moves := []*stock.Move{
		doneMove(productID, external, inside, 8, day(1)),
		doneMove(productID, inside, external, 3, day(2)),
		doneMove(productID, external, inside, 5, day(3)),
		doneMove(productID, inside, inside, 100, day(4)), // nets to zero
	}

	want := qty(10)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]*stock.Move, len(moves))
		copy(shuffled, moves)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		repo := &stubStockRepo{moves: shuffled}
		source := NewMoveSource(repo)

		opening, err := source.OpeningBalance(context.Background(), productID, scope, day(5))
		require.NoError(t, err)
		assert.Equal(t, want, opening)
	}
}

func TestReplayEqualTimestampsOrderedByID(t *testing.T) {
	productID := id.New()
	inside := id.New()
	external := id.New()
	scope := NewLocationSet(inside)

	// Same instant, distinguishable by id only.
	first := doneMove(productID, external, inside, 1, day(1))
	second := doneMove(productID, external, inside, 2, day(1))
	third := doneMove(productID, external, inside, 3, day(1))

	moves := []*stock.Move{first, second, third}
	// Expected order is bytewise over the UUIDv7 ids.
	want := make([]*stock.Move, len(moves))
	copy(want, moves)
	for i := 0; i < len(want); i++ {
		for j := i + 1; j < len(want); j++ {
			if id.Compare(want[j].ID, want[i].ID) < 0 {
				want[i], want[j] = want[j], want[i]
			}
		}
	}

	// Feed the moves in reverse to prove the source re-sorts.
	repo := &stubStockRepo{moves: []*stock.Move{moves[2], moves[0], moves[1]}}
	source := NewMoveSource(repo)

	lines, closing, err := source.ReplayWindow(context.Background(), productID, scope, day(1), day(1), 0)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, qty(6), closing)

	for i, m := range want {
		assert.Equal(t, m.Quantity.Float64(), lines[i].QtyIn, "line %d", i)
	}

	running := 0.0
	for i, line := range lines {
		running += line.QtyIn
		assert.Equal(t, running, line.Balance, "line %d", i)
	}
}

func TestReplaySkipsMovesOutsideScope(t *testing.T) {
	productID := id.New()
	inside := id.New()
	scope := NewLocationSet(inside)

	outside := doneMove(productID, id.New(), id.New(), 5, day(1))
	counted := doneMove(productID, id.New(), inside, 2, day(2))

	repo := &stubStockRepo{moves: []*stock.Move{outside, counted}}
	source := NewMoveSource(repo)

	lines, closing, err := source.ReplayWindow(context.Background(), productID, scope, day(1), day(3), 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2.0, lines[0].QtyIn)
	assert.Equal(t, qty(2), closing)
}

func TestReplayStartsFromOpeningBalance(t *testing.T) {
	productID := id.New()
	inside := id.New()
	external := id.New()
	scope := NewLocationSet(inside)

	repo := &stubStockRepo{moves: []*stock.Move{
		doneMove(productID, inside, external, 4, day(2)),
	}}
	source := NewMoveSource(repo)

	lines, closing, err := source.ReplayWindow(context.Background(), productID, scope, day(1), day(3), qty(9))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5.0, lines[0].Balance)
	assert.Equal(t, qty(5), closing)
}

func TestMoveLineSourceCarriesLots(t *testing.T) {
	productID := id.New()
	inside := id.New()
	external := id.New()
	scope := NewLocationSet(inside)

	adjustmentID := id.New()
	line := &stock.MoveLine{
		ID:               id.New(),
		MoveID:           id.New(),
		ProductID:        productID,
		SourceLocationID: external,
		DestLocationID:   inside,
		QtyDone:          qty(6),
		Date:             day(1),
		State:            stock.StateDone,
		LotName:          "LOT-2026-03",
		DocumentRef:      stock.DocumentRef{AdjustmentID: &adjustmentID, AdjustmentNumber: "ADJ-1"},
	}

	repo := &stubStockRepo{moveLines: []*stock.MoveLine{line}}
	source := NewMoveLineSource(repo)

	lines, closing, err := source.ReplayWindow(context.Background(), productID, scope, day(1), day(2), 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "LOT-2026-03", lines[0].Lot)
	assert.Equal(t, DocTypeAdjustment, lines[0].DocType)
	assert.Equal(t, "ADJ-1", lines[0].Reference)
	assert.Equal(t, qty(6), closing)
}

func TestLedgerQueriesRestrictToDoneState(t *testing.T) {
	productID := id.New()
	scope := NewLocationSet(id.New())
	repo := &stubStockRepo{}
	source := NewMoveSource(repo)

	_, err := source.OpeningBalance(context.Background(), productID, scope, day(2))
	require.NoError(t, err)
	assert.Equal(t, []stock.MoveState{stock.StateDone}, repo.lastQuery.States)
	require.NotNil(t, repo.lastQuery.DateBefore)
	assert.True(t, repo.lastQuery.DateBefore.Equal(day(2)))

	_, _, err = source.ReplayWindow(context.Background(), productID, scope, day(2), day(5), 0)
	require.NoError(t, err)
	assert.Equal(t, []stock.MoveState{stock.StateDone}, repo.lastQuery.States)
	require.NotNil(t, repo.lastQuery.DateFrom)
	require.NotNil(t, repo.lastQuery.DateTo)
	assert.True(t, repo.lastQuery.DateFrom.Equal(day(2)))
	assert.True(t, repo.lastQuery.DateTo.Equal(day(5)))
}
