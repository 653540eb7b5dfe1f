package stockcard

import (
	"context"
	"sort"
	"time"

	"stockcard/internal/core/id"
	"stockcard/internal/core/types"
	"stockcard/internal/domain/stock"
)

// LedgerSource produces the two passes of a product's stock card.
// Implementations differ only in granularity: whole moves or executed
// move lines (the latter carries lot detail).
type LedgerSource interface {
	// OpeningBalance sums all done movements strictly before dateFrom.
	// Destination inside the scope adds, source inside subtracts; a
	// movement with both endpoints inside nets to zero. Returns zero
	// when nothing qualifies.
	OpeningBalance(ctx context.Context, productID id.ID, scope LocationSet, dateFrom time.Time) (types.Quantity, error)

	// ReplayWindow replays done movements inside the closed interval
	// [dateFrom, dateTo] in ascending (date, id) order, maintaining the
	// running balance from opening. Returns the ledger lines and the
	// closing balance.
	ReplayWindow(ctx context.Context, productID id.ID, scope LocationSet, dateFrom, dateTo time.Time, opening types.Quantity) ([]LedgerLine, types.Quantity, error)
}

// entry is the granularity-independent projection of one movement.
type entry struct {
	id       id.ID
	date     time.Time
	sourceID id.ID
	destID   id.ID
	source   string
	dest     string
	qty      types.Quantity
	lot      string
	ref      stock.DocumentRef
}

// sortEntries orders entries by (date, id). The UUIDv7 id is the
// stable tie-break for equal timestamps, so replay is deterministic
// regardless of fetch order.
func sortEntries(entries []entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].date.Equal(entries[j].date) {
			return entries[i].date.Before(entries[j].date)
		}
		return id.Compare(entries[i].id, entries[j].id) < 0
	})
}

// signedSum computes the order-independent signed total of entries
// against the scope.
func signedSum(entries []entry, scope LocationSet) types.Quantity {
	var total types.Quantity
	for _, e := range entries {
		if scope.Contains(e.destID) {
			total += e.qty
		}
		if scope.Contains(e.sourceID) {
			total -= e.qty
		}
	}
	return total
}

// replay walks sorted entries and emits one ledger line per movement
// with the running balance. A movement with both endpoints inside the
// scope produces a single line whose in and out quantities cancel.
func replay(entries []entry, scope LocationSet, opening types.Quantity) ([]LedgerLine, types.Quantity) {
	lines := make([]LedgerLine, 0, len(entries))
	balance := opening

	for _, e := range entries {
		var in, out types.Quantity
		if scope.Contains(e.destID) {
			in = e.qty
		}
		if scope.Contains(e.sourceID) {
			out = e.qty
		}
		if in.IsZero() && out.IsZero() {
			continue
		}

		balance += in - out

		lines = append(lines, LedgerLine{
			Date:        e.date,
			Reference:   e.ref.Label(),
			DocType:     Classify(e.ref),
			Source:      e.source,
			Destination: e.dest,
			Lot:         e.lot,
			QtyIn:       in.Float64(),
			QtyOut:      out.Float64(),
			Balance:     balance.Float64(),
		})
	}

	return lines, balance
}

// moveSource reads whole moves.
type moveSource struct {
	repo stock.Repository
}

// NewMoveSource returns the move-level ledger source.
func NewMoveSource(repo stock.Repository) LedgerSource {
	return &moveSource{repo: repo}
}

func (s *moveSource) OpeningBalance(ctx context.Context, productID id.ID, scope LocationSet, dateFrom time.Time) (types.Quantity, error) {
	moves, err := s.repo.ListMoves(ctx, stock.DoneBeforeQuery(productID, scope.IDs(), dateFrom))
	if err != nil {
		return 0, err
	}
	return signedSum(movesToEntries(moves), scope), nil
}

func (s *moveSource) ReplayWindow(ctx context.Context, productID id.ID, scope LocationSet, dateFrom, dateTo time.Time, opening types.Quantity) ([]LedgerLine, types.Quantity, error) {
	moves, err := s.repo.ListMoves(ctx, stock.DoneWindowQuery(productID, scope.IDs(), dateFrom, dateTo))
	if err != nil {
		return nil, 0, err
	}

	entries := movesToEntries(moves)
	sortEntries(entries)
	lines, closing := replay(entries, scope, opening)
	return lines, closing, nil
}

func movesToEntries(moves []*stock.Move) []entry {
	entries := make([]entry, 0, len(moves))
	for _, m := range moves {
		entries = append(entries, entry{
			id:       m.ID,
			date:     m.Date,
			sourceID: m.SourceLocationID,
			destID:   m.DestLocationID,
			source:   m.SourceLocationName,
			dest:     m.DestLocationName,
			qty:      m.Quantity,
			ref:      m.DocumentRef,
		})
	}
	return entries
}

// moveLineSource reads executed move lines; the extra granularity adds
// lot detail to the ledger.
type moveLineSource struct {
	repo stock.Repository
}

// NewMoveLineSource returns the move-line-level ledger source.
func NewMoveLineSource(repo stock.Repository) LedgerSource {
	return &moveLineSource{repo: repo}
}

func (s *moveLineSource) OpeningBalance(ctx context.Context, productID id.ID, scope LocationSet, dateFrom time.Time) (types.Quantity, error) {
	moveLines, err := s.repo.ListMoveLines(ctx, stock.DoneBeforeQuery(productID, scope.IDs(), dateFrom))
	if err != nil {
		return 0, err
	}
	return signedSum(moveLinesToEntries(moveLines), scope), nil
}

func (s *moveLineSource) ReplayWindow(ctx context.Context, productID id.ID, scope LocationSet, dateFrom, dateTo time.Time, opening types.Quantity) ([]LedgerLine, types.Quantity, error) {
	moveLines, err := s.repo.ListMoveLines(ctx, stock.DoneWindowQuery(productID, scope.IDs(), dateFrom, dateTo))
	if err != nil {
		return nil, 0, err
	}

	entries := moveLinesToEntries(moveLines)
	sortEntries(entries)
	lines, closing := replay(entries, scope, opening)
	return lines, closing, nil
}

func moveLinesToEntries(moveLines []*stock.MoveLine) []entry {
	entries := make([]entry, 0, len(moveLines))
	for _, ml := range moveLines {
		entries = append(entries, entry{
			id:       ml.ID,
			date:     ml.Date,
			sourceID: ml.SourceLocationID,
			destID:   ml.DestLocationID,
			source:   ml.SourceLocationName,
			dest:     ml.DestLocationName,
			qty:      ml.QtyDone,
			lot:      ml.LotName,
			ref:      ml.DocumentRef,
		})
	}
	return entries
}
