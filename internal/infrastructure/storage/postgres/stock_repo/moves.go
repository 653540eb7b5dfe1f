// Package stock_repo provides the PostgreSQL movement ledger repository.
package stock_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/filter"
	"stockcard/internal/domain/stock"
	"stockcard/internal/infrastructure/storage/postgres"
)

const (
	moveTable     = "stock_moves"
	moveLineTable = "stock_move_lines"
	locationTable = "cat_locations"
)

// moveInsertCols are the stored columns of a move; location names are
// joined at read time, never stored.
var moveInsertCols = []string{
	"id", "product_id", "source_location_id", "dest_location_id",
	"quantity", "date", "state",
	"transfer_id", "transfer_number", "transfer_type",
	"adjustment_id", "adjustment_number", "reference",
}

var moveLineInsertCols = []string{
	"id", "move_id", "product_id", "source_location_id", "dest_location_id",
	"qty_done", "date", "state", "lot_name",
	"transfer_id", "transfer_number", "transfer_type",
	"adjustment_id", "adjustment_number", "reference",
}

// copyThreshold is the row count above which inserts switch from a
// multi-row INSERT to the COPY protocol.
const copyThreshold = 200

// Compile-time check.
var _ stock.Repository = (*StockRepo)(nil)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	copier    *postgres.BulkCopier
}

// NewStockRepo creates a new movement repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		copier:    postgres.NewBulkCopier(txManager),
	}
}

func (r *StockRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateMoves inserts moves in one multi-row statement, or via COPY for
// large postings.
func (r *StockRepo) CreateMoves(ctx context.Context, moves []*stock.Move) error {
	if len(moves) == 0 {
		return nil
	}

	if len(moves) >= copyThreshold {
		rows := make([][]any, 0, len(moves))
		for _, m := range moves {
			rows = append(rows, []any{
				m.ID, m.ProductID, m.SourceLocationID, m.DestLocationID,
				m.Quantity, m.Date, m.State,
				m.TransferID, m.TransferNumber, m.TransferType,
				m.AdjustmentID, m.AdjustmentNumber, m.Reference,
			})
		}
		if _, err := r.copier.CopyRows(ctx, moveTable, moveInsertCols, rows); err != nil {
			return fmt.Errorf("copy moves: %w", err)
		}
		return nil
	}

	q := r.builder().Insert(moveTable).Columns(moveInsertCols...)
	for _, m := range moves {
		q = q.Values(
			m.ID, m.ProductID, m.SourceLocationID, m.DestLocationID,
			m.Quantity, m.Date, m.State,
			m.TransferID, m.TransferNumber, m.TransferType,
			m.AdjustmentID, m.AdjustmentNumber, m.Reference,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert moves: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert moves: %w", err)
	}

	return nil
}

// CreateMoveLines inserts move lines in one multi-row statement, or via
// COPY for large postings.
func (r *StockRepo) CreateMoveLines(ctx context.Context, lines []*stock.MoveLine) error {
	if len(lines) == 0 {
		return nil
	}

	if len(lines) >= copyThreshold {
		rows := make([][]any, 0, len(lines))
		for _, ml := range lines {
			rows = append(rows, []any{
				ml.ID, ml.MoveID, ml.ProductID, ml.SourceLocationID, ml.DestLocationID,
				ml.QtyDone, ml.Date, ml.State, ml.LotName,
				ml.TransferID, ml.TransferNumber, ml.TransferType,
				ml.AdjustmentID, ml.AdjustmentNumber, ml.Reference,
			})
		}
		if _, err := r.copier.CopyRows(ctx, moveLineTable, moveLineInsertCols, rows); err != nil {
			return fmt.Errorf("copy move lines: %w", err)
		}
		return nil
	}

	q := r.builder().Insert(moveLineTable).Columns(moveLineInsertCols...)
	for _, ml := range lines {
		q = q.Values(
			ml.ID, ml.MoveID, ml.ProductID, ml.SourceLocationID, ml.DestLocationID,
			ml.QtyDone, ml.Date, ml.State, ml.LotName,
			ml.TransferID, ml.TransferNumber, ml.TransferType,
			ml.AdjustmentID, ml.AdjustmentNumber, ml.Reference,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert move lines: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert move lines: %w", err)
	}

	return nil
}

// DeleteForTransfer removes all moves and lines of a transfer.
func (r *StockRepo) DeleteForTransfer(ctx context.Context, transferID id.ID) error {
	return r.deleteByDocument(ctx, "transfer_id", transferID)
}

// DeleteForAdjustment removes all moves and lines of an adjustment.
func (r *StockRepo) DeleteForAdjustment(ctx context.Context, adjustmentID id.ID) error {
	return r.deleteByDocument(ctx, "adjustment_id", adjustmentID)
}

func (r *StockRepo) deleteByDocument(ctx context.Context, column string, docID id.ID) error {
	querier := r.txManager.GetQuerier(ctx)

	for _, table := range []string{moveLineTable, moveTable} {
		sql, args, err := r.builder().
			Delete(table).
			Where(squirrel.Eq{column: docID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build delete %s: %w", table, err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("delete %s by %s: %w", table, column, err)
		}
	}

	return nil
}

// ListMoves returns moves matching the query ordered by (date, id).
func (r *StockRepo) ListMoves(ctx context.Context, mq stock.MoveQuery) ([]*stock.Move, error) {
	cols := []string{
		"m.id", "m.product_id", "m.source_location_id", "m.dest_location_id",
		"m.quantity", "m.date", "m.state",
		"m.transfer_id", "m.transfer_number", "m.transfer_type",
		"m.adjustment_id", "m.adjustment_number", "m.reference",
		"sl.complete_name AS source_location_name",
		"dl.complete_name AS dest_location_name",
	}

	q := r.builder().
		Select(cols...).
		From(moveTable + " m").
		LeftJoin(locationTable + " sl ON sl.id = m.source_location_id").
		LeftJoin(locationTable + " dl ON dl.id = m.dest_location_id")

	q = applyMoveQuery(q, "m", mq)
	q = q.OrderBy("m.date ASC", "m.id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list moves: %w", err)
	}

	var moves []*stock.Move
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &moves, sql, args...); err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}

	return moves, nil
}

// ListMoveLines returns move lines matching the query ordered by (date, id).
func (r *StockRepo) ListMoveLines(ctx context.Context, mq stock.MoveQuery) ([]*stock.MoveLine, error) {
	cols := []string{
		"ml.id", "ml.move_id", "ml.product_id", "ml.source_location_id", "ml.dest_location_id",
		"ml.qty_done", "ml.date", "ml.state", "ml.lot_name",
		"ml.transfer_id", "ml.transfer_number", "ml.transfer_type",
		"ml.adjustment_id", "ml.adjustment_number", "ml.reference",
		"sl.complete_name AS source_location_name",
		"dl.complete_name AS dest_location_name",
	}

	q := r.builder().
		Select(cols...).
		From(moveLineTable + " ml").
		LeftJoin(locationTable + " sl ON sl.id = ml.source_location_id").
		LeftJoin(locationTable + " dl ON dl.id = ml.dest_location_id")

	q = applyMoveQuery(q, "ml", mq)
	q = q.OrderBy("ml.date ASC", "ml.id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list move lines: %w", err)
	}

	var lines []*stock.MoveLine
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list move lines: %w", err)
	}

	return lines, nil
}

// applyMoveQuery translates a MoveQuery into WHERE clauses. A movement
// qualifies when either endpoint is inside the location set.
func applyMoveQuery(q squirrel.SelectBuilder, alias string, mq stock.MoveQuery) squirrel.SelectBuilder {
	col := func(name string) string { return alias + "." + name }

	if !id.IsNil(mq.ProductID) {
		q = q.Where(squirrel.Eq{col("product_id"): mq.ProductID})
	}

	if len(mq.LocationIDs) > 0 {
		q = q.Where(squirrel.Or{
			squirrel.Eq{col("source_location_id"): mq.LocationIDs},
			squirrel.Eq{col("dest_location_id"): mq.LocationIDs},
		})
	}

	if len(mq.States) > 0 {
		q = q.Where(squirrel.Eq{col("state"): mq.States})
	}

	if mq.DateBefore != nil {
		q = q.Where(squirrel.Lt{col("date"): *mq.DateBefore})
	}
	if mq.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{col("date"): *mq.DateFrom})
	}
	if mq.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{col("date"): *mq.DateTo})
	}

	for _, item := range mq.AdvancedFilters {
		switch item.Operator {
		case filter.Equal, filter.InList:
			q = q.Where(squirrel.Eq{col(item.Field): item.Value})
		case filter.NotEqual, filter.NotInList:
			q = q.Where(squirrel.NotEq{col(item.Field): item.Value})
		case filter.Less:
			q = q.Where(squirrel.Lt{col(item.Field): item.Value})
		case filter.Greater:
			q = q.Where(squirrel.Gt{col(item.Field): item.Value})
		}
	}

	return q
}
