package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockcard/internal/core/id"
	"stockcard/internal/domain"
	"stockcard/internal/domain/documents/transfer"
	"stockcard/internal/infrastructure/storage/postgres"
)

const (
	transfersTable     = "doc_transfers"
	transferLinesTable = "doc_transfer_lines"
)

// Compile-time check.
var _ transfer.Repository = (*TransferRepo)(nil)

// TransferRepo implements transfer.Repository.
type TransferRepo struct {
	*BaseDocumentRepo[*transfer.Transfer]
}

// NewTransferRepo creates a new transfer repository.
func NewTransferRepo(txManager *postgres.TxManager) *TransferRepo {
	return &TransferRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*transfer.Transfer](
			txManager,
			transfersTable,
			postgres.ExtractDBColumns[transfer.Transfer](),
			func() *transfer.Transfer { return &transfer.Transfer{} },
		),
	}
}

// GetLines retrieves lines for a transfer.
func (r *TransferRepo) GetLines(ctx context.Context, docID id.ID) ([]transfer.TransferLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "quantity", "lot_name").
		From(transferLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []transfer.TransferLine
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a transfer (delete existing + insert new).
func (r *TransferRepo) SaveLines(ctx context.Context, docID id.ID, lines []transfer.TransferLine) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + transferLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(transferLinesTable).
		Columns("line_id", "document_id", "line_no", "product_id", "quantity", "lot_name")

	for _, line := range lines {
		q = q.Values(line.LineID, docID, line.LineNo, line.ProductID, line.Quantity, line.LotName)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves transfers with filtering.
func (r *TransferRepo) List(ctx context.Context, filter transfer.ListFilter) (domain.ListResult[*transfer.Transfer], error) {
	result := domain.ListResult[*transfer.Transfer]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.OperationType != nil {
		q = q.Where(squirrel.Eq{"operation_type": *filter.OperationType})
	}

	if filter.LocationID != nil {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"source_location_id": *filter.LocationID},
			squirrel.Eq{"dest_location_id": *filter.LocationID},
		})
	}

	if filter.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *filter.Posted})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"reference": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}
