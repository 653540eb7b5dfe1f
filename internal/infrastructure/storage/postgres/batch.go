package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// BulkCopier inserts rows via the PostgreSQL COPY protocol. Posting a
// document with many lines produces one movement row per line, so the
// ledger repositories switch to COPY above a row-count threshold.
type BulkCopier struct {
	txManager *TxManager
}

// NewBulkCopier creates a new bulk copier.
func NewBulkCopier(txManager *TxManager) *BulkCopier {
	return &BulkCopier{txManager: txManager}
}

// CopyRows bulk-inserts rows into table. Each row must match columns.
// COPY cannot run outside a transaction, callers are expected to be
// inside RunInTransaction.
func (b *BulkCopier) CopyRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx := b.txManager.GetTx(ctx)
	if tx == nil {
		return 0, fmt.Errorf("CopyRows requires transaction context")
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}

	return n, nil
}
