// Package report_repo provides PostgreSQL persistence for report wizards.
package report_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain/stockcard"
	"stockcard/internal/infrastructure/storage/postgres"
)

const wizardTable = "report_wizards"

var wizardCols = []string{
	"id", "date_from", "date_to",
	"warehouse_id", "location_id", "brand_id", "product_ids",
	"use_move_lines", "line_filter", "created_at",
}

// wizardRow carries the product selection as a uuid[] column; the
// domain model keeps it out of the generic column set.
type wizardRow struct {
	ID           id.ID     `db:"id"`
	DateFrom     time.Time `db:"date_from"`
	DateTo       time.Time `db:"date_to"`
	WarehouseID  *id.ID    `db:"warehouse_id"`
	LocationID   *id.ID    `db:"location_id"`
	BrandID      *id.ID    `db:"brand_id"`
	ProductIDs   []id.ID   `db:"product_ids"`
	UseMoveLines bool      `db:"use_move_lines"`
	LineFilter   string    `db:"line_filter"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r wizardRow) toDomain() *stockcard.Wizard {
	return &stockcard.Wizard{
		ID:           r.ID,
		DateFrom:     r.DateFrom,
		DateTo:       r.DateTo,
		WarehouseID:  r.WarehouseID,
		LocationID:   r.LocationID,
		BrandID:      r.BrandID,
		ProductIDs:   r.ProductIDs,
		UseMoveLines: r.UseMoveLines,
		LineFilter:   r.LineFilter,
		CreatedAt:    r.CreatedAt,
	}
}

// Compile-time check.
var _ stockcard.Store = (*WizardStore)(nil)

// WizardStore implements stockcard.Store.
type WizardStore struct {
	txManager *postgres.TxManager
}

// NewWizardStore creates a new wizard store.
func NewWizardStore(txManager *postgres.TxManager) *WizardStore {
	return &WizardStore{txManager: txManager}
}

func (s *WizardStore) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create saves a new wizard.
func (s *WizardStore) Create(ctx context.Context, w *stockcard.Wizard) error {
	sql, args, err := s.builder().
		Insert(wizardTable).
		Columns(wizardCols...).
		Values(
			w.ID, w.DateFrom, w.DateTo,
			w.WarehouseID, w.LocationID, w.BrandID, w.ProductIDs,
			w.UseMoveLines, w.LineFilter, w.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert wizard: %w", err)
	}

	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert wizard: %w", err)
	}

	return nil
}

// GetByID loads a wizard; a missing id yields a not-found error.
func (s *WizardStore) GetByID(ctx context.Context, wizardID id.ID) (*stockcard.Wizard, error) {
	sql, args, err := s.builder().
		Select(wizardCols...).
		From(wizardTable).
		Where(squirrel.Eq{"id": wizardID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get wizard: %w", err)
	}

	var row wizardRow
	if err := pgxscan.Get(ctx, s.txManager.GetQuerier(ctx), &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewWizardNotFound(wizardID.String())
		}
		return nil, fmt.Errorf("get wizard: %w", err)
	}

	return row.toDomain(), nil
}
