package stock_repo

import (
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/stock"
)

func TestApplyMoveQuery_WindowSelection(t *testing.T) {
	productID := id.New()
	locA := id.New()
	locB := id.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	base := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("m.id").
		From(moveTable + " m")

	q := applyMoveQuery(base, "m", stock.DoneWindowQuery(productID, []id.ID{locA, locB}, from, to))

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT m.id FROM stock_moves m " +
		"WHERE m.product_id = $1 " +
		"AND (m.source_location_id IN ($2,$3) OR m.dest_location_id IN ($4,$5)) " +
		"AND m.state IN ($6) " +
		"AND m.date >= $7 AND m.date <= $8"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 8 {
		t.Fatalf("want 8 args, got %d: %v", len(args), args)
	}
	if args[0] != productID {
		t.Errorf("first arg should be product id, got %v", args[0])
	}
}

func TestApplyMoveQuery_OpeningSelection(t *testing.T) {
	productID := id.New()
	loc := id.New()
	before := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	base := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("m.id").
		From(moveTable + " m")

	q := applyMoveQuery(base, "m", stock.DoneBeforeQuery(productID, []id.ID{loc}, before))

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	// Opening pass is strictly before the window start.
	if !strings.Contains(sql, "m.date < $") {
		t.Errorf("expected strict date bound, got: %s", sql)
	}
	if strings.Contains(sql, "m.date >=") || strings.Contains(sql, "m.date <=") {
		t.Errorf("opening selection must not carry window bounds: %s", sql)
	}
	if len(args) != 5 {
		t.Fatalf("want 5 args, got %d: %v", len(args), args)
	}
}

func TestListMovesOrderClause(t *testing.T) {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("m.id").
		From(moveTable + " m").
		OrderBy("m.date ASC", "m.id ASC")

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.HasSuffix(sql, "ORDER BY m.date ASC, m.id ASC") {
		t.Errorf("deterministic ordering clause missing: %s", sql)
	}
}
