package catalog_repo

import (
	"testing"
	"time"

	"stockcard/internal/domain/filter"
)

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "col1"}, func() any { return nil })

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Greater",
			item:     filter.Item{Field: "col1", Operator: filter.Greater, Value: 10},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 > $1",
			wantArgs: []any{10},
		},
		{
			name:     "Less",
			item:     filter.Item{Field: "col1", Operator: filter.Less, Value: 5},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 < $1",
			wantArgs: []any{5},
		},
		{
			name:     "Equal",
			item:     filter.Item{Field: "col1", Operator: filter.Equal, Value: "x"},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 = $1",
			wantArgs: []any{"x"},
		},
		{
			name: "Between",
			item: filter.Item{Field: "col1", Operator: filter.Between, Value: filter.Range{
				From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			}},
			wantSQL: "SELECT id, col1 FROM test_table WHERE col1 >= $1 AND col1 <= $2",
			wantArgs: []any{
				time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "IsNull",
			item:     filter.Item{Field: "col1", Operator: filter.IsNull},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 IS NULL",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseQ := repo.baseSelect()
			q, err := repo.applyAdvancedFilters(baseQ, []filter.Item{tt.item})
			if err != nil {
				t.Fatalf("applyAdvancedFilters failed: %v", err)
			}

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("Args mismatch at %d\nwant: %v\ngot:  %v", i, tt.wantArgs[i], args[i])
				}
			}
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "col1"}, func() any { return nil })

	_, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{
		{Field: "evil; DROP TABLE test_table", Operator: filter.Equal, Value: 1},
	})
	if err == nil {
		t.Fatal("expected error for unknown column")
	}
}
