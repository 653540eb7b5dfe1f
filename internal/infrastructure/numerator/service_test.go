package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	corenumerator "stockcard/internal/core/numerator"
	"stockcard/internal/infrastructure/storage/postgres"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT: every call adds the
// increment (1 for strict, the range size for cached) and returns the
// new value.
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	calls        int
}

func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	m.calls++

	return &mockRow{val: m.currentValue}
}

// GetQuerier implements QuerierProvider directly over the mock.
func (m *mockQuerier) GetQuerier(ctx context.Context) postgres.Querier {
	return m
}

var testPeriod = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("TEST")

	num, err := svc.GetNextNumber(ctx, cfg, nil, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TEST-2026-00001" {
		t.Errorf("expected TEST-2026-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TEST-2026-00002" {
		t.Errorf("expected TEST-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("TR")

	opts := &corenumerator.Options{
		Strategy:  corenumerator.StrategyCached,
		RangeSize: 10,
	}

	// First call allocates the range 1..10 from the DB.
	num, err := svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TR-2026-00001" {
		t.Errorf("expected TR-2026-00001, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to be 10, got %d", q.currentValue)
	}

	// Second call is served from memory.
	num, err = svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TR-2026-00002" {
		t.Errorf("expected TR-2026-00002, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to stay 10, got %d", q.currentValue)
	}

	// Exhaust the range; the next call reserves 11..20.
	for i := 0; i < 8; i++ {
		_, _ = svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	}

	num, err = svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TR-2026-00011" {
		t.Errorf("expected TR-2026-00011, got %s", num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected DB value to be 20, got %d", q.currentValue)
	}
}

func TestFormatNumber(t *testing.T) {
	svc := New(&mockQuerier{})

	tests := []struct {
		name string
		cfg  corenumerator.Config
		num  int64
		want string
	}{
		{
			name: "with year",
			cfg:  corenumerator.Config{Prefix: "ADJ", IncludeYear: true, PadWidth: 5},
			num:  7,
			want: "ADJ-2026-00007",
		},
		{
			name: "without year",
			cfg:  corenumerator.Config{Prefix: "ADJ", PadWidth: 3},
			num:  42,
			want: "ADJ-042",
		},
		{
			name: "default pad width",
			cfg:  corenumerator.Config{Prefix: "TR", IncludeYear: true},
			num:  1,
			want: "TR-2026-00001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.formatNumber(tt.cfg, testPeriod, tt.num)
			if got != tt.want {
				t.Errorf("formatNumber() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	if got := ParseNumber("TR-2026-00042"); got != 42 {
		t.Errorf("ParseNumber with year = %d, want 42", got)
	}
	if got := ParseNumber("TR-00007"); got != 7 {
		t.Errorf("ParseNumber without year = %d, want 7", got)
	}
	if got := ParseNumber("garbage"); got != -1 {
		t.Errorf("ParseNumber on garbage = %d, want -1", got)
	}
}
