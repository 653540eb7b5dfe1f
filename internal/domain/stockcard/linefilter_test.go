package stockcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcard/internal/core/apperror"
)

func TestCompileLineFilter(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantNil bool
		wantErr bool
	}{
		{name: "empty expression", expr: "", wantNil: true},
		{name: "whitespace only", expr: "   ", wantNil: true},
		{name: "doc type match", expr: `doc_type == "Receipt"`},
		{name: "quantity threshold", expr: "qty_in > 5.0 || qty_out > 5.0"},
		{name: "lot prefix", expr: `lot.startsWith("LOT-")`},
		{name: "date bound", expr: `date < timestamp("2026-06-01T00:00:00Z")`},
		{name: "syntax error", expr: "qty_in >", wantErr: true},
		{name: "unknown variable", expr: "price > 10.0", wantErr: true},
		{name: "non-boolean result", expr: "qty_in + qty_out", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileLineFilter(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, f)
			} else {
				assert.NotNil(t, f)
			}
		})
	}
}

func TestLineFilterApply(t *testing.T) {
	lines := []LedgerLine{
		{Date: day(1), Reference: "TR-1", DocType: DocTypeReceipt, QtyIn: 10, Balance: 10},
		{Date: day(2), Reference: "TR-2", DocType: DocTypeInternal, QtyIn: 4, QtyOut: 4, Balance: 10},
		{Date: day(3), Reference: "TR-3", DocType: DocTypeDelivery, QtyOut: 3, Balance: 7},
	}

	t.Run("nil filter keeps everything", func(t *testing.T) {
		var f *LineFilter
		kept, err := f.Apply(lines)
		require.NoError(t, err)
		assert.Len(t, kept, 3)
	})

	t.Run("drops non-matching lines only", func(t *testing.T) {
		f, err := CompileLineFilter(`doc_type == "Delivery"`)
		require.NoError(t, err)

		kept, err := f.Apply(lines)
		require.NoError(t, err)
		require.Len(t, kept, 1)
		assert.Equal(t, "TR-3", kept[0].Reference)
		// Balances survive untouched: filtering is presentation only.
		assert.Equal(t, 7.0, kept[0].Balance)
	})

	t.Run("numeric predicate", func(t *testing.T) {
		f, err := CompileLineFilter("qty_out > 0.0")
		require.NoError(t, err)

		kept, err := f.Apply(lines)
		require.NoError(t, err)
		assert.Len(t, kept, 2)
	})
}
