package adjustment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcard/internal/core/id"
	"stockcard/internal/core/types"
	"stockcard/internal/domain/stock"
)

func TestAdjustmentValidate(t *testing.T) {
	productID := id.New()
	location := id.New()
	inventory := id.New()

	tests := []struct {
		name    string
		build   func() *Adjustment
		wantErr bool
	}{
		{
			name: "valid surplus",
			build: func() *Adjustment {
				doc := NewAdjustment(location, inventory)
				doc.AddLine(productID, types.Quantity(2*types.QuantityScale), "")
				return doc
			},
		},
		{
			name: "missing counted location",
			build: func() *Adjustment {
				doc := NewAdjustment(id.Nil(), inventory)
				doc.AddLine(productID, types.Quantity(types.QuantityScale), "")
				return doc
			},
			wantErr: true,
		},
		{
			name: "zero difference line",
			build: func() *Adjustment {
				doc := NewAdjustment(location, inventory)
				doc.AddLine(productID, 0, "")
				return doc
			},
			wantErr: true,
		},
		{
			name: "no lines",
			build: func() *Adjustment {
				return NewAdjustment(location, inventory)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdjustmentBuildMoves(t *testing.T) {
	location := id.New()
	inventory := id.New()

	doc := NewAdjustment(location, inventory)
	doc.Number = "ADJ-2026-00007"
	doc.AddLine(id.New(), types.Quantity(4*types.QuantityScale), "")  // surplus
	doc.AddLine(id.New(), types.Quantity(-6*types.QuantityScale), "") // shortage

	moves, lines := doc.BuildMoves()
	require.Len(t, moves, 2)
	require.Len(t, lines, 2)

	surplus := moves[0]
	assert.Equal(t, inventory, surplus.SourceLocationID)
	assert.Equal(t, location, surplus.DestLocationID)
	assert.Equal(t, types.Quantity(4*types.QuantityScale), surplus.Quantity)

	shortage := moves[1]
	assert.Equal(t, location, shortage.SourceLocationID)
	assert.Equal(t, inventory, shortage.DestLocationID)
	assert.Equal(t, types.Quantity(6*types.QuantityScale), shortage.Quantity)

	for i, move := range moves {
		assert.Equal(t, stock.StateDone, move.State)
		assert.True(t, move.Quantity.IsPositive())
		require.NotNil(t, move.AdjustmentID)
		assert.Equal(t, doc.ID, *move.AdjustmentID)
		assert.Equal(t, "ADJ-2026-00007", move.AdjustmentNumber)
		assert.Nil(t, move.TransferID)
		assert.Equal(t, move.ID, lines[i].MoveID)
		assert.Equal(t, move.Quantity, lines[i].QtyDone)
	}
}
