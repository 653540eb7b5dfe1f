package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcard/internal/core/id"
	"stockcard/internal/core/types"
	"stockcard/internal/domain/stock"
)

func TestTransferValidate(t *testing.T) {
	productID := id.New()
	source := id.New()
	dest := id.New()

	tests := []struct {
		name    string
		build   func() *Transfer
		wantErr bool
	}{
		{
			name: "valid incoming",
			build: func() *Transfer {
				doc := NewTransfer(OperationIncoming, source, dest)
				doc.AddLine(productID, types.Quantity(5*types.QuantityScale), "")
				return doc
			},
		},
		{
			name: "unknown operation type",
			build: func() *Transfer {
				doc := NewTransfer(OperationType("teleport"), source, dest)
				doc.AddLine(productID, types.Quantity(types.QuantityScale), "")
				return doc
			},
			wantErr: true,
		},
		{
			name: "missing source location",
			build: func() *Transfer {
				doc := NewTransfer(OperationOutgoing, id.Nil(), dest)
				doc.AddLine(productID, types.Quantity(types.QuantityScale), "")
				return doc
			},
			wantErr: true,
		},
		{
			name: "no lines",
			build: func() *Transfer {
				return NewTransfer(OperationInternal, source, dest)
			},
			wantErr: true,
		},
		{
			name: "zero quantity line",
			build: func() *Transfer {
				doc := NewTransfer(OperationInternal, source, dest)
				doc.AddLine(productID, 0, "")
				return doc
			},
			wantErr: true,
		},
		{
			name: "negative quantity line",
			build: func() *Transfer {
				doc := NewTransfer(OperationInternal, source, dest)
				doc.AddLine(productID, types.Quantity(-types.QuantityScale), "")
				return doc
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

func TestTransferBuildMoves(t *testing.T) {
	source := id.New()
	dest := id.New()

	doc := NewTransfer(OperationIncoming, source, dest)
	doc.Number = "TR-2026-00042"
	doc.Reference = "PO-1001"
	doc.AddLine(id.New(), types.Quantity(3*types.QuantityScale), "LOT-A")
	doc.AddLine(id.New(), types.Quantity(7*types.QuantityScale), "")

	moves, lines := doc.BuildMoves()
	require.Len(t, moves, 2)
	require.Len(t, lines, 2)

	for i, move := range moves {
		assert.Equal(t, stock.StateDone, move.State)
		assert.Equal(t, source, move.SourceLocationID)
		assert.Equal(t, dest, move.DestLocationID)
		assert.Equal(t, doc.Lines[i].ProductID, move.ProductID)
		assert.Equal(t, doc.Lines[i].Quantity, move.Quantity)

		require.NotNil(t, move.TransferID)
		assert.Equal(t, doc.ID, *move.TransferID)
		assert.Equal(t, "TR-2026-00042", move.TransferNumber)
		assert.Equal(t, stock.OpIncoming, move.TransferType)
		assert.Equal(t, "PO-1001", move.Reference)

		assert.Equal(t, move.ID, lines[i].MoveID)
		assert.Equal(t, move.Quantity, lines[i].QtyDone)
	}

	assert.Equal(t, "LOT-A", lines[0].LotName)
	assert.Empty(t, lines[1].LotName)
}
