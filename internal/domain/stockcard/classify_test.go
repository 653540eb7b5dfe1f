package stockcard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/stock"
)

func TestClassify(t *testing.T) {
	transferID := id.New()
	adjustmentID := id.New()

	tests := []struct {
		name string
		ref  stock.DocumentRef
		want DocType
	}{
		{
			name: "incoming transfer is a receipt",
			ref:  stock.DocumentRef{TransferID: &transferID, TransferType: stock.OpIncoming},
			want: DocTypeReceipt,
		},
		{
			name: "outgoing transfer is a delivery",
			ref:  stock.DocumentRef{TransferID: &transferID, TransferType: stock.OpOutgoing},
			want: DocTypeDelivery,
		},
		{
			name: "internal transfer",
			ref:  stock.DocumentRef{TransferID: &transferID, TransferType: stock.OpInternal},
			want: DocTypeInternal,
		},
		{
			name: "transfer with unknown operation code",
			ref:  stock.DocumentRef{TransferID: &transferID, TransferType: "teleport"},
			want: DocTypeMovement,
		},
		{
			name: "transfer with empty operation code",
			ref:  stock.DocumentRef{TransferID: &transferID},
			want: DocTypeMovement,
		},
		{
			name: "adjustment reference",
			ref:  stock.DocumentRef{AdjustmentID: &adjustmentID},
			want: DocTypeAdjustment,
		},
		{
			name: "transfer wins over adjustment",
			ref: stock.DocumentRef{
				TransferID:   &transferID,
				TransferType: stock.OpIncoming,
				AdjustmentID: &adjustmentID,
			},
			want: DocTypeReceipt,
		},
		{
			name: "no document reference",
			ref:  stock.DocumentRef{Reference: "manual correction"},
			want: DocTypeMovement,
		},
		{
			name: "zero value",
			ref:  stock.DocumentRef{},
			want: DocTypeMovement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ref))
		})
	}
}
