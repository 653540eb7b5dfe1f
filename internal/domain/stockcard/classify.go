package stockcard

import "stockcard/internal/domain/stock"

// Classify maps a movement's document reference to a ledger line type.
//
// Priority: an originating transfer wins and is classified by its
// operation type; otherwise an adjustment reference makes it an
// Adjustment; anything else is a generic Movement. Total over all
// inputs, including unknown operation codes.
func Classify(ref stock.DocumentRef) DocType {
	if ref.TransferID != nil {
		switch ref.TransferType {
		case stock.OpIncoming:
			return DocTypeReceipt
		case stock.OpOutgoing:
			return DocTypeDelivery
		case stock.OpInternal:
			return DocTypeInternal
		default:
			return DocTypeMovement
		}
	}

	if ref.AdjustmentID != nil {
		return DocTypeAdjustment
	}

	return DocTypeMovement
}
