package transfer

import (
	"context"
	"time"

	"stockcard/internal/core/id"
	"stockcard/internal/domain"
)

// Repository defines operations for transfer documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Transfer) error
	GetByID(ctx context.Context, docID id.ID) (*Transfer, error)
	GetByNumber(ctx context.Context, number string) (*Transfer, error)
	Update(ctx context.Context, doc *Transfer) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]TransferLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []TransferLine) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transfer], error)
}

// ListFilter for filtering transfers.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	OperationType *OperationType
	LocationID    *id.ID
	Posted        *bool
	DateFrom      *time.Time
	DateTo        *time.Time
}
