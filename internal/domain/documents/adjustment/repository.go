package adjustment

import (
	"context"
	"time"

	"stockcard/internal/core/id"
	"stockcard/internal/domain"
)

// Repository defines operations for adjustment documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Adjustment) error
	GetByID(ctx context.Context, docID id.ID) (*Adjustment, error)
	GetByNumber(ctx context.Context, number string) (*Adjustment, error)
	Update(ctx context.Context, doc *Adjustment) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]AdjustmentLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []AdjustmentLine) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Adjustment], error)
}

// ListFilter for filtering adjustments.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	LocationID *id.ID
	Posted     *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}
