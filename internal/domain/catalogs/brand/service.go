package brand

import (
	"context"
	"fmt"
	"time"

	"stockcard/internal/core/numerator"
	"stockcard/internal/core/tx"
	"stockcard/internal/domain"
)

// Service provides business logic for Brand catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Brand]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Brand service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Brand]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  gen,
		EntityName: "brand",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate generates a code when not provided.
func (s *Service) prepareForCreate(ctx context.Context, b *Brand) error {
	if b.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("BR"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		b.Code = code
	}
	return nil
}
