package unit

import (
	"context"
	"fmt"
	"time"

	"stockcard/internal/core/id"
	"stockcard/internal/core/numerator"
	"stockcard/internal/core/tx"
	"stockcard/internal/domain"
)

// Service provides business logic for Unit catalog.
type Service struct {
	*domain.CatalogService[*Unit]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Unit service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Unit]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  gen,
		EntityName: "unit",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, u *Unit) error {
	if u.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("UN"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		u.Code = code
	}
	return nil
}

// NamesByIDs returns unit names for the given IDs in one batch.
func (s *Service) NamesByIDs(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	return s.repo.NamesByIDs(ctx, ids)
}
