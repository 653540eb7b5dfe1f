package location

import (
	"context"
	"fmt"
	"time"

	"stockcard/internal/core/id"
	"stockcard/internal/core/numerator"
	"stockcard/internal/core/tx"
	"stockcard/internal/domain"
)

// Service provides business logic for Location catalog.
type Service struct {
	*domain.CatalogService[*Location]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Location service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Location]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  gen,
		EntityName: "location",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate generates a code and fills the complete name.
func (s *Service) prepareForCreate(ctx context.Context, l *Location) error {
	if l.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("LOC"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		l.Code = code
	}

	if l.CompleteName == "" {
		name, err := s.buildCompleteName(ctx, l)
		if err != nil {
			return err
		}
		l.CompleteName = name
	}

	return nil
}

// buildCompleteName joins parent path and own name.
func (s *Service) buildCompleteName(ctx context.Context, l *Location) (string, error) {
	if l.ParentID == nil || *l.ParentID == "" {
		return l.Name, nil
	}

	parentID, err := id.Parse(*l.ParentID)
	if err != nil {
		return "", fmt.Errorf("parse parent id: %w", err)
	}

	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		return "", fmt.Errorf("load parent location: %w", err)
	}

	return parent.DisplayName() + "/" + l.Name, nil
}
