package transfer

import (
	"context"
	"fmt"
	"time"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/core/numerator"
	"stockcard/internal/core/tx"
	"stockcard/internal/domain"
	"stockcard/internal/domain/stock"
	"stockcard/pkg/logger"
)

// Service provides business operations for transfer documents.
// Posting a transfer writes one done stock move (plus one executed move
// line) per document line; unposting removes them again.
type Service struct {
	repo      Repository
	stockRepo stock.Repository
	numerator numerator.Generator
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Transfer]
}

// NewService creates a new transfer service.
func NewService(
	repo Repository,
	stockRepo stock.Repository,
	gen numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		stockRepo: stockRepo,
		numerator: gen,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Transfer](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Transfer] {
	return s.hooks
}

// Create creates a new transfer document.
func (s *Service) Create(ctx context.Context, doc *Transfer) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.ensureNumber(ctx, doc); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "transfer created",
		"id", doc.ID,
		"number", doc.Number,
		"operation", doc.OperationType)

	return nil
}

// GetByID retrieves a transfer with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Transfer, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update updates a transfer document.
func (s *Service) Update(ctx context.Context, doc *Transfer) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
}

// Delete soft-deletes a transfer. Posted documents must be unposted first.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	return s.repo.Delete(ctx, docID)
}

// Post records the transfer's movements in the stock ledger.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Posted {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentPosted,
			"Document is already posted.",
		).WithDetail("document_id", doc.ID.String())
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	moves, moveLines := doc.BuildMoves()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.stockRepo.CreateMoves(ctx, moves); err != nil {
			return fmt.Errorf("create moves: %w", err)
		}

		if err := s.stockRepo.CreateMoveLines(ctx, moveLines); err != nil {
			return fmt.Errorf("create move lines: %w", err)
		}

		doc.MarkPosted()
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "transfer posted",
		"id", doc.ID,
		"number", doc.Number,
		"moves", len(moves))

	return nil
}

// Unpost removes the transfer's movements from the stock ledger.
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if !doc.Posted {
		return nil
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.stockRepo.DeleteForTransfer(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete moves: %w", err)
		}

		doc.MarkUnposted()
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "transfer unposted", "id", doc.ID, "number", doc.Number)

	return nil
}

// List retrieves transfers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transfer], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) ensureNumber(ctx context.Context, doc *Transfer) error {
	if doc.Number != "" {
		return nil
	}

	cfg := numerator.DefaultConfig(NumberPrefix)
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	doc.Number = number

	return nil
}
