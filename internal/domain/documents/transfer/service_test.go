package transfer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/core/numerator"
	"stockcard/internal/core/types"
	"stockcard/internal/domain"
	"stockcard/internal/domain/stock"
)

type stubRepo struct {
	docs  map[id.ID]*Transfer
	lines map[id.ID][]TransferLine
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		docs:  make(map[id.ID]*Transfer),
		lines: make(map[id.ID][]TransferLine),
	}
}

func (r *stubRepo) Create(ctx context.Context, doc *Transfer) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *stubRepo) GetByID(ctx context.Context, docID id.ID) (*Transfer, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("transfer", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *stubRepo) GetByNumber(ctx context.Context, number string) (*Transfer, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("transfer", number)
}

func (r *stubRepo) Update(ctx context.Context, doc *Transfer) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("transfer", doc.ID.String())
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, docID id.ID) error {
	doc, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("transfer", docID.String())
	}
	doc.DeletionMark = true
	return nil
}

func (r *stubRepo) GetLines(ctx context.Context, docID id.ID) ([]TransferLine, error) {
	return r.lines[docID], nil
}

func (r *stubRepo) SaveLines(ctx context.Context, docID id.ID, lines []TransferLine) error {
	r.lines[docID] = append([]TransferLine(nil), lines...)
	return nil
}

func (r *stubRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transfer], error) {
	out := domain.ListResult[*Transfer]{Limit: filter.Limit, Offset: filter.Offset}
	for _, doc := range r.docs {
		out.Items = append(out.Items, doc)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

type stubStockRepo struct {
	moves     []*stock.Move
	moveLines []*stock.MoveLine
}

func (r *stubStockRepo) CreateMoves(ctx context.Context, moves []*stock.Move) error {
	r.moves = append(r.moves, moves...)
	return nil
}

func (r *stubStockRepo) CreateMoveLines(ctx context.Context, lines []*stock.MoveLine) error {
	r.moveLines = append(r.moveLines, lines...)
	return nil
}

func (r *stubStockRepo) DeleteForTransfer(ctx context.Context, transferID id.ID) error {
	keepMoves := r.moves[:0]
	for _, m := range r.moves {
		if m.TransferID == nil || *m.TransferID != transferID {
			keepMoves = append(keepMoves, m)
		}
	}
	r.moves = keepMoves

	keepLines := r.moveLines[:0]
	for _, ml := range r.moveLines {
		if ml.TransferID == nil || *ml.TransferID != transferID {
			keepLines = append(keepLines, ml)
		}
	}
	r.moveLines = keepLines
	return nil
}

func (r *stubStockRepo) DeleteForAdjustment(ctx context.Context, adjustmentID id.ID) error {
	return nil
}

func (r *stubStockRepo) ListMoves(ctx context.Context, q stock.MoveQuery) ([]*stock.Move, error) {
	return r.moves, nil
}

func (r *stubStockRepo) ListMoveLines(ctx context.Context, q stock.MoveQuery) ([]*stock.MoveLine, error) {
	return r.moveLines, nil
}

// passthroughTx runs the callback without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *stubRepo, *stubStockRepo) {
	repo := newStubRepo()
	stockRepo := &stubStockRepo{}

	seq := 0
	gen := &numerator.MockGenerator{
		GetNextNumberFunc: func(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
			seq++
			return fmt.Sprintf("%s-%d-%05d", cfg.Prefix, period.Year(), seq), nil
		},
	}

	return NewService(repo, stockRepo, gen, passthroughTx{}), repo, stockRepo
}

func newTestTransfer() *Transfer {
	doc := NewTransfer(OperationIncoming, id.New(), id.New())
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(5), "")
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(3), "LOT-1")
	return doc
}

func TestService_Create_AssignsNumber(t *testing.T) {
	svc, repo, _ := newTestService()

	doc := newTestTransfer()
	require.NoError(t, svc.Create(context.Background(), doc))

	assert.Equal(t, fmt.Sprintf("TR-%d-00001", time.Now().Year()), doc.Number)
	assert.Len(t, repo.lines[doc.ID], 2)
}

func TestService_Create_KeepsExplicitNumber(t *testing.T) {
	svc, _, _ := newTestService()

	doc := newTestTransfer()
	doc.Number = "TR-MANUAL-1"
	require.NoError(t, svc.Create(context.Background(), doc))

	assert.Equal(t, "TR-MANUAL-1", doc.Number)
}

func TestService_Create_RejectsEmptyLines(t *testing.T) {
	svc, _, _ := newTestService()

	doc := NewTransfer(OperationInternal, id.New(), id.New())
	err := svc.Create(context.Background(), doc)

	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestService_Post_WritesMovements(t *testing.T) {
	svc, repo, stockRepo := newTestService()

	doc := newTestTransfer()
	require.NoError(t, svc.Create(context.Background(), doc))
	require.NoError(t, svc.Post(context.Background(), doc.ID))

	assert.Len(t, stockRepo.moves, 2)
	assert.Len(t, stockRepo.moveLines, 2)
	for _, m := range stockRepo.moves {
		assert.Equal(t, stock.StateDone, m.State)
		require.NotNil(t, m.TransferID)
		assert.Equal(t, doc.ID, *m.TransferID)
	}

	stored := repo.docs[doc.ID]
	assert.True(t, stored.Posted)
}

func TestService_Post_AlreadyPosted(t *testing.T) {
	svc, _, _ := newTestService()

	doc := newTestTransfer()
	require.NoError(t, svc.Create(context.Background(), doc))
	require.NoError(t, svc.Post(context.Background(), doc.ID))

	err := svc.Post(context.Background(), doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDocumentPosted))
}

func TestService_Unpost_RemovesMovements(t *testing.T) {
	svc, repo, stockRepo := newTestService()

	doc := newTestTransfer()
	require.NoError(t, svc.Create(context.Background(), doc))
	require.NoError(t, svc.Post(context.Background(), doc.ID))
	require.NoError(t, svc.Unpost(context.Background(), doc.ID))

	assert.Empty(t, stockRepo.moves)
	assert.Empty(t, stockRepo.moveLines)
	assert.False(t, repo.docs[doc.ID].Posted)
}

func TestService_Unpost_NotPostedIsNoop(t *testing.T) {
	svc, _, _ := newTestService()

	doc := newTestTransfer()
	require.NoError(t, svc.Create(context.Background(), doc))
	require.NoError(t, svc.Unpost(context.Background(), doc.ID))
}

func TestService_Delete_RejectsPosted(t *testing.T) {
	svc, _, _ := newTestService()

	doc := newTestTransfer()
	require.NoError(t, svc.Create(context.Background(), doc))
	require.NoError(t, svc.Post(context.Background(), doc.ID))

	err := svc.Delete(context.Background(), doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDocumentPosted))
}
