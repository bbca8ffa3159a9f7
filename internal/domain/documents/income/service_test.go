package income

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/domain/posting"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
)

var testNow = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	repo   *documents.MemoryRepository[*Income, Status]
	ledger *stock.MemoryRepository
	wh     id.ID
}

func newFixture() *fixture {
	ledgerRepo := stock.NewMemoryRepository()
	ledger := stock.NewService(ledgerRepo, tx.Nop{})
	repo := documents.NewMemoryRepository[*Income, Status]()
	svc := NewService(repo, documents.Deps{
		TxManager: tx.Nop{},
		Engine:    posting.NewEngine(tx.Nop{}, ledger),
		Clock:     clock.Fixed(testNow),
	})
	return &fixture{svc: svc, repo: repo, ledger: ledgerRepo, wh: id.New()}
}

func (f *fixture) newIncome() *Income {
	wh := f.wh
	return New(testNow, nil, id.New(), &wh)
}

func TestIncomeTotalIsExact(t *testing.T) {
	f := newFixture()
	doc := f.newIncome()
	doc.AddLine(id.New(), 5, types.MustMoney("10.00"))
	doc.AddLine(id.New(), 2, types.MustMoney("3.50"))

	require.NoError(t, f.svc.Create(context.Background(), doc))
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("57.00")), doc.TotalAmount.String())
	assert.Equal(t, StatusPending, doc.Status)
}

func TestFinishIncrementsLedgerOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p1, p2 := id.New(), id.New()

	doc := f.newIncome()
	doc.AddLine(p1, 5, types.MustMoney("10"))
	doc.AddLine(p2, 2, types.MustMoney("3.50"))
	doc.AddLine(p1, 1, types.MustMoney("11"))
	require.NoError(t, f.svc.Create(ctx, doc))

	_, err := f.svc.ChangeStatus(ctx, doc.ID, "active")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), f.ledger.Quantity(f.wh, p1), "active has no ledger effect")

	finished, err := f.svc.ChangeStatus(ctx, doc.ID, "finished")
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, finished.Status)
	assert.Equal(t, int64(6), f.ledger.Quantity(f.wh, p1))
	assert.Equal(t, int64(2), f.ledger.Quantity(f.wh, p2))

	// re-saving a finished document is a no-op
	_, err = f.svc.ChangeStatus(ctx, doc.ID, "finished")
	require.NoError(t, err)
	assert.Equal(t, int64(6), f.ledger.Quantity(f.wh, p1))

	row, err := f.ledger.Get(ctx, f.wh, p1)
	require.NoError(t, err)
	assert.True(t, row.Price.Equal(types.MustMoney("11")))
}

func TestFinishedIncomeIsLocked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := f.newIncome()
	doc.AddLine(id.New(), 1, types.MustMoney("1"))
	require.NoError(t, f.svc.Create(ctx, doc))
	_, err := f.svc.ChangeStatus(ctx, doc.ID, "finished")
	require.NoError(t, err)

	edit := f.newIncome()
	edit.ID = doc.ID
	edit.AddLine(id.New(), 9, types.MustMoney("1"))
	err = f.svc.Update(ctx, edit)
	assert.True(t, apperror.HasCode(err, apperror.CodeDocumentLocked))

	err = f.svc.Delete(ctx, doc.ID)
	assert.True(t, apperror.HasCode(err, apperror.CodeDocumentLocked))

	_, err = f.svc.ChangeStatus(ctx, doc.ID, "pending")
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidTransition))

	_, err = f.svc.ChangeStatus(ctx, doc.ID, "archived")
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestCreateFinishedPostsThroughTransition(t *testing.T) {
	f := newFixture()
	p := id.New()

	doc := f.newIncome()
	doc.Status = StatusFinished
	doc.AddLine(p, 3, types.MustMoney("2"))
	require.NoError(t, f.svc.Create(context.Background(), doc))

	assert.Equal(t, StatusFinished, doc.Status)
	assert.Equal(t, int64(3), f.ledger.Quantity(f.wh, p))
}

func TestUpdateWhilePendingRecomputesTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := f.newIncome()
	doc.AddLine(id.New(), 1, types.MustMoney("1"))
	require.NoError(t, f.svc.Create(ctx, doc))

	edit := f.newIncome()
	edit.ID = doc.ID
	edit.Comment = "corrected"
	edit.AddLine(id.New(), 4, types.MustMoney("2.25"))
	require.NoError(t, f.svc.Update(ctx, edit))

	got, err := f.svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(types.MustMoney("9")))
	assert.Equal(t, "corrected", got.Comment)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Version)

	stale := f.newIncome()
	stale.ID = doc.ID
	stale.Version = 1
	err = f.svc.Update(ctx, stale)
	assert.True(t, apperror.HasCode(err, apperror.CodeConcurrentModification))
}

func TestUpdateWithStatusPostsEditedLines(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := id.New()

	doc := f.newIncome()
	doc.AddLine(p, 1, types.MustMoney("1"))
	require.NoError(t, f.svc.Create(ctx, doc))

	edit := f.newIncome()
	edit.ID = doc.ID
	edit.AddLine(p, 6, types.MustMoney("1"))
	require.NoError(t, f.svc.UpdateWithStatus(ctx, edit, "finished"))

	assert.Equal(t, StatusFinished, edit.Status)
	assert.Equal(t, int64(6), f.ledger.Quantity(f.wh, p))

	got, err := f.svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, got.Status)
}

func TestUpdateWithSameStatusOnlyEdits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := id.New()

	doc := f.newIncome()
	doc.AddLine(p, 1, types.MustMoney("1"))
	require.NoError(t, f.svc.Create(ctx, doc))

	edit := f.newIncome()
	edit.ID = doc.ID
	edit.AddLine(p, 2, types.MustMoney("1"))
	require.NoError(t, f.svc.UpdateWithStatus(ctx, edit, "pending"))
	assert.Equal(t, StatusPending, edit.Status)
	assert.Equal(t, int64(-1), f.ledger.Quantity(f.wh, p))

	err := f.svc.UpdateWithStatus(ctx, edit, "archived")
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestCancelledIncomeCanBeDeleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := f.newIncome()
	require.NoError(t, f.svc.Create(ctx, doc))
	_, err := f.svc.ChangeStatus(ctx, doc.ID, "cancelled")
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, doc.ID))

	_, err = f.svc.GetByID(ctx, doc.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestOnlyFinishEdgesReceive(t *testing.T) {
	edges := Machine.EffectEdges()
	require.Len(t, edges, 2)
	for _, e := range edges {
		assert.Equal(t, StatusFinished, e.To)
		assert.Equal(t, lifecycle.EffectReceive, e.Effect)
	}
	assert.True(t, Machine.Terminal(StatusFinished))
	assert.True(t, Machine.Terminal(StatusCancelled))
}
