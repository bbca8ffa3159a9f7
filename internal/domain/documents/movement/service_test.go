package movement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/domain/posting"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
)

func newService(ledger *stock.MemoryRepository) *Service {
	return NewService(documents.NewMemoryRepository[*Movement, Status](), documents.Deps{
		TxManager: tx.Nop{},
		Engine:    posting.NewEngine(tx.Nop{}, stock.NewService(ledger, tx.Nop{})),
		Clock:     clock.Fixed(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestMovementWalkDoesNotTouchLedger(t *testing.T) {
	ledger := stock.NewMemoryRepository()
	svc := newService(ledger)
	ctx := context.Background()
	from, to, p := id.New(), id.New(), id.New()
	ledger.Seed(from, p, 7, types.MustMoney("2"))

	doc := New(time.Now(), nil, from, to)
	doc.AddLine(p, 5, types.MustMoney("9"))
	require.NoError(t, svc.Create(ctx, doc))
	assert.True(t, doc.TotalAmount.IsZero(), "movement lines carry no price")

	for _, st := range []string{"collected", "sent", "received", "finished"} {
		_, err := svc.ChangeStatus(ctx, doc.ID, st)
		require.NoError(t, err, st)
	}
	assert.Equal(t, int64(7), ledger.Quantity(from, p))
	assert.Equal(t, int64(-1), ledger.Quantity(to, p))
}

func TestMovementRejectsSkippedSteps(t *testing.T) {
	svc := newService(stock.NewMemoryRepository())
	ctx := context.Background()

	doc := New(time.Now(), nil, id.New(), id.New())
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.ChangeStatus(ctx, doc.ID, "received")
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidTransition))
}

func TestConfirmedCancelIsDeletable(t *testing.T) {
	svc := newService(stock.NewMemoryRepository())
	ctx := context.Background()

	doc := New(time.Now(), nil, id.New(), id.New())
	require.NoError(t, svc.Create(ctx, doc))
	_, err := svc.ChangeStatus(ctx, doc.ID, "collected")
	require.NoError(t, err)
	assert.True(t, apperror.HasCode(svc.Delete(ctx, doc.ID), apperror.CodeDocumentLocked))

	_, err = svc.ChangeStatus(ctx, doc.ID, "cancelled")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(ctx, doc.ID, "confirmed_cancel")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, doc.ID))
}

func TestMovementNeedsTwoWarehouses(t *testing.T) {
	svc := newService(stock.NewMemoryRepository())
	wh := id.New()

	err := svc.Create(context.Background(), New(time.Now(), nil, wh, wh))
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}
