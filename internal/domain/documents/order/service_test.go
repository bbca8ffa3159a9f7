package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/domain/posting"
)

func newService() *Service {
	return NewService(documents.NewMemoryRepository[*Order, Status](), documents.Deps{})
}

func TestOrderLinesDefaultToPending(t *testing.T) {
	svc := newService()
	doc := New(time.Now(), nil, id.New())
	doc.AddLine(id.New(), 2, types.MustMoney("12.5"))

	require.NoError(t, svc.Create(context.Background(), doc))
	require.Len(t, doc.Lines, 1)
	require.NotNil(t, doc.Lines[0].Status)
	assert.Equal(t, "pending", *doc.Lines[0].Status)
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("25")))
}

func TestOrderRejectsUnknownLineStatus(t *testing.T) {
	svc := newService()
	doc := New(time.Now(), nil, id.New())
	bad := "shipped"
	doc.SetLines([]documents.Line{{ProductID: id.New(), Count: 1, Price: types.MustMoney("1"), Status: &bad}})

	err := svc.Create(context.Background(), doc)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestOrderDeliveryPath(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	doc := New(time.Now(), nil, id.New())
	require.NoError(t, svc.Create(ctx, doc))

	for _, st := range []string{"collected", "sent", "delivering", "delivered"} {
		_, err := svc.ChangeStatus(ctx, doc.ID, st)
		require.NoError(t, err, st)
	}
	assert.True(t, Machine.Terminal(StatusDelivered))

	_, err := svc.ChangeStatus(ctx, doc.ID, "cancelled")
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidTransition))
	assert.Empty(t, Machine.EffectEdges())
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls++
	return nil
}

func TestOrderChangesInvalidateReports(t *testing.T) {
	inv := &countingInvalidator{}
	svc := NewService(documents.NewMemoryRepository[*Order, Status](), documents.Deps{
		Engine: posting.NewEngine(nil, nil, inv),
	})
	ctx := context.Background()

	doc := New(time.Now(), nil, id.New())
	require.NoError(t, svc.Create(ctx, doc))
	assert.Equal(t, 1, inv.calls)

	_, err := svc.ChangeStatus(ctx, doc.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)

	_, err = svc.ChangeStatus(ctx, doc.ID, "collected")
	require.Error(t, err)
	assert.Equal(t, 2, inv.calls, "failed transitions leave the cache alone")
}
