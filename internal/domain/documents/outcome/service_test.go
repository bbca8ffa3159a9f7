package outcome

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
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/product"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/domain/posting"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
)

var testNow = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

type knownIDs map[id.ID]bool

func (k knownIDs) RequireExists(_ context.Context, entityID id.ID) error {
	if !k[entityID] {
		return apperror.NewNotFound("entity", entityID.String())
	}
	return nil
}

type catalog map[id.ID]*product.Product

func (c catalog) GetMany(_ context.Context, ids []id.ID) (map[id.ID]*product.Product, error) {
	out := make(map[id.ID]*product.Product, len(ids))
	for _, pid := range ids {
		p, ok := c[pid]
		if !ok {
			return nil, apperror.NewNotFound("product", pid.String())
		}
		out[pid] = p
	}
	return out, nil
}

type busyLocker struct{}

func (busyLocker) Obtain(_ context.Context, key string) (func(), error) {
	return nil, apperror.NewConflict("document is being changed").WithDetail("key", key)
}

type fixture struct {
	svc      *Service
	ledger   *stock.MemoryRepository
	wh       id.ID
	client   id.ID
	products catalog
}

func newFixture(locker documents.Locker) *fixture {
	f := &fixture{wh: id.New(), client: id.New(), products: catalog{}}
	f.ledger = stock.NewMemoryRepository()
	ledger := stock.NewService(f.ledger, tx.Nop{})
	f.svc = NewService(documents.NewMemoryRepository[*Outcome, Status](), documents.Deps{
		TxManager: tx.Nop{},
		Engine:    posting.NewEngine(tx.Nop{}, ledger),
		Locker:    locker,
		Clock:     clock.Fixed(testNow),
		Refs: documents.References{
			Users:      knownIDs{f.client: true},
			Warehouses: knownIDs{f.wh: true},
			Products:   f.products,
		},
	})
	return f
}

func (f *fixture) product(price string) id.ID {
	p := &product.Product{Price: types.MustMoney(price)}
	p.ID = id.New()
	f.products[p.ID] = p
	return p.ID
}

func (f *fixture) newOutcome() *Outcome {
	wh := f.wh
	return New(testNow, nil, f.client, &wh)
}

func TestFinishDecrementsLedger(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	p := f.product("4")
	f.ledger.Seed(f.wh, p, 10, types.MustMoney("4"))

	doc := f.newOutcome()
	doc.AddLine(p, 3, types.Zero())
	doc.AddLine(p, 4, types.MustMoney("5"))
	require.NoError(t, f.svc.Create(ctx, doc))
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("32")), "zero price takes the catalog price")

	_, err := f.svc.ChangeStatus(ctx, doc.ID, "finished")
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.ledger.Quantity(f.wh, p))
}

func TestInsufficientStockLeavesDocumentAndLedger(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	p := f.product("1")
	f.ledger.Seed(f.wh, p, 3, types.MustMoney("1"))

	doc := f.newOutcome()
	doc.AddLine(p, 5, types.MustMoney("1"))
	require.NoError(t, f.svc.Create(ctx, doc))

	_, err := f.svc.ChangeStatus(ctx, doc.ID, "finished")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientStock))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(3), appErr.Details["have"])
	assert.Equal(t, int64(5), appErr.Details["need"])

	assert.Equal(t, int64(3), f.ledger.Quantity(f.wh, p))
	got, err := f.svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}

func TestFinishWithoutLedgerRow(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	p := f.product("1")

	doc := f.newOutcome()
	doc.AddLine(p, 1, types.MustMoney("1"))
	require.NoError(t, f.svc.Create(ctx, doc))

	_, err := f.svc.ChangeStatus(ctx, doc.ID, "finished")
	assert.True(t, apperror.HasCode(err, apperror.CodeStockNotFound))
}

func TestFinishRequiresWarehouse(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	doc := New(testNow, nil, f.client, nil)
	doc.AddLine(f.product("1"), 1, types.MustMoney("1"))
	require.NoError(t, f.svc.Create(ctx, doc))

	_, err := f.svc.ChangeStatus(ctx, doc.ID, "finished")
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestUnknownReferences(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	doc := New(testNow, nil, id.New(), nil)
	err := f.svc.Create(ctx, doc)
	require.True(t, apperror.IsNotFound(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "clientId", appErr.Details["field"])

	doc = f.newOutcome()
	doc.AddLine(id.New(), 1, types.MustMoney("1"))
	assert.True(t, apperror.IsNotFound(f.svc.Create(ctx, doc)))
}

func TestStatusChangeHeldByAnotherHolder(t *testing.T) {
	f := newFixture(busyLocker{})
	ctx := context.Background()

	doc := f.newOutcome()
	require.NoError(t, f.svc.Create(ctx, doc))

	_, err := f.svc.ChangeStatus(ctx, doc.ID, "active")
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
}
