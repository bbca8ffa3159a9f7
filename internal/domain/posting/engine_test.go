package posting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
)

type countingTx struct{ runs int }

func (c *countingTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	c.runs++
	return fn(ctx)
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls++
	return nil
}

func setup() (*Engine, *stock.MemoryRepository, *countingInvalidator, *countingTx) {
	repo := stock.NewMemoryRepository()
	txm := &countingTx{}
	inv := &countingInvalidator{}
	ledger := stock.NewService(repo, txm)
	return NewEngine(txm, ledger, inv), repo, inv, txm
}

func TestPostReceiveThenPersist(t *testing.T) {
	engine, repo, inv, _ := setup()
	wh, p := id.New(), id.New()

	persisted := false
	err := engine.Post(context.Background(), Request{
		Entity:      "income",
		DocumentID:  id.New(),
		Effect:      lifecycle.EffectReceive,
		WarehouseID: &wh,
		Moves:       []stock.Move{{ProductID: p, Quantity: 4, Price: types.MustMoney("2")}},
	}, func(context.Context) error {
		persisted = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, persisted)
	assert.Equal(t, int64(4), repo.Quantity(wh, p))
	assert.Zero(t, inv.calls, "invalidation waits for the caller's commit")
}

func TestPostIssueFailureSkipsPersist(t *testing.T) {
	engine, repo, inv, _ := setup()
	wh, p := id.New(), id.New()
	repo.Seed(wh, p, 3, types.MustMoney("1"))

	persisted := false
	err := engine.Post(context.Background(), Request{
		Entity:      "outcome",
		DocumentID:  id.New(),
		Effect:      lifecycle.EffectIssue,
		WarehouseID: &wh,
		Moves:       []stock.Move{{ProductID: p, Quantity: 5}},
	}, func(context.Context) error {
		persisted = true
		return nil
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientStock))
	assert.False(t, persisted)
	assert.Equal(t, int64(3), repo.Quantity(wh, p))
	assert.Zero(t, inv.calls)
}

func TestPostWithoutEffectOnlyPersists(t *testing.T) {
	engine, _, inv, txm := setup()

	err := engine.Post(context.Background(), Request{Entity: "order", DocumentID: id.New(), Effect: lifecycle.EffectNone},
		func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, txm.runs)
	assert.Zero(t, inv.calls)
}

func TestPostPersistErrorIsReturned(t *testing.T) {
	engine, _, inv, _ := setup()
	wh := id.New()

	boom := errors.New("version mismatch")
	err := engine.Post(context.Background(), Request{
		Entity:      "income",
		DocumentID:  id.New(),
		Effect:      lifecycle.EffectReceive,
		WarehouseID: &wh,
		Moves:       []stock.Move{{ProductID: id.New(), Quantity: 1, Price: types.Zero()}},
	}, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, inv.calls)
}

func TestPostRequiresWarehouseAndLines(t *testing.T) {
	engine, _, _, _ := setup()

	err := engine.Post(context.Background(), Request{Entity: "income", Effect: lifecycle.EffectReceive,
		Moves: []stock.Move{{ProductID: id.New(), Quantity: 1}}}, nil)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	wh := id.New()
	err = engine.Post(context.Background(), Request{Entity: "income", Effect: lifecycle.EffectReceive, WarehouseID: &wh}, nil)
	assert.True(t, apperror.HasCode(err, apperror.CodeBusinessRule))
}

type failingInvalidator struct{}

func (failingInvalidator) Invalidate(context.Context) error {
	return errors.New("redis down")
}

func TestInvalidateNotifiesEveryInvalidator(t *testing.T) {
	inv := &countingInvalidator{}
	engine := NewEngine(nil, nil, failingInvalidator{}, inv)

	engine.Invalidate(context.Background())
	assert.Equal(t, 1, inv.calls)
}
