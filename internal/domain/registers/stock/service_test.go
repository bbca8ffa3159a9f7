package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
)

type countingRecorder struct {
	calls map[string]int
}

func (c *countingRecorder) LedgerMutation(effect, result string) {
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[effect+"/"+result]++
}

func newTestService() (*Service, *MemoryRepository, *countingRecorder) {
	repo := NewMemoryRepository()
	rec := &countingRecorder{}
	return NewService(repo, nil).WithRecorder(rec), repo, rec
}

func TestReceiveCreatesAndIncrements(t *testing.T) {
	svc, repo, rec := newTestService()
	ctx := context.Background()
	wh, p1, p2 := id.New(), id.New(), id.New()

	err := svc.Receive(ctx, wh, []Move{
		{ProductID: p1, Quantity: 5, Price: types.MustMoney("10.00")},
		{ProductID: p2, Quantity: 2, Price: types.MustMoney("3.50")},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.Quantity(wh, p1))
	assert.Equal(t, int64(2), repo.Quantity(wh, p2))

	err = svc.Receive(ctx, wh, []Move{{ProductID: p1, Quantity: 1, Price: types.MustMoney("12.00")}}, nil)
	require.NoError(t, err)

	row, err := svc.Get(ctx, wh, p1)
	require.NoError(t, err)
	assert.Equal(t, int64(6), row.Quantity)
	assert.True(t, row.Price.Equal(types.MustMoney("12.00")), "price is overwritten by the last receipt")
	assert.Equal(t, 2, rec.calls["receive/ok"])
}

func TestReceiveLastLinePriceWins(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	wh, p := id.New(), id.New()

	require.NoError(t, svc.Receive(ctx, wh, []Move{
		{ProductID: p, Quantity: 1, Price: types.MustMoney("5")},
		{ProductID: p, Quantity: 2, Price: types.MustMoney("7")},
	}, nil))

	row, err := repo.Get(ctx, wh, p)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row.Quantity)
	assert.True(t, row.Price.Equal(types.MustMoney("7")))
}

func TestIssueInsufficientStockLeavesLedgerUnchanged(t *testing.T) {
	svc, repo, rec := newTestService()
	ctx := context.Background()
	wh, p1, p2 := id.New(), id.New(), id.New()
	repo.Seed(wh, p1, 10, types.MustMoney("1"))
	repo.Seed(wh, p2, 3, types.MustMoney("1"))

	err := svc.Issue(ctx, wh, []Move{
		{ProductID: p1, Quantity: 4},
		{ProductID: p2, Quantity: 5},
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientStock))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(3), appErr.Details["have"])
	assert.Equal(t, int64(5), appErr.Details["need"])

	assert.Equal(t, int64(10), repo.Quantity(wh, p1))
	assert.Equal(t, int64(3), repo.Quantity(wh, p2))
	assert.Equal(t, 1, rec.calls["issue/insufficient_stock"])
}

func TestIssueSumsLinesOfSameProduct(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	wh, p := id.New(), id.New()
	repo.Seed(wh, p, 5, types.MustMoney("1"))

	err := svc.Issue(ctx, wh, []Move{{ProductID: p, Quantity: 3}, {ProductID: p, Quantity: 3}})
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientStock))
	assert.Equal(t, int64(5), repo.Quantity(wh, p))

	require.NoError(t, svc.Issue(ctx, wh, []Move{{ProductID: p, Quantity: 2}, {ProductID: p, Quantity: 3}}))
	assert.Equal(t, int64(0), repo.Quantity(wh, p))
}

func TestIssueMissingRow(t *testing.T) {
	svc, _, rec := newTestService()

	err := svc.Decrement(context.Background(), id.New(), id.New(), 1)
	assert.True(t, apperror.HasCode(err, apperror.CodeStockNotFound))
	assert.Equal(t, 1, rec.calls["issue/stock_not_found"])
}

func TestGetOrCreateStartsAtZero(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	wh, p := id.New(), id.New()

	_, err := svc.Get(ctx, wh, p)
	assert.True(t, apperror.HasCode(err, apperror.CodeStockNotFound))

	row, err := svc.GetOrCreate(ctx, wh, p, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), row.Quantity)

	again, err := svc.GetOrCreate(ctx, wh, p, nil)
	require.NoError(t, err)
	assert.Equal(t, row.ID, again.ID)
}

func TestMovesAreValidated(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Increment(context.Background(), id.New(), id.New(), 0, types.Zero(), nil)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	err = svc.Increment(context.Background(), id.New(), id.New(), 1, types.MustMoney("-1"), nil)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}
