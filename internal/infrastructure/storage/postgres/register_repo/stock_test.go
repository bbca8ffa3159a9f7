package register_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
)

func TestLockQuery_OrdersByProduct(t *testing.T) {
	wh, p1, p2 := id.New(), id.New(), id.New()

	sql, args, err := NewStockRepo(nil).lockQuery(wh, []id.ID{p1, p2}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, warehouse_id, product_id, quantity, price, status, user_id, created_at, updated_at FROM warehouse_stock "+
			"WHERE warehouse_id = $1 AND product_id IN ($2,$3) ORDER BY product_id FOR UPDATE", sql)
	assert.Equal(t, []any{wh, p1, p2}, args)
}

func TestDecrementQuery_IsConditional(t *testing.T) {
	wh, p := id.New(), id.New()

	sql, args, err := decrementQuery(wh, p, 5).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE warehouse_stock SET quantity = quantity - $1, updated_at = NOW() "+
			"WHERE product_id = $2 AND warehouse_id = $3 AND quantity >= $4", sql)
	assert.Equal(t, []any{int64(5), p, wh, int64(5)}, args)
}

func TestIncrementQuery_Upserts(t *testing.T) {
	wh, p := id.New(), id.New()

	sql, args, err := incrementQuery(wh, p, 3, types.MustMoney("12.50"), nil).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO warehouse_stock (id,warehouse_id,product_id,quantity,price,user_id) VALUES ($1,$2,$3,$4,$5,$6) "+
			"ON CONFLICT (warehouse_id, product_id) DO UPDATE SET quantity = warehouse_stock.quantity + EXCLUDED.quantity, "+
			"price = EXCLUDED.price, updated_at = NOW()", sql)
	require.Len(t, args, 6)
	assert.Equal(t, int64(3), args[3])
	assert.True(t, types.MustMoney("12.5").Equal(args[4].(types.Money)))
}

func TestListQuery_Filters(t *testing.T) {
	cat := id.New()
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	sql, args, err := listQuery(stock.ListFilter{
		ProductName: "fridge",
		CategoryID:  &cat,
		CreatedOn:   &day,
		OnlyNonZero: true,
	}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM warehouse_stock s JOIN products p ON p.id = s.product_id JOIN warehouses w ON w.id = s.warehouse_id")
	assert.Contains(t, sql, "WHERE (p.name ILIKE $1) AND s.created_at >= $2 AND s.created_at < $3 AND p.category_id = $4 AND s.quantity <> $5")
	assert.Equal(t, []any{"%fridge%", day, day.AddDate(0, 0, 1), cat, 0}, args)
}
