// Package register_repo provides the PostgreSQL warehouse ledger.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

const stockTable = "warehouse_stock"

var (
	rowCols = postgres.ExtractDBColumns[stock.Row]()

	_ stock.Repository = (*StockRepo)(nil)
)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txm *postgres.TxManager
}

// NewStockRepo creates a new ledger repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{txm: txm}
}

func (r *StockRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

func (r *StockRepo) rowQuery(warehouseID id.ID) squirrel.SelectBuilder {
	return postgres.Builder().
		Select(rowCols...).
		From(stockTable).
		Where(squirrel.Eq{"warehouse_id": warehouseID})
}

// GetOrCreate returns the row, inserting it with quantity 0 when missing.
func (r *StockRepo) GetOrCreate(ctx context.Context, warehouseID, productID id.ID, userID *id.ID) (*stock.Row, error) {
	sql, args, err := postgres.Builder().
		Insert(stockTable).
		Columns("id", "warehouse_id", "product_id", "quantity", "price", "user_id").
		Values(id.New(), warehouseID, productID, 0, types.Zero(), userID).
		Suffix("ON CONFLICT (warehouse_id, product_id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("insert stock row: %w", postgres.MapConstraintError(err, stockTable))
	}
	return r.Get(ctx, warehouseID, productID)
}

// Get returns the row or a NotFound error.
func (r *StockRepo) Get(ctx context.Context, warehouseID, productID id.ID) (*stock.Row, error) {
	sql, args, err := r.rowQuery(warehouseID).
		Where(squirrel.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row stock.Row
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(stockTable, productID.String())
		}
		return nil, fmt.Errorf("get stock row: %w", err)
	}
	return &row, nil
}

func (r *StockRepo) lockQuery(warehouseID id.ID, productIDs []id.ID) squirrel.SelectBuilder {
	return r.rowQuery(warehouseID).
		Where(squirrel.Eq{"product_id": productIDs}).
		OrderBy("product_id").
		Suffix("FOR UPDATE")
}

// GetForUpdate locks the existing rows of productIDs in product id order.
func (r *StockRepo) GetForUpdate(ctx context.Context, warehouseID id.ID, productIDs []id.ID) (map[id.ID]*stock.Row, error) {
	out := make(map[id.ID]*stock.Row, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	sql, args, err := r.lockQuery(warehouseID, productIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*stock.Row
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("lock stock rows: %w", err)
	}
	for _, row := range rows {
		out[row.ProductID] = row
	}
	return out, nil
}

func incrementQuery(warehouseID, productID id.ID, qty int64, price types.Money, userID *id.ID) squirrel.InsertBuilder {
	return postgres.Builder().
		Insert(stockTable).
		Columns("id", "warehouse_id", "product_id", "quantity", "price", "user_id").
		Values(id.New(), warehouseID, productID, qty, price, userID).
		Suffix("ON CONFLICT (warehouse_id, product_id) DO UPDATE SET " +
			"quantity = " + stockTable + ".quantity + EXCLUDED.quantity, " +
			"price = EXCLUDED.price, updated_at = NOW()")
}

// Increment adds qty, creating the row when missing, and overwrites the price.
func (r *StockRepo) Increment(ctx context.Context, warehouseID, productID id.ID, qty int64, price types.Money, userID *id.ID) error {
	sql, args, err := incrementQuery(warehouseID, productID, qty, price, userID).ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("increment stock: %w", postgres.MapConstraintError(err, stockTable))
	}
	return nil
}

func decrementQuery(warehouseID, productID id.ID, qty int64) squirrel.UpdateBuilder {
	return postgres.Builder().
		Update(stockTable).
		Set("quantity", squirrel.Expr("quantity - ?", qty)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"warehouse_id": warehouseID, "product_id": productID}).
		Where(squirrel.GtOrEq{"quantity": qty})
}

// Decrement subtracts qty only when quantity >= qty.
func (r *StockRepo) Decrement(ctx context.Context, warehouseID, productID id.ID, qty int64) (bool, error) {
	sql, args, err := decrementQuery(warehouseID, productID, qty).ToSql()
	if err != nil {
		return false, fmt.Errorf("build update: %w", err)
	}
	tag, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func listQuery(f stock.ListFilter) squirrel.SelectBuilder {
	cols := make([]string, 0, len(rowCols)+4)
	for _, c := range rowCols {
		cols = append(cols, "s."+c)
	}
	cols = append(cols,
		"p.name AS product_name",
		"w.name AS warehouse_name",
		"p.category_id",
		"p.unit_type",
	)

	q := postgres.Builder().
		Select(cols...).
		From(stockTable + " s").
		Join("products p ON p.id = s.product_id").
		Join("warehouses w ON w.id = s.warehouse_id")

	if f.ProductID != nil {
		q = q.Where(squirrel.Eq{"s.product_id": *f.ProductID})
	}
	q = postgres.Search(q, f.ProductName, "p.name")
	if f.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"s.warehouse_id": *f.WarehouseID})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"s.status": *f.Status})
	}
	if f.CreatedOn != nil {
		day := *f.CreatedOn
		q = q.Where(squirrel.GtOrEq{"s.created_at": day}).
			Where(squirrel.Lt{"s.created_at": day.AddDate(0, 0, 1)})
	}
	if f.UserID != nil {
		q = q.Where(squirrel.Eq{"s.user_id": *f.UserID})
	}
	if f.CategoryID != nil {
		q = q.Where(squirrel.Eq{"p.category_id": *f.CategoryID})
	}
	if f.OnlyNonZero {
		q = q.Where(squirrel.NotEq{"s.quantity": 0})
	}
	return q
}

// List returns rows with display names.
func (r *StockRepo) List(ctx context.Context, f stock.ListFilter) (domain.ListResult[stock.Item], error) {
	page := domain.ListFilter{Limit: f.Limit, Offset: f.Offset}
	page.Normalize()
	result := domain.ListResult[stock.Item]{
		Items:  make([]stock.Item, 0),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	q := listQuery(f)

	countSQL, countArgs, err := postgres.Builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count stock: %w", err)
	}

	sql, args, err := postgres.Page(q.OrderBy("w.name", "p.name", "s.id"), page.Limit, page.Offset).ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list stock: %w", err)
	}
	return result, nil
}
