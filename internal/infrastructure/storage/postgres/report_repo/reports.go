// Package report_repo reads report facts from PostgreSQL. Queries only join
// and filter; grouping and arithmetic happen in the reports service.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/reports"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

const userName = "TRIM(COALESCE(%[1]s.first_name, '') || ' ' || COALESCE(%[1]s.last_name, ''))"

// docTables describes where the lines of one document type live.
type docTables struct {
	header       string
	lines        string
	hasWarehouse bool
}

var (
	outcomeTables = docTables{header: "outcomes", lines: "outcome_items", hasWarehouse: true}
	orderTables   = docTables{header: "orders", lines: "order_items"}
	incomeTables  = docTables{header: "incomes", lines: "income_items", hasWarehouse: true}
)

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

func (r *ReportRepo) selectAll(ctx context.Context, dst any, q squirrel.SelectBuilder, what string) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build %s query: %w", what, err)
	}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), dst, sql, args...); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

func applyRange(q squirrel.SelectBuilder, col string, rg reports.Range) squirrel.SelectBuilder {
	if rg.From != nil {
		q = q.Where(squirrel.GtOrEq{col: *rg.From})
	}
	if rg.To != nil {
		q = q.Where(squirrel.Lt{col: *rg.To})
	}
	return q
}

func whereIn[T any](q squirrel.SelectBuilder, col string, values []T) squirrel.SelectBuilder {
	if len(values) == 0 {
		return q
	}
	return q.Where(squirrel.Eq{col: values})
}

func linesQuery(t docTables, lq reports.LineQuery) squirrel.SelectBuilder {
	warehouseID, warehouseName := "NULL::uuid AS warehouse_id", "'' AS warehouse_name"
	if t.hasWarehouse {
		warehouseID, warehouseName = "d.warehouse_id", "COALESCE(w.name, '') AS warehouse_name"
	}

	q := postgres.Builder().
		Select(
			"d.id AS document_id",
			"d.created_at",
			"d.status",
			"d.client_id",
			fmt.Sprintf(userName, "c")+" AS client_name",
			warehouseID,
			warehouseName,
			"i.product_id",
			"p.name AS product_name",
			"p.unit_type",
			"p.category_id",
			"COALESCE(cat.name, '') AS category_name",
			"i.count",
			"i.price",
		).
		From(t.lines + " i").
		Join(t.header + " d ON d.id = i.document_id").
		Join("products p ON p.id = i.product_id").
		LeftJoin("categories cat ON cat.id = p.category_id").
		LeftJoin("users c ON c.id = d.client_id")
	if t.hasWarehouse {
		q = q.LeftJoin("warehouses w ON w.id = d.warehouse_id")
	}

	q = q.Where(squirrel.Eq{"d.deletion_mark": false})
	q = applyRange(q, "d.created_at", lq.Range)
	q = whereIn(q, "d.status", lq.Statuses)
	if len(lq.ExcludeStatuses) > 0 {
		q = q.Where(squirrel.NotEq{"d.status": lq.ExcludeStatuses})
	}
	if len(lq.Warehouses) > 0 {
		if !t.hasWarehouse {
			q = q.Where("FALSE")
		} else {
			q = q.Where(squirrel.Eq{"d.warehouse_id": lq.Warehouses})
		}
	}
	q = whereIn(q, "d.client_id", lq.Clients)
	q = whereIn(q, "i.product_id", lq.Products)
	q = whereIn(q, "p.category_id", lq.Categories)

	return q.OrderBy("d.created_at", "d.id", "i.line_no")
}

// OutcomeLines returns sales lines.
func (r *ReportRepo) OutcomeLines(ctx context.Context, q reports.LineQuery) ([]reports.Line, error) {
	var lines []reports.Line
	if err := r.selectAll(ctx, &lines, linesQuery(outcomeTables, q), "outcome lines"); err != nil {
		return nil, err
	}
	return lines, nil
}

// OrderLines returns order lines. Orders carry no warehouse.
func (r *ReportRepo) OrderLines(ctx context.Context, q reports.LineQuery) ([]reports.Line, error) {
	var lines []reports.Line
	if err := r.selectAll(ctx, &lines, linesQuery(orderTables, q), "order lines"); err != nil {
		return nil, err
	}
	return lines, nil
}

// IncomeLines returns receipt lines.
func (r *ReportRepo) IncomeLines(ctx context.Context, q reports.LineQuery) ([]reports.Line, error) {
	var lines []reports.Line
	if err := r.selectAll(ctx, &lines, linesQuery(incomeTables, q), "income lines"); err != nil {
		return nil, err
	}
	return lines, nil
}

func headersQuery(table string, hq reports.HeaderQuery) squirrel.SelectBuilder {
	q := postgres.Builder().
		Select("id", "created_at", "status", "client_id", "total_amount").
		From(table).
		Where(squirrel.Eq{"deletion_mark": false})
	q = applyRange(q, "created_at", hq.Range)
	q = whereIn(q, "status", hq.Statuses)
	q = whereIn(q, "client_id", hq.Clients)
	return q.OrderBy("created_at", "id")
}

// Orders returns order headers.
func (r *ReportRepo) Orders(ctx context.Context, q reports.HeaderQuery) ([]reports.Header, error) {
	var hdrs []reports.Header
	if err := r.selectAll(ctx, &hdrs, headersQuery(orderTables.header, q), "orders"); err != nil {
		return nil, err
	}
	return hdrs, nil
}

// Outcomes returns outcome headers.
func (r *ReportRepo) Outcomes(ctx context.Context, q reports.HeaderQuery) ([]reports.Header, error) {
	var hdrs []reports.Header
	if err := r.selectAll(ctx, &hdrs, headersQuery(outcomeTables.header, q), "outcomes"); err != nil {
		return nil, err
	}
	return hdrs, nil
}

func stockQuery(sq reports.StockQuery) squirrel.SelectBuilder {
	q := postgres.Builder().
		Select(
			"s.warehouse_id",
			"w.name AS warehouse_name",
			"w.responsible_id",
			fmt.Sprintf(userName, "u")+" AS responsible_name",
			"s.product_id",
			"p.name AS product_name",
			"p.unit_type",
			"p.category_id",
			"COALESCE(cat.name, '') AS category_name",
			"s.quantity",
			"s.price",
		).
		From("warehouse_stock s").
		Join("warehouses w ON w.id = s.warehouse_id").
		Join("products p ON p.id = s.product_id").
		LeftJoin("categories cat ON cat.id = p.category_id").
		LeftJoin("users u ON u.id = w.responsible_id")

	q = whereIn(q, "s.warehouse_id", sq.Warehouses)
	q = whereIn(q, "s.product_id", sq.Products)
	q = whereIn(q, "p.category_id", sq.Categories)
	return q.OrderBy("w.name", "p.name")
}

// StockRows returns ledger rows with warehouse and catalog attributes.
func (r *ReportRepo) StockRows(ctx context.Context, q reports.StockQuery) ([]reports.StockRow, error) {
	var rows []reports.StockRow
	if err := r.selectAll(ctx, &rows, stockQuery(q), "stock rows"); err != nil {
		return nil, err
	}
	return rows, nil
}

func planQuery(pq reports.PlanQuery) squirrel.SelectBuilder {
	q := postgres.Builder().
		Select(
			"d.id AS plan_id",
			"d.created_at",
			"d.period",
			"d.client_id AS dealer_id",
			fmt.Sprintf(userName, "c")+" AS dealer_name",
			"i.product_id",
			"i.count",
			"p.price AS product_price",
		).
		From("plan_items i").
		Join("plans d ON d.id = i.document_id").
		Join("products p ON p.id = i.product_id").
		LeftJoin("users c ON c.id = d.client_id").
		Where(squirrel.Eq{"d.deletion_mark": false})

	q = applyRange(q, "d.created_at", pq.Created)
	q = whereIn(q, "d.status", pq.Statuses)
	q = whereIn(q, "d.client_id", pq.Dealers)
	return q.OrderBy("d.created_at", "d.id", "i.line_no")
}

// PlanItems returns plan lines valued at the current catalog price.
func (r *ReportRepo) PlanItems(ctx context.Context, q reports.PlanQuery) ([]reports.PlanItem, error) {
	var items []reports.PlanItem
	if err := r.selectAll(ctx, &items, planQuery(q), "plan items"); err != nil {
		return nil, err
	}
	return items, nil
}

// WarehouseExists reports whether a live warehouse exists.
func (r *ReportRepo) WarehouseExists(ctx context.Context, warehouseID id.ID) (bool, error) {
	var exists bool
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM warehouses WHERE id = $1 AND deletion_mark = false)",
		warehouseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("warehouse exists: %w", err)
	}
	return exists, nil
}
