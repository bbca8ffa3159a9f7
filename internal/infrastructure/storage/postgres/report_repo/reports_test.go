package report_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/reports"
)

func TestLinesQuery_Filters(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	wh, cat := id.New(), id.New()

	sql, args, err := linesQuery(outcomeTables, reports.LineQuery{
		Range:      reports.Range{From: &from, To: &to},
		Statuses:   []string{"finished"},
		Warehouses: []id.ID{wh},
		Categories: []id.ID{cat},
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM outcome_items i JOIN outcomes d ON d.id = i.document_id JOIN products p ON p.id = i.product_id")
	assert.Contains(t, sql, "LEFT JOIN warehouses w ON w.id = d.warehouse_id")
	assert.Contains(t, sql, "WHERE d.deletion_mark = $1 AND d.created_at >= $2 AND d.created_at < $3 "+
		"AND d.status IN ($4) AND d.warehouse_id IN ($5) AND p.category_id IN ($6) "+
		"ORDER BY d.created_at, d.id, i.line_no")
	assert.Equal(t, []any{false, from, to, "finished", wh, cat}, args)
}

func TestLinesQuery_OrdersHaveNoWarehouse(t *testing.T) {
	sql, _, err := linesQuery(orderTables, reports.LineQuery{}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "NULL::uuid AS warehouse_id")
	assert.NotContains(t, sql, "JOIN warehouses")

	sql, _, err = linesQuery(orderTables, reports.LineQuery{Warehouses: []id.ID{id.New()}}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "AND FALSE")
}

func TestLinesQuery_ExcludeStatuses(t *testing.T) {
	sql, args, err := linesQuery(orderTables, reports.LineQuery{ExcludeStatuses: []string{"cancelled"}}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "d.status NOT IN ($2)")
	assert.Equal(t, []any{false, "cancelled"}, args)
}

func TestHeadersQuery(t *testing.T) {
	client := id.New()

	sql, args, err := headersQuery("orders", reports.HeaderQuery{
		Statuses: []string{"cancelled"},
		Clients:  []id.ID{client},
	}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, created_at, status, client_id, total_amount FROM orders "+
			"WHERE deletion_mark = $1 AND status IN ($2) AND client_id IN ($3) ORDER BY created_at, id", sql)
	assert.Equal(t, []any{false, "cancelled", client}, args)
}

func TestPlanQuery_ValuesAtCatalogPrice(t *testing.T) {
	sql, _, err := planQuery(reports.PlanQuery{Statuses: []string{"confirmed"}}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "p.price AS product_price")
	assert.Contains(t, sql, "d.status IN ($2)")
}
