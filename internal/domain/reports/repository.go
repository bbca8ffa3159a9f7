package reports

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
)

// Range is a half-open interval of instants [From, To). Nil ends are open.
type Range struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && !t.Before(*r.To) {
		return false
	}
	return true
}

// LineQuery selects document lines joined with their header and catalogs.
type LineQuery struct {
	Range           Range
	Statuses        []string
	ExcludeStatuses []string
	Warehouses      []id.ID
	Clients         []id.ID
	Products        []id.ID
	Categories      []id.ID
}

// HeaderQuery selects document headers.
type HeaderQuery struct {
	Range    Range
	Statuses []string
	Clients  []id.ID
}

// StockQuery selects ledger rows.
type StockQuery struct {
	Warehouses []id.ID
	Products   []id.ID
	Categories []id.ID
}

// PlanQuery selects plan items. Created bounds the plan creation instant;
// year and month are resolved by the service in the report timezone.
type PlanQuery struct {
	Created  Range
	Statuses []string
	Dealers  []id.ID
}

// Line is one document line with the header and catalog attributes the
// reports group by.
type Line struct {
	DocumentID    id.ID       `db:"document_id"`
	CreatedAt     time.Time   `db:"created_at"`
	Status        string      `db:"status"`
	ClientID      *id.ID      `db:"client_id"`
	ClientName    string      `db:"client_name"`
	WarehouseID   *id.ID      `db:"warehouse_id"`
	WarehouseName string      `db:"warehouse_name"`
	ProductID     id.ID       `db:"product_id"`
	ProductName   string      `db:"product_name"`
	UnitType      string      `db:"unit_type"`
	CategoryID    *id.ID      `db:"category_id"`
	CategoryName  string      `db:"category_name"`
	Count         int64       `db:"count"`
	Price         types.Money `db:"price"`
}

// Amount is count × price.
func (l Line) Amount() types.Money {
	return types.LineAmount(l.Count, l.Price)
}

// Header is a document header.
type Header struct {
	ID          id.ID       `db:"id"`
	CreatedAt   time.Time   `db:"created_at"`
	Status      string      `db:"status"`
	ClientID    *id.ID      `db:"client_id"`
	TotalAmount types.Money `db:"total_amount"`
}

// StockRow is a ledger row with warehouse and catalog attributes.
type StockRow struct {
	WarehouseID     id.ID       `db:"warehouse_id"`
	WarehouseName   string      `db:"warehouse_name"`
	ResponsibleID   *id.ID      `db:"responsible_id"`
	ResponsibleName string      `db:"responsible_name"`
	ProductID       id.ID       `db:"product_id"`
	ProductName     string      `db:"product_name"`
	UnitType        string      `db:"unit_type"`
	CategoryID      *id.ID      `db:"category_id"`
	CategoryName    string      `db:"category_name"`
	Quantity        int64       `db:"quantity"`
	Price           types.Money `db:"price"`
}

// PlanItem is one plan line valued at the current catalog price.
type PlanItem struct {
	PlanID       id.ID       `db:"plan_id"`
	CreatedAt    time.Time   `db:"created_at"`
	Period       int         `db:"period"`
	DealerID     id.ID       `db:"dealer_id"`
	DealerName   string      `db:"dealer_name"`
	ProductID    id.ID       `db:"product_id"`
	Count        int64       `db:"count"`
	ProductPrice types.Money `db:"product_price"`
}

// Repository reads report facts. Implementations only filter; grouping and
// arithmetic belong to the service.
type Repository interface {
	OutcomeLines(ctx context.Context, q LineQuery) ([]Line, error)
	OrderLines(ctx context.Context, q LineQuery) ([]Line, error)
	IncomeLines(ctx context.Context, q LineQuery) ([]Line, error)

	Orders(ctx context.Context, q HeaderQuery) ([]Header, error)
	Outcomes(ctx context.Context, q HeaderQuery) ([]Header, error)

	StockRows(ctx context.Context, q StockQuery) ([]StockRow, error)
	PlanItems(ctx context.Context, q PlanQuery) ([]PlanItem, error)

	WarehouseExists(ctx context.Context, warehouseID id.ID) (bool, error)
}
