package reports

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
)

// memRepo filters facts the way the SQL repository does.
type memRepo struct {
	outcomes   []Line
	orders     []Line
	incomes    []Line
	orderHdrs  []Header
	outHdrs    []Header
	stock      []StockRow
	plans      []PlanItem
	warehouses map[id.ID]bool
	calls      int
}

func containsID(ids []id.ID, v *id.ID) bool {
	if len(ids) == 0 {
		return true
	}
	if v == nil {
		return false
	}
	for _, x := range ids {
		if x == *v {
			return true
		}
	}
	return false
}

func containsStr(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func filterLines(lines []Line, q LineQuery) []Line {
	var out []Line
	for _, l := range lines {
		if !q.Range.Contains(l.CreatedAt) {
			continue
		}
		if len(q.Statuses) > 0 && !containsStr(q.Statuses, l.Status) {
			continue
		}
		if containsStr(q.ExcludeStatuses, l.Status) {
			continue
		}
		pid := l.ProductID
		if !containsID(q.Warehouses, l.WarehouseID) || !containsID(q.Clients, l.ClientID) ||
			!containsID(q.Products, &pid) || !containsID(q.Categories, l.CategoryID) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func filterHeaders(hdrs []Header, q HeaderQuery) []Header {
	var out []Header
	for _, h := range hdrs {
		if !q.Range.Contains(h.CreatedAt) {
			continue
		}
		if len(q.Statuses) > 0 && !containsStr(q.Statuses, h.Status) {
			continue
		}
		if !containsID(q.Clients, h.ClientID) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (r *memRepo) OutcomeLines(_ context.Context, q LineQuery) ([]Line, error) {
	r.calls++
	return filterLines(r.outcomes, q), nil
}

func (r *memRepo) OrderLines(_ context.Context, q LineQuery) ([]Line, error) {
	r.calls++
	return filterLines(r.orders, q), nil
}

func (r *memRepo) IncomeLines(_ context.Context, q LineQuery) ([]Line, error) {
	r.calls++
	return filterLines(r.incomes, q), nil
}

func (r *memRepo) Orders(_ context.Context, q HeaderQuery) ([]Header, error) {
	r.calls++
	return filterHeaders(r.orderHdrs, q), nil
}

func (r *memRepo) Outcomes(_ context.Context, q HeaderQuery) ([]Header, error) {
	r.calls++
	return filterHeaders(r.outHdrs, q), nil
}

func (r *memRepo) StockRows(_ context.Context, q StockQuery) ([]StockRow, error) {
	r.calls++
	var out []StockRow
	for _, s := range r.stock {
		wh, pid := s.WarehouseID, s.ProductID
		if containsID(q.Warehouses, &wh) && containsID(q.Products, &pid) && containsID(q.Categories, s.CategoryID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepo) PlanItems(_ context.Context, q PlanQuery) ([]PlanItem, error) {
	r.calls++
	var out []PlanItem
	for _, p := range r.plans {
		dealer := p.DealerID
		if q.Created.Contains(p.CreatedAt) && containsID(q.Dealers, &dealer) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memRepo) WarehouseExists(_ context.Context, warehouseID id.ID) (bool, error) {
	return r.warehouses[warehouseID], nil
}

// sale builds a finished outcome line.
func sale(doc id.ID, at string, product id.ID, name string, count int64, price string) Line {
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		panic(err)
	}
	return Line{
		DocumentID:  doc,
		CreatedAt:   t,
		Status:      "finished",
		ProductID:   product,
		ProductName: name,
		Count:       count,
		Price:       types.MustMoney(price),
	}
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}
