package stock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// MemoryRepository is an in-process Repository for tests and tools.
type MemoryRepository struct {
	mu   sync.Mutex
	rows map[[2]id.ID]*Row
	now  func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty ledger.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rows: make(map[[2]id.ID]*Row),
		now:  time.Now,
	}
}

// Seed puts a row with the given quantity and price.
func (r *MemoryRepository) Seed(warehouseID, productID id.ID, qty int64, price types.Money) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[[2]id.ID{warehouseID, productID}] = r.newRow(warehouseID, productID, qty, price, nil)
}

// Quantity returns the current quantity, or -1 when the row is absent.
func (r *MemoryRepository) Quantity(warehouseID, productID id.ID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[[2]id.ID{warehouseID, productID}]
	if !ok {
		return -1
	}
	return row.Quantity
}

func (r *MemoryRepository) newRow(warehouseID, productID id.ID, qty int64, price types.Money, userID *id.ID) *Row {
	now := r.now().UTC()
	return &Row{
		ID:          id.New(),
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    qty,
		Price:       price,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *MemoryRepository) GetOrCreate(_ context.Context, warehouseID, productID id.ID, userID *id.ID) (*Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]id.ID{warehouseID, productID}
	row, ok := r.rows[key]
	if !ok {
		row = r.newRow(warehouseID, productID, 0, types.Zero(), userID)
		r.rows[key] = row
	}
	cp := *row
	return &cp, nil
}

func (r *MemoryRepository) Get(_ context.Context, warehouseID, productID id.ID) (*Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[[2]id.ID{warehouseID, productID}]
	if !ok {
		return nil, apperror.NewNotFound("warehouse_stock", productID.String())
	}
	cp := *row
	return &cp, nil
}

func (r *MemoryRepository) GetForUpdate(_ context.Context, warehouseID id.ID, productIDs []id.ID) (map[id.ID]*Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[id.ID]*Row, len(productIDs))
	for _, pid := range productIDs {
		if row, ok := r.rows[[2]id.ID{warehouseID, pid}]; ok {
			cp := *row
			out[pid] = &cp
		}
	}
	return out, nil
}

func (r *MemoryRepository) Increment(_ context.Context, warehouseID, productID id.ID, qty int64, price types.Money, userID *id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]id.ID{warehouseID, productID}
	row, ok := r.rows[key]
	if !ok {
		r.rows[key] = r.newRow(warehouseID, productID, qty, price, userID)
		return nil
	}
	row.Quantity += qty
	row.Price = price
	row.UpdatedAt = r.now().UTC()
	return nil
}

func (r *MemoryRepository) Decrement(_ context.Context, warehouseID, productID id.ID, qty int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[[2]id.ID{warehouseID, productID}]
	if !ok || row.Quantity < qty {
		return false, nil
	}
	row.Quantity -= qty
	row.UpdatedAt = r.now().UTC()
	return true, nil
}

// List applies id based filters only; name, category and date filters need the catalogs.
func (r *MemoryRepository) List(_ context.Context, f ListFilter) (domain.ListResult[Item], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []Item
	for _, row := range r.rows {
		if f.WarehouseID != nil && row.WarehouseID != *f.WarehouseID {
			continue
		}
		if f.ProductID != nil && row.ProductID != *f.ProductID {
			continue
		}
		if f.UserID != nil && (row.UserID == nil || *row.UserID != *f.UserID) {
			continue
		}
		if f.OnlyNonZero && row.Quantity == 0 {
			continue
		}
		items = append(items, Item{Row: *row})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })

	res := domain.ListResult[Item]{TotalCount: int64(len(items)), Limit: f.Limit, Offset: f.Offset}
	if f.Offset < len(items) {
		items = items[f.Offset:]
	} else {
		items = nil
	}
	if f.Limit > 0 && len(items) > f.Limit {
		items = items[:f.Limit]
	}
	res.Items = items
	return res, nil
}
