// Package stock provides the warehouse ledger: one row per (warehouse, product)
// holding the current quantity and the last known unit price.
package stock

import (
	"sort"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
)

// Row is one ledger entry. Quantity never goes below zero.
type Row struct {
	ID          id.ID       `db:"id" json:"id"`
	WarehouseID id.ID       `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID       `db:"product_id" json:"productId"`
	Quantity    int64       `db:"quantity" json:"quantity"`
	Price       types.Money `db:"price" json:"price"`
	Status      *string     `db:"status" json:"status,omitempty"`
	UserID      *id.ID      `db:"user_id" json:"userId,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// Value is quantity × price.
func (r *Row) Value() types.Money {
	return types.LineAmount(r.Quantity, r.Price)
}

// Item is a ledger row joined with display names for list endpoints.
type Item struct {
	Row
	ProductName   string `db:"product_name" json:"productName"`
	WarehouseName string `db:"warehouse_name" json:"warehouseName"`
	CategoryID    id.ID  `db:"category_id" json:"categoryId"`
	UnitType      string `db:"unit_type" json:"unitType"`
}

// Move is one product quantity applied to a warehouse.
type Move struct {
	ProductID id.ID
	Quantity  int64
	Price     types.Money
}

// ListFilter narrows ledger listings. Nil fields are not applied.
type ListFilter struct {
	ProductID   *id.ID
	ProductName string // case-insensitive substring
	WarehouseID *id.ID
	Status      *string
	CreatedOn   *time.Time // calendar date of the row creation
	UserID      *id.ID
	CategoryID  *id.ID
	OnlyNonZero bool

	Limit  int
	Offset int
}

// aggregate sums quantities per product and keeps the price of the last move
// for that product. The result is ordered by product id so that row locks are
// always taken in the same order.
func aggregate(moves []Move) []Move {
	byProduct := make(map[id.ID]*Move, len(moves))
	for _, m := range moves {
		if agg, ok := byProduct[m.ProductID]; ok {
			agg.Quantity += m.Quantity
			agg.Price = m.Price
			continue
		}
		cp := m
		byProduct[m.ProductID] = &cp
	}

	out := make([]Move, 0, len(byProduct))
	for _, m := range byProduct {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProductID.String() < out[j].ProductID.String()
	})
	return out
}

func productIDs(moves []Move) []id.ID {
	ids := make([]id.ID, len(moves))
	for i, m := range moves {
		ids[i] = m.ProductID
	}
	return ids
}
