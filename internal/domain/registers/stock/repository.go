package stock

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// Repository defines operations for the warehouse ledger.
// Mutating methods expect to run inside the caller's transaction.
type Repository interface {
	// GetOrCreate returns the row, inserting it with quantity 0 when missing.
	GetOrCreate(ctx context.Context, warehouseID, productID id.ID, userID *id.ID) (*Row, error)

	// Get returns the row or a NotFound error.
	Get(ctx context.Context, warehouseID, productID id.ID) (*Row, error)

	// GetForUpdate locks the existing rows of the given products in product id
	// order. Products without a row are absent from the result.
	GetForUpdate(ctx context.Context, warehouseID id.ID, productIDs []id.ID) (map[id.ID]*Row, error)

	// Increment adds qty, creating the row when missing, and overwrites the price.
	Increment(ctx context.Context, warehouseID, productID id.ID, qty int64, price types.Money, userID *id.ID) error

	// Decrement subtracts qty only when quantity >= qty. It reports whether a row was changed.
	Decrement(ctx context.Context, warehouseID, productID id.ID, qty int64) (bool, error)

	// List returns rows with display names.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[Item], error)
}
