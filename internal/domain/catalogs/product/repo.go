package product

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetMany loads live products by id. Missing ids are absent from the map.
	GetMany(ctx context.Context, ids []id.ID) (map[id.ID]*Product, error)

	// ExistsByCode checks whether another live product already uses code.
	ExistsByCode(ctx context.Context, code string, exclude id.ID) (bool, error)
}
