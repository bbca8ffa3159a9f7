package warehouse

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// Repository defines the interface for Warehouse persistence.
type Repository interface {
	domain.CatalogRepository[*Warehouse]
}
