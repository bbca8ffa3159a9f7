package category

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]
}
