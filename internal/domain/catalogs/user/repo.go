package user

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// Repository defines the interface for User persistence.
type Repository interface {
	domain.CatalogRepository[*User]

	// ExistsByPhone checks whether another live user already uses phone.
	ExistsByPhone(ctx context.Context, phone string, exclude id.ID) (bool, error)
}
