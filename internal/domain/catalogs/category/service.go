package category

import (
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// Service provides business logic for the category catalog.
type Service struct {
	*domain.CatalogService[*Category]
}

// NewService creates a new Category service.
func NewService(repo Repository, txm tx.Manager, clk clock.Clock) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
			Repo:       repo,
			TxManager:  txm,
			Clock:      clk,
			EntityName: "category",
		}),
	}
}
