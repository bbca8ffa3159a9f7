package warehouse

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// UserChecker resolves user references.
type UserChecker interface {
	RequireExists(ctx context.Context, userID id.ID) error
}

// Service provides business logic for Warehouse catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Warehouse]
	users UserChecker
}

// NewService creates a new Warehouse service.
func NewService(repo Repository, users UserChecker, txm tx.Manager, clk clock.Clock) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       repo,
		TxManager:  txm,
		Clock:      clk,
		EntityName: "warehouse",
	})

	svc := &Service{
		CatalogService: base,
		users:          users,
	}

	base.Hooks().OnBeforeCreate(svc.checkResponsible)
	base.Hooks().OnBeforeUpdate(svc.checkResponsible)

	return svc
}

// checkResponsible makes sure the responsible user exists.
func (s *Service) checkResponsible(ctx context.Context, wh *Warehouse) error {
	if wh.ResponsibleID == nil {
		return nil
	}
	return s.users.RequireExists(ctx, *wh.ResponsibleID)
}
