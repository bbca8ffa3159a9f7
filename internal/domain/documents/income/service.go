package income

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Repository persists income documents.
type Repository = documents.Repository[*Income]

// Service provides business operations for income documents.
type Service struct {
	*documents.Service[*Income, Status]
	refs documents.References
}

// NewService creates a new income service.
func NewService(repo Repository, deps documents.Deps) *Service {
	svc := &Service{refs: deps.Refs}
	svc.Service = documents.NewService(documents.Config[*Income, Status]{
		Entity:    "income",
		Machine:   Machine,
		Repo:      repo,
		TxManager: deps.TxManager,
		Engine:    deps.Engine,
		Locker:    deps.Locker,
		Clock:     deps.Clock,
		Deletable: []Status{StatusPending, StatusCancelled},
		Prepare:   svc.prepare,
	})
	return svc
}

func (s *Service) prepare(ctx context.Context, d *Income) error {
	if err := s.refs.RequireUser(ctx, "clientId", &d.ClientID); err != nil {
		return err
	}
	if err := s.refs.RequireWarehouse(ctx, "warehouseId", d.WarehouseID); err != nil {
		return err
	}
	return documents.ResolveLines(ctx, s.refs, &d.Base, true)
}
