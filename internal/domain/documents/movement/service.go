package movement

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Repository persists movement documents.
type Repository = documents.Repository[*Movement]

// Service provides business operations for movement documents.
type Service struct {
	*documents.Service[*Movement, Status]
	refs documents.References
}

// NewService creates a new movement service.
func NewService(repo Repository, deps documents.Deps) *Service {
	svc := &Service{refs: deps.Refs}
	svc.Service = documents.NewService(documents.Config[*Movement, Status]{
		Entity:    "movement",
		Machine:   Machine,
		Repo:      repo,
		TxManager: deps.TxManager,
		Engine:    deps.Engine,
		Locker:    deps.Locker,
		Clock:     deps.Clock,
		Deletable: []Status{StatusPending, StatusCancelled, StatusConfirmedCancel},
		Prepare:   svc.prepare,
	})
	return svc
}

func (s *Service) prepare(ctx context.Context, d *Movement) error {
	if err := s.refs.RequireWarehouse(ctx, "warehouseFromId", &d.WarehouseFromID); err != nil {
		return err
	}
	if err := s.refs.RequireWarehouse(ctx, "warehouseToId", &d.WarehouseToID); err != nil {
		return err
	}
	return documents.ResolveLines(ctx, s.refs, &d.Base, false)
}
