package outcome

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Repository persists outcome documents.
type Repository = documents.Repository[*Outcome]

// Service provides business operations for outcome documents.
type Service struct {
	*documents.Service[*Outcome, Status]
	refs documents.References
}

// NewService creates a new outcome service.
func NewService(repo Repository, deps documents.Deps) *Service {
	svc := &Service{refs: deps.Refs}
	svc.Service = documents.NewService(documents.Config[*Outcome, Status]{
		Entity:    "outcome",
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

func (s *Service) prepare(ctx context.Context, d *Outcome) error {
	if err := s.refs.RequireUser(ctx, "clientId", &d.ClientID); err != nil {
		return err
	}
	if err := s.refs.RequireWarehouse(ctx, "warehouseId", d.WarehouseID); err != nil {
		return err
	}
	return documents.ResolveLines(ctx, s.refs, &d.Base, true)
}
