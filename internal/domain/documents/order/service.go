package order

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Repository persists orders.
type Repository = documents.Repository[*Order]

// Service provides business operations for orders.
type Service struct {
	*documents.Service[*Order, Status]
	refs documents.References
}

// NewService creates a new order service.
func NewService(repo Repository, deps documents.Deps) *Service {
	svc := &Service{refs: deps.Refs}
	svc.Service = documents.NewService(documents.Config[*Order, Status]{
		Entity:    "order",
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

func (s *Service) prepare(ctx context.Context, d *Order) error {
	if err := s.refs.RequireUser(ctx, "clientId", &d.ClientID); err != nil {
		return err
	}
	d.normalizeLines()
	return documents.ResolveLines(ctx, s.refs, &d.Base, true)
}
