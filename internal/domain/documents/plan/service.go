package plan

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/user"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Repository persists plans.
type Repository = documents.Repository[*Plan]

// DealerChecker resolves the dealer a plan is set for.
type DealerChecker interface {
	RequireDealer(ctx context.Context, dealerID id.ID) (*user.User, error)
}

// Service provides business operations for plans.
type Service struct {
	*documents.Service[*Plan, Status]
	refs    documents.References
	dealers DealerChecker
}

// NewService creates a new plan service. dealers may be nil in tools that
// skip reference checks.
func NewService(repo Repository, deps documents.Deps, dealers DealerChecker) *Service {
	svc := &Service{refs: deps.Refs, dealers: dealers}
	svc.Service = documents.NewService(documents.Config[*Plan, Status]{
		Entity:    "plan",
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

func (s *Service) prepare(ctx context.Context, d *Plan) error {
	if s.dealers != nil {
		if _, err := s.dealers.RequireDealer(ctx, d.ClientID); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("field", "clientId")
			}
			return err
		}
	}
	return documents.ResolveLines(ctx, s.refs, &d.Base, false)
}
