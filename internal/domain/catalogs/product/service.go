package product

import (
	"context"
	"fmt"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// CategoryChecker resolves category references.
type CategoryChecker interface {
	RequireExists(ctx context.Context, categoryID id.ID) error
}

// Service provides business logic for the product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo       Repository
	categories CategoryChecker
}

// NewService creates a new Product service.
func NewService(repo Repository, categories CategoryChecker, txm tx.Manager, clk clock.Clock) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txm,
		Clock:      clk,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		categories:     categories,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferences)
	base.Hooks().OnBeforeUpdate(svc.checkReferences)

	return svc
}

// checkReferences validates the category and the code uniqueness.
func (s *Service) checkReferences(ctx context.Context, p *Product) error {
	if err := s.categories.RequireExists(ctx, p.CategoryID); err != nil {
		return err
	}
	if p.Code == nil || *p.Code == "" {
		return nil
	}
	taken, err := s.repo.ExistsByCode(ctx, *p.Code, p.ID)
	if err != nil {
		return fmt.Errorf("check product code: %w", err)
	}
	if taken {
		return apperror.NewDuplicate("product", "code", *p.Code)
	}
	return nil
}

// GetMany loads products referenced by document lines.
// Any missing id is reported as NotFound.
func (s *Service) GetMany(ctx context.Context, ids []id.ID) (map[id.ID]*Product, error) {
	found, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for _, pid := range ids {
		if _, ok := found[pid]; !ok {
			return nil, apperror.NewNotFound("product", pid.String())
		}
	}
	return found, nil
}
