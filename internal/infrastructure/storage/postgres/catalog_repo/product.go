package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/product"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

const productTable = "products"

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txm,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			[]string{"name", "code"},
			func() *product.Product { return &product.Product{} },
		),
	}
}

// GetMany loads live products by id.
func (r *ProductRepo) GetMany(ctx context.Context, ids []id.ID) (map[id.ID]*product.Product, error) {
	out := make(map[id.ID]*product.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.FindMany(ctx, r.baseSelect().
		Where(squirrel.Eq{"id": ids, "deletion_mark": false}))
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

// ExistsByCode checks whether another live product already uses code.
func (r *ProductRepo) ExistsByCode(ctx context.Context, code string, exclude id.ID) (bool, error) {
	return r.existsOther(ctx, "code", code, exclude)
}
