package catalog_repo

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/category"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

const categoryTable = "categories"

var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*category.Category](
			txm,
			categoryTable,
			postgres.ExtractDBColumns[category.Category](),
			[]string{"name"},
			func() *category.Category { return &category.Category{} },
		),
	}
}
