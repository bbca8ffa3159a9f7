package catalog_repo

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/warehouse"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

const warehouseTable = "warehouses"

var _ warehouse.Repository = (*WarehouseRepo)(nil)

// WarehouseRepo implements warehouse.Repository.
type WarehouseRepo struct {
	*BaseCatalogRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates a new warehouse repository.
func NewWarehouseRepo(txm *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*warehouse.Warehouse](
			txm,
			warehouseTable,
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			[]string{"name"},
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
		),
	}
}
