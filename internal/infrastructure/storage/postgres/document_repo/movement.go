package document_repo

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/movement"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

var _ movement.Repository = (*MovementRepo)(nil)

// MovementRepo implements movement.Repository.
type MovementRepo struct {
	*BaseDocumentRepo[*movement.Movement]
}

// NewMovementRepo creates a new movement repository.
func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*movement.Movement](
			txm,
			Tables{
				Header:        "movements",
				Lines:         "movement_items",
				WarehouseCols: []string{"warehouse_from_id", "warehouse_to_id"},
			},
			postgres.ExtractDBColumns[movement.Movement](),
			func() *movement.Movement { return &movement.Movement{} },
		),
	}
}
