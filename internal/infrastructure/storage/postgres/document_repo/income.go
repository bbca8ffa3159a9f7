package document_repo

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/income"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

var _ income.Repository = (*IncomeRepo)(nil)

// IncomeRepo implements income.Repository.
type IncomeRepo struct {
	*BaseDocumentRepo[*income.Income]
}

// NewIncomeRepo creates a new income repository.
func NewIncomeRepo(txm *postgres.TxManager) *IncomeRepo {
	return &IncomeRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*income.Income](
			txm,
			Tables{
				Header:        "incomes",
				Lines:         "income_items",
				ClientCol:     "client_id",
				WarehouseCols: []string{"warehouse_id"},
			},
			postgres.ExtractDBColumns[income.Income](),
			func() *income.Income { return &income.Income{} },
		),
	}
}
