package document_repo

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/outcome"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

var _ outcome.Repository = (*OutcomeRepo)(nil)

// OutcomeRepo implements outcome.Repository.
type OutcomeRepo struct {
	*BaseDocumentRepo[*outcome.Outcome]
}

// NewOutcomeRepo creates a new outcome repository.
func NewOutcomeRepo(txm *postgres.TxManager) *OutcomeRepo {
	return &OutcomeRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*outcome.Outcome](
			txm,
			Tables{
				Header:        "outcomes",
				Lines:         "outcome_items",
				ClientCol:     "client_id",
				WarehouseCols: []string{"warehouse_id"},
			},
			postgres.ExtractDBColumns[outcome.Outcome](),
			func() *outcome.Outcome { return &outcome.Outcome{} },
		),
	}
}
