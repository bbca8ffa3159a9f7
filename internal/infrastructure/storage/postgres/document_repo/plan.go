package document_repo

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/plan"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

var _ plan.Repository = (*PlanRepo)(nil)

// PlanRepo implements plan.Repository.
type PlanRepo struct {
	*BaseDocumentRepo[*plan.Plan]
}

// NewPlanRepo creates a new plan repository.
func NewPlanRepo(txm *postgres.TxManager) *PlanRepo {
	return &PlanRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*plan.Plan](
			txm,
			Tables{
				Header:    "plans",
				Lines:     "plan_items",
				ClientCol: "client_id",
			},
			postgres.ExtractDBColumns[plan.Plan](),
			func() *plan.Plan { return &plan.Plan{} },
		),
	}
}
