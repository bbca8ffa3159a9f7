package document_repo

import (
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/order"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

var _ order.Repository = (*OrderRepo)(nil)

// OrderRepo implements order.Repository.
type OrderRepo struct {
	*BaseDocumentRepo[*order.Order]
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*order.Order](
			txm,
			Tables{
				Header:    "orders",
				Lines:     "order_items",
				ClientCol: "client_id",
			},
			postgres.ExtractDBColumns[order.Order](),
			func() *order.Order { return &order.Order{} },
		),
	}
}
