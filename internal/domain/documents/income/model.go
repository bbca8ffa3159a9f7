// Package income provides the Income document: goods received into a warehouse.
// Finishing an income increments the warehouse ledger by its lines.
package income

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Status of an income document.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// Machine is the income lifecycle. Only edges into finished touch the ledger.
var Machine = lifecycle.NewMachine("income",
	[]Status{StatusPending, StatusActive, StatusFinished, StatusCancelled},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusActive},
	lifecycle.Edge[Status]{From: StatusActive, To: StatusPending},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusFinished, Effect: lifecycle.EffectReceive},
	lifecycle.Edge[Status]{From: StatusActive, To: StatusFinished, Effect: lifecycle.EffectReceive},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusActive, To: StatusCancelled},
)

// Income is a stock-in document.
type Income struct {
	documents.Base[Status]

	// ClientID is the supplier the goods come from
	ClientID id.ID `db:"client_id" json:"clientId"`

	// WarehouseID receives the goods
	WarehouseID *id.ID `db:"warehouse_id" json:"warehouseId,omitempty"`
}

// New creates a pending income.
func New(now time.Time, userID *id.ID, clientID id.ID, warehouseID *id.ID) *Income {
	return &Income{
		Base:        documents.NewBase(now, userID, Machine.Initial()),
		ClientID:    clientID,
		WarehouseID: warehouseID,
	}
}

// PostingWarehouse implements documents.Doc.
func (d *Income) PostingWarehouse() *id.ID {
	return d.WarehouseID
}

// Validate implements entity.Validatable.
func (d *Income) Validate(_ context.Context) error {
	if id.IsNil(d.ClientID) {
		return apperror.NewValidation("client is required").WithDetail("field", "clientId")
	}
	return d.ValidateLines()
}
