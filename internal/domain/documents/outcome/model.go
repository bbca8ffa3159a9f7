// Package outcome provides the Outcome document: goods issued from a warehouse.
// Finishing an outcome decrements the warehouse ledger and is rejected when
// any line would drive a row negative.
package outcome

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Status of an outcome document.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// Machine is the outcome lifecycle.
var Machine = lifecycle.NewMachine("outcome",
	[]Status{StatusPending, StatusActive, StatusFinished, StatusCancelled},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusActive},
	lifecycle.Edge[Status]{From: StatusActive, To: StatusPending},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusFinished, Effect: lifecycle.EffectIssue},
	lifecycle.Edge[Status]{From: StatusActive, To: StatusFinished, Effect: lifecycle.EffectIssue},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusActive, To: StatusCancelled},
)

// Outcome is a stock-out document. Finished outcomes are the sales fact
// table of every sales report.
type Outcome struct {
	documents.Base[Status]

	// ClientID is the dealer the goods go to
	ClientID id.ID `db:"client_id" json:"clientId"`

	// WarehouseID ships the goods
	WarehouseID *id.ID `db:"warehouse_id" json:"warehouseId,omitempty"`

	Reason *string `db:"reason" json:"reason,omitempty"`
}

// New creates a pending outcome.
func New(now time.Time, userID *id.ID, clientID id.ID, warehouseID *id.ID) *Outcome {
	return &Outcome{
		Base:        documents.NewBase(now, userID, Machine.Initial()),
		ClientID:    clientID,
		WarehouseID: warehouseID,
	}
}

// PostingWarehouse implements documents.Doc.
func (d *Outcome) PostingWarehouse() *id.ID {
	return d.WarehouseID
}

// Validate implements entity.Validatable.
func (d *Outcome) Validate(_ context.Context) error {
	if id.IsNil(d.ClientID) {
		return apperror.NewValidation("client is required").WithDetail("field", "clientId")
	}
	return d.ValidateLines()
}
