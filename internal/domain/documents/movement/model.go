// Package movement provides the Movement document: a transfer of goods
// between two warehouses. Movements track logistics only and never change
// the ledger.
package movement

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Status of a movement document.
type Status string

const (
	StatusPending         Status = "pending"
	StatusCollected       Status = "collected"
	StatusSent            Status = "sent"
	StatusReceived        Status = "received"
	StatusFinished        Status = "finished"
	StatusCancelled       Status = "cancelled"
	StatusConfirmedCancel Status = "confirmed_cancel"
)

// Machine is the movement lifecycle.
var Machine = lifecycle.NewMachine("movement",
	[]Status{
		StatusPending, StatusCollected, StatusSent, StatusReceived,
		StatusFinished, StatusCancelled, StatusConfirmedCancel,
	},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusCollected},
	lifecycle.Edge[Status]{From: StatusCollected, To: StatusSent},
	lifecycle.Edge[Status]{From: StatusSent, To: StatusReceived},
	lifecycle.Edge[Status]{From: StatusReceived, To: StatusFinished},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusCollected, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusSent, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusCancelled, To: StatusConfirmedCancel},
)

// Movement moves goods from one warehouse to another.
type Movement struct {
	documents.Base[Status]

	WarehouseFromID id.ID `db:"warehouse_from_id" json:"warehouseFromId"`
	WarehouseToID   id.ID `db:"warehouse_to_id" json:"warehouseToId"`
}

// New creates a pending movement.
func New(now time.Time, userID *id.ID, from, to id.ID) *Movement {
	return &Movement{
		Base:            documents.NewBase(now, userID, Machine.Initial()),
		WarehouseFromID: from,
		WarehouseToID:   to,
	}
}

// PostingWarehouse implements documents.Doc. Movements do not post.
func (d *Movement) PostingWarehouse() *id.ID {
	return nil
}

// Validate implements entity.Validatable.
func (d *Movement) Validate(_ context.Context) error {
	if id.IsNil(d.WarehouseFromID) {
		return apperror.NewValidation("source warehouse is required").WithDetail("field", "warehouseFromId")
	}
	if id.IsNil(d.WarehouseToID) {
		return apperror.NewValidation("destination warehouse is required").WithDetail("field", "warehouseToId")
	}
	if d.WarehouseFromID == d.WarehouseToID {
		return apperror.NewValidation("source and destination warehouses must differ").
			WithDetail("field", "warehouseToId")
	}
	return d.ValidateLines()
}
