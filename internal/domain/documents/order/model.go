// Package order provides the Order document: a dealer's sales order tracked
// through picking and delivery. Orders feed the order reports; the ledger
// moves only through outcomes.
package order

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Status of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusCollected  Status = "collected"
	StatusDelivering Status = "delivering"
	StatusDelivered  Status = "delivered"
	StatusSent       Status = "sent"
	StatusCancelled  Status = "cancelled"
)

// Machine is the order lifecycle.
var Machine = lifecycle.NewMachine("order",
	[]Status{StatusPending, StatusCollected, StatusDelivering, StatusDelivered, StatusSent, StatusCancelled},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusCollected},
	lifecycle.Edge[Status]{From: StatusCollected, To: StatusSent},
	lifecycle.Edge[Status]{From: StatusCollected, To: StatusDelivering},
	lifecycle.Edge[Status]{From: StatusSent, To: StatusDelivering},
	lifecycle.Edge[Status]{From: StatusDelivering, To: StatusDelivered},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusCollected, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusSent, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusDelivering, To: StatusCancelled},
)

// LineStatus is the picking state of one order line.
type LineStatus string

const (
	LinePending   LineStatus = "pending"
	LineReady     LineStatus = "ready"
	LineCancelled LineStatus = "cancelled"
)

// Valid reports whether s is a known line status.
func (s LineStatus) Valid() bool {
	switch s {
	case LinePending, LineReady, LineCancelled:
		return true
	}
	return false
}

// Order is a dealer's sales order.
type Order struct {
	documents.Base[Status]

	ClientID id.ID `db:"client_id" json:"clientId"`
}

// New creates a pending order.
func New(now time.Time, userID *id.ID, clientID id.ID) *Order {
	return &Order{
		Base:     documents.NewBase(now, userID, Machine.Initial()),
		ClientID: clientID,
	}
}

// PostingWarehouse implements documents.Doc. Orders do not post.
func (d *Order) PostingWarehouse() *id.ID {
	return nil
}

// Validate implements entity.Validatable.
func (d *Order) Validate(_ context.Context) error {
	if id.IsNil(d.ClientID) {
		return apperror.NewValidation("client is required").WithDetail("field", "clientId")
	}
	for _, l := range d.Lines {
		if l.Status != nil && *l.Status != "" && !LineStatus(*l.Status).Valid() {
			return apperror.NewValidation("unknown line status").
				WithDetail("field", "lines").
				WithDetail("lineNo", l.LineNo).
				WithDetail("status", *l.Status)
		}
	}
	return d.ValidateLines()
}

// normalizeLines gives lines without a status the pending state.
func (d *Order) normalizeLines() {
	for i := range d.Lines {
		if d.Lines[i].Status == nil || *d.Lines[i].Status == "" {
			st := string(LinePending)
			d.Lines[i].Status = &st
		}
	}
}
