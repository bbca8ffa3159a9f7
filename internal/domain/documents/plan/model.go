// Package plan provides the monthly sales plan of a dealer. Items hold the
// planned count per product; plan amounts are valued at catalog prices by
// the plan reports, so items carry no price of their own.
package plan

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

// Status of a plan.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Machine is the plan lifecycle. Only confirmed plans count in reports.
var Machine = lifecycle.NewMachine("plan",
	[]Status{StatusPending, StatusConfirmed, StatusCancelled},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusConfirmed},
	lifecycle.Edge[Status]{From: StatusPending, To: StatusCancelled},
	lifecycle.Edge[Status]{From: StatusConfirmed, To: StatusCancelled},
)

// Plan is a dealer's sales target for one month. The year is the year of CreatedAt.
type Plan struct {
	documents.Base[Status]

	// ClientID is the dealer the plan is set for
	ClientID id.ID `db:"client_id" json:"clientId"`

	// Period is the month, 1..12
	Period int `db:"period" json:"period"`
}

// New creates a pending plan.
func New(now time.Time, userID *id.ID, dealerID id.ID, period int) *Plan {
	return &Plan{
		Base:     documents.NewBase(now, userID, Machine.Initial()),
		ClientID: dealerID,
		Period:   period,
	}
}

// Year is the calendar year the plan applies to.
func (d *Plan) Year() int {
	return d.CreatedAt.Year()
}

// PostingWarehouse implements documents.Doc. Plans do not post.
func (d *Plan) PostingWarehouse() *id.ID {
	return nil
}

// Validate implements entity.Validatable.
func (d *Plan) Validate(_ context.Context) error {
	if id.IsNil(d.ClientID) {
		return apperror.NewValidation("dealer is required").WithDetail("field", "clientId")
	}
	if d.Period < 1 || d.Period > 12 {
		return apperror.NewValidation("period must be a month between 1 and 12").
			WithDetail("field", "period").
			WithDetail("value", d.Period)
	}
	return d.ValidateLines()
}
