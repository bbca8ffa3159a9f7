package dto

import (
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/income"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/movement"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/order"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/outcome"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/plan"
)

// LineRequest is one line of a document body. A missing price takes the
// catalog price where the document type carries prices.
type LineRequest struct {
	ProductID id.ID        `json:"productId" binding:"required"`
	Count     int64        `json:"count" binding:"required,gt=0"`
	Price     *types.Money `json:"price"`
	Status    *string      `json:"status" binding:"omitempty,max=32"`
	Comment   *string      `json:"comment"`
}

func toLines(reqs []LineRequest) []documents.Line {
	lines := make([]documents.Line, len(reqs))
	for i, r := range reqs {
		l := documents.Line{
			ProductID: r.ProductID,
			Count:     r.Count,
			Price:     types.Zero(),
			Status:    r.Status,
			Comment:   r.Comment,
		}
		if r.Price != nil {
			l.Price = *r.Price
		}
		lines[i] = l
	}
	return lines
}

// DocumentFields are the header fields every document body carries.
type DocumentFields struct {
	// Status moves the document through the regular transition after the
	// header and lines are stored, on create and on update alike.
	Status  string        `json:"status"`
	Comment string        `json:"comment"`
	Lines   []LineRequest `json:"lines" binding:"dive"`
	Version int           `json:"version"`
}

// TargetStatus returns the status requested in the body, empty to keep it.
func (f DocumentFields) TargetStatus() string {
	return f.Status
}

func applyBase[S ~string](f DocumentFields, b *documents.Base[S]) {
	b.Comment = f.Comment
	b.Lines = toLines(f.Lines)
	if f.Version > 0 {
		b.Version = f.Version
	}
}

// --- Income ---

// IncomeRequest is the body for creating or updating an income.
type IncomeRequest struct {
	DocumentFields
	ClientID    id.ID  `json:"clientId" binding:"required"`
	WarehouseID *id.ID `json:"warehouseId"`
}

// ToEntity converts DTO to domain entity.
func (r *IncomeRequest) ToEntity(now time.Time, userID *id.ID) *income.Income {
	d := income.New(now, userID, r.ClientID, r.WarehouseID)
	applyBase(r.DocumentFields, &d.Base)
	d.Status = income.Status(r.Status)
	return d
}

// ApplyTo applies update DTO to existing entity.
func (r *IncomeRequest) ApplyTo(d *income.Income) {
	d.ClientID = r.ClientID
	d.WarehouseID = r.WarehouseID
	applyBase(r.DocumentFields, &d.Base)
}

// --- Outcome ---

// OutcomeRequest is the body for creating or updating an outcome.
type OutcomeRequest struct {
	DocumentFields
	ClientID    id.ID   `json:"clientId" binding:"required"`
	WarehouseID *id.ID  `json:"warehouseId"`
	Reason      *string `json:"reason"`
}

// ToEntity converts DTO to domain entity.
func (r *OutcomeRequest) ToEntity(now time.Time, userID *id.ID) *outcome.Outcome {
	d := outcome.New(now, userID, r.ClientID, r.WarehouseID)
	d.Reason = r.Reason
	applyBase(r.DocumentFields, &d.Base)
	d.Status = outcome.Status(r.Status)
	return d
}

// ApplyTo applies update DTO to existing entity.
func (r *OutcomeRequest) ApplyTo(d *outcome.Outcome) {
	d.ClientID = r.ClientID
	d.WarehouseID = r.WarehouseID
	d.Reason = r.Reason
	applyBase(r.DocumentFields, &d.Base)
}

// --- Movement ---

// MovementRequest is the body for creating or updating a movement.
type MovementRequest struct {
	DocumentFields
	WarehouseFromID id.ID `json:"warehouseFromId" binding:"required"`
	WarehouseToID   id.ID `json:"warehouseToId" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *MovementRequest) ToEntity(now time.Time, userID *id.ID) *movement.Movement {
	d := movement.New(now, userID, r.WarehouseFromID, r.WarehouseToID)
	applyBase(r.DocumentFields, &d.Base)
	d.Status = movement.Status(r.Status)
	return d
}

// ApplyTo applies update DTO to existing entity.
func (r *MovementRequest) ApplyTo(d *movement.Movement) {
	d.WarehouseFromID = r.WarehouseFromID
	d.WarehouseToID = r.WarehouseToID
	applyBase(r.DocumentFields, &d.Base)
}

// --- Order ---

// OrderRequest is the body for creating or updating an order.
type OrderRequest struct {
	DocumentFields
	ClientID id.ID `json:"clientId" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *OrderRequest) ToEntity(now time.Time, userID *id.ID) *order.Order {
	d := order.New(now, userID, r.ClientID)
	applyBase(r.DocumentFields, &d.Base)
	d.Status = order.Status(r.Status)
	return d
}

// ApplyTo applies update DTO to existing entity.
func (r *OrderRequest) ApplyTo(d *order.Order) {
	d.ClientID = r.ClientID
	applyBase(r.DocumentFields, &d.Base)
}

// --- Plan ---

// PlanRequest is the body for creating or updating a monthly sales plan.
type PlanRequest struct {
	DocumentFields
	ClientID id.ID `json:"clientId" binding:"required"`
	Period   int   `json:"period" binding:"required,min=1,max=12"`
}

// ToEntity converts DTO to domain entity.
func (r *PlanRequest) ToEntity(now time.Time, userID *id.ID) *plan.Plan {
	d := plan.New(now, userID, r.ClientID, r.Period)
	applyBase(r.DocumentFields, &d.Base)
	d.Status = plan.Status(r.Status)
	return d
}

// ApplyTo applies update DTO to existing entity.
func (r *PlanRequest) ApplyTo(d *plan.Plan) {
	d.ClientID = r.ClientID
	d.Period = r.Period
	applyBase(r.DocumentFields, &d.Base)
}
