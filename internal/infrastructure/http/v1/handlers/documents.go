package handlers

import (
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/income"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/movement"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/order"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/outcome"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/plan"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/dto"
)

// NewIncomeHandler creates the income document handler.
func NewIncomeHandler(base *BaseHandler, service *income.Service) *DocumentHandler[*income.Income, income.Status, dto.IncomeRequest] {
	return NewDocumentHandler(base, DocumentHandlerConfig[*income.Income, income.Status, dto.IncomeRequest]{
		Service: service.Service,
		MapCreate: func(req *dto.IncomeRequest, now time.Time, userID *id.ID) *income.Income {
			return req.ToEntity(now, userID)
		},
		MapUpdate: func(req *dto.IncomeRequest, existing *income.Income) { req.ApplyTo(existing) },
	})
}

// NewOutcomeHandler creates the outcome document handler.
func NewOutcomeHandler(base *BaseHandler, service *outcome.Service) *DocumentHandler[*outcome.Outcome, outcome.Status, dto.OutcomeRequest] {
	return NewDocumentHandler(base, DocumentHandlerConfig[*outcome.Outcome, outcome.Status, dto.OutcomeRequest]{
		Service: service.Service,
		MapCreate: func(req *dto.OutcomeRequest, now time.Time, userID *id.ID) *outcome.Outcome {
			return req.ToEntity(now, userID)
		},
		MapUpdate: func(req *dto.OutcomeRequest, existing *outcome.Outcome) { req.ApplyTo(existing) },
	})
}

// NewMovementHandler creates the movement document handler.
func NewMovementHandler(base *BaseHandler, service *movement.Service) *DocumentHandler[*movement.Movement, movement.Status, dto.MovementRequest] {
	return NewDocumentHandler(base, DocumentHandlerConfig[*movement.Movement, movement.Status, dto.MovementRequest]{
		Service: service.Service,
		MapCreate: func(req *dto.MovementRequest, now time.Time, userID *id.ID) *movement.Movement {
			return req.ToEntity(now, userID)
		},
		MapUpdate: func(req *dto.MovementRequest, existing *movement.Movement) { req.ApplyTo(existing) },
	})
}

// NewOrderHandler creates the order document handler.
func NewOrderHandler(base *BaseHandler, service *order.Service) *DocumentHandler[*order.Order, order.Status, dto.OrderRequest] {
	return NewDocumentHandler(base, DocumentHandlerConfig[*order.Order, order.Status, dto.OrderRequest]{
		Service: service.Service,
		MapCreate: func(req *dto.OrderRequest, now time.Time, userID *id.ID) *order.Order {
			return req.ToEntity(now, userID)
		},
		MapUpdate: func(req *dto.OrderRequest, existing *order.Order) { req.ApplyTo(existing) },
	})
}

// NewPlanHandler creates the sales plan handler.
func NewPlanHandler(base *BaseHandler, service *plan.Service) *DocumentHandler[*plan.Plan, plan.Status, dto.PlanRequest] {
	return NewDocumentHandler(base, DocumentHandlerConfig[*plan.Plan, plan.Status, dto.PlanRequest]{
		Service: service.Service,
		MapCreate: func(req *dto.PlanRequest, now time.Time, userID *id.ID) *plan.Plan {
			return req.ToEntity(now, userID)
		},
		MapUpdate: func(req *dto.PlanRequest, existing *plan.Plan) { req.ApplyTo(existing) },
	})
}
