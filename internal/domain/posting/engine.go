// Package posting is the stock-mutation rule engine. It applies the ledger
// effect of a document status transition and persists the document in the
// same transaction, so either both happen or neither does.
package posting

import (
	"context"
	"fmt"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

// Ledger is the part of the stock service the engine drives.
type Ledger interface {
	Receive(ctx context.Context, warehouseID id.ID, moves []stock.Move, userID *id.ID) error
	Issue(ctx context.Context, warehouseID id.ID, moves []stock.Move) error
}

// Invalidator is notified after a committed document change (report caches).
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Request describes one transition to post.
type Request struct {
	Entity      string
	DocumentID  id.ID
	Effect      lifecycle.Effect
	WarehouseID *id.ID
	Moves       []stock.Move
	UserID      *id.ID
}

// Engine applies transition effects.
type Engine struct {
	txManager    tx.Manager
	ledger       Ledger
	invalidators []Invalidator
}

// NewEngine creates a posting engine.
func NewEngine(txManager tx.Manager, ledger Ledger, invalidators ...Invalidator) *Engine {
	if txManager == nil {
		txManager = tx.Nop{}
	}
	return &Engine{
		txManager:    txManager,
		ledger:       ledger,
		invalidators: invalidators,
	}
}

// Post applies req.Effect to the ledger and calls persist, inside one
// transaction. Any error rolls back both, leaving the document in its
// previous status. Post joins a transaction already open in ctx, so the
// caller calls Invalidate once its outermost transaction has committed.
func (e *Engine) Post(ctx context.Context, req Request, persist func(ctx context.Context) error) error {
	mutates := req.Effect == lifecycle.EffectReceive || req.Effect == lifecycle.EffectIssue
	if mutates && (req.WarehouseID == nil || id.IsNil(*req.WarehouseID)) {
		return apperror.NewValidation("warehouse is required to post the document").
			WithDetail("entity", req.Entity).
			WithDetail("id", req.DocumentID.String())
	}
	if mutates && e.ledger == nil {
		return apperror.NewInternal(fmt.Errorf("posting engine for %s has no ledger", req.Entity))
	}
	if mutates && len(req.Moves) == 0 {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "document has no lines").
			WithDetail("entity", req.Entity).
			WithDetail("id", req.DocumentID.String())
	}

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		switch req.Effect {
		case lifecycle.EffectReceive:
			if err := e.ledger.Receive(ctx, *req.WarehouseID, req.Moves, req.UserID); err != nil {
				return err
			}
		case lifecycle.EffectIssue:
			if err := e.ledger.Issue(ctx, *req.WarehouseID, req.Moves); err != nil {
				return err
			}
		case lifecycle.EffectNone, "":
		default:
			return fmt.Errorf("unknown posting effect %q", req.Effect)
		}

		if persist == nil {
			return nil
		}
		return persist(ctx)
	})
	if err != nil {
		return err
	}

	if mutates {
		logger.Info(ctx, "document posted",
			"entity", req.Entity,
			"document_id", req.DocumentID,
			"effect", string(req.Effect),
			"lines", len(req.Moves),
		)
	}
	return nil
}

// Invalidate notifies the invalidators. It runs after commit; a failing
// cache must not fail the request.
func (e *Engine) Invalidate(ctx context.Context) {
	for _, inv := range e.invalidators {
		if err := inv.Invalidate(ctx); err != nil {
			logger.Warn(ctx, "report cache invalidation failed", "error", err)
		}
	}
}
