package stock

import (
	"context"
	"fmt"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

// Mutation results reported to the Recorder.
const (
	ResultOK                = "ok"
	ResultInsufficientStock = "insufficient_stock"
	ResultStockNotFound     = "stock_not_found"
	ResultError             = "error"
)

// Recorder observes ledger mutations (metrics).
type Recorder interface {
	LedgerMutation(effect, result string)
}

type nopRecorder struct{}

func (nopRecorder) LedgerMutation(string, string) {}

// Service provides business operations for the warehouse ledger.
// Every method runs in a transaction; when called from the posting engine it
// joins the engine's transaction instead of opening a new one.
type Service struct {
	repo      Repository
	txManager tx.Manager
	recorder  Recorder
}

// NewService creates a new ledger service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	if txManager == nil {
		txManager = tx.Nop{}
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		recorder:  nopRecorder{},
	}
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Receive increments ledger rows by moves. Rows are created when missing and
// take the price of the last move for their product.
func (s *Service) Receive(ctx context.Context, warehouseID id.ID, moves []Move, userID *id.ID) error {
	moves = aggregate(moves)
	if err := validateMoves(moves); err != nil {
		return err
	}
	if len(moves) == 0 {
		return nil
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, m := range moves {
			if err := s.repo.Increment(ctx, warehouseID, m.ProductID, m.Quantity, m.Price, userID); err != nil {
				return fmt.Errorf("increment %s: %w", m.ProductID, err)
			}
		}
		return nil
	})
	s.record("receive", err)
	if err != nil {
		return err
	}

	logger.Info(ctx, "ledger receive",
		"warehouse_id", warehouseID,
		"products", len(moves),
	)
	return nil
}

// Issue decrements ledger rows by moves, all or nothing.
// Quantities of the same product are summed first. Rows are locked in product
// id order and every product is checked before the first decrement.
func (s *Service) Issue(ctx context.Context, warehouseID id.ID, moves []Move) error {
	moves = aggregate(moves)
	if err := validateMoves(moves); err != nil {
		return err
	}
	if len(moves) == 0 {
		return nil
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rows, err := s.repo.GetForUpdate(ctx, warehouseID, productIDs(moves))
		if err != nil {
			return fmt.Errorf("lock ledger rows: %w", err)
		}

		for _, m := range moves {
			row, ok := rows[m.ProductID]
			if !ok {
				return apperror.NewStockNotFound(m.ProductID.String()).
					WithDetail("warehouse_id", warehouseID.String())
			}
			if row.Quantity < m.Quantity {
				return apperror.NewInsufficientStock(m.ProductID.String(), row.Quantity, m.Quantity).
					WithDetail("warehouse_id", warehouseID.String())
			}
		}

		for _, m := range moves {
			changed, err := s.repo.Decrement(ctx, warehouseID, m.ProductID, m.Quantity)
			if err != nil {
				return fmt.Errorf("decrement %s: %w", m.ProductID, err)
			}
			if !changed {
				// row lock was not honoured (should not happen inside the tx)
				have := rows[m.ProductID].Quantity
				return apperror.NewInsufficientStock(m.ProductID.String(), have, m.Quantity).
					WithDetail("warehouse_id", warehouseID.String())
			}
		}
		return nil
	})
	s.record("issue", err)
	if err != nil {
		return err
	}

	logger.Info(ctx, "ledger issue",
		"warehouse_id", warehouseID,
		"products", len(moves),
	)
	return nil
}

// GetOrCreate returns the ledger row, creating an empty one when missing.
func (s *Service) GetOrCreate(ctx context.Context, warehouseID, productID id.ID, userID *id.ID) (*Row, error) {
	var row *Row
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		row, err = s.repo.GetOrCreate(ctx, warehouseID, productID, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get or create ledger row: %w", err)
	}
	return row, nil
}

// Get returns an existing row or StockNotFound.
func (s *Service) Get(ctx context.Context, warehouseID, productID id.ID) (*Row, error) {
	row, err := s.repo.Get(ctx, warehouseID, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewStockNotFound(productID.String()).
				WithDetail("warehouse_id", warehouseID.String())
		}
		return nil, fmt.Errorf("get ledger row: %w", err)
	}
	return row, nil
}

// Increment adds qty to one row.
func (s *Service) Increment(ctx context.Context, warehouseID, productID id.ID, qty int64, price types.Money, userID *id.ID) error {
	return s.Receive(ctx, warehouseID, []Move{{ProductID: productID, Quantity: qty, Price: price}}, userID)
}

// Decrement subtracts qty from one row, failing with StockNotFound or InsufficientStock.
func (s *Service) Decrement(ctx context.Context, warehouseID, productID id.ID, qty int64) error {
	return s.Issue(ctx, warehouseID, []Move{{ProductID: productID, Quantity: qty}})
}

// List returns ledger rows matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[Item], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > domain.MaxListLimit {
		filter.Limit = domain.MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) record(effect string, err error) {
	switch {
	case err == nil:
		s.recorder.LedgerMutation(effect, ResultOK)
	case apperror.HasCode(err, apperror.CodeInsufficientStock):
		s.recorder.LedgerMutation(effect, ResultInsufficientStock)
	case apperror.HasCode(err, apperror.CodeStockNotFound):
		s.recorder.LedgerMutation(effect, ResultStockNotFound)
	default:
		s.recorder.LedgerMutation(effect, ResultError)
	}
}

func validateMoves(moves []Move) error {
	for _, m := range moves {
		if id.IsNil(m.ProductID) {
			return apperror.NewValidation("product is required")
		}
		if m.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("product_id", m.ProductID.String()).
				WithDetail("quantity", m.Quantity)
		}
		if m.Price.IsNegative() {
			return apperror.NewValidation("price must not be negative").
				WithDetail("product_id", m.ProductID.String())
		}
	}
	return nil
}
