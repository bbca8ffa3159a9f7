// Package documents holds what income, outcome, movement, order and plan
// documents share: the header with status and total, the line table part, and
// a generic service driving the status lifecycle through the posting engine.
package documents

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/entity"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
)

// Line is one row of a document table part.
type Line struct {
	ID         id.ID       `db:"id" json:"id"`
	DocumentID id.ID       `db:"document_id" json:"-"`
	LineNo     int         `db:"line_no" json:"lineNo"`
	ProductID  id.ID       `db:"product_id" json:"productId"`
	Count      int64       `db:"count" json:"count"`
	Price      types.Money `db:"price" json:"price"`
	Status     *string     `db:"status" json:"status,omitempty"`
	Comment    *string     `db:"comment" json:"comment,omitempty"`
}

// Amount is count × price.
func (l Line) Amount() types.Money {
	return types.LineAmount(l.Count, l.Price)
}

// Base is the header embedded by every document type.
type Base[S ~string] struct {
	entity.Document

	Status      S           `db:"status" json:"status"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// NewBase creates a header in the given initial status.
func NewBase[S ~string](now time.Time, userID *id.ID, initial S) Base[S] {
	return Base[S]{
		Document:    entity.NewDocument(now, userID),
		Status:      initial,
		TotalAmount: types.Zero(),
		Lines:       make([]Line, 0),
	}
}

// Core gives the generic service access to the shared header.
func (b *Base[S]) Core() *Base[S] {
	return b
}

// SetLines replaces the table part, numbering lines and recomputing the total.
func (b *Base[S]) SetLines(lines []Line) {
	b.Lines = make([]Line, len(lines))
	for i, l := range lines {
		if id.IsNil(l.ID) {
			l.ID = id.New()
		}
		l.DocumentID = b.ID
		l.LineNo = i + 1
		b.Lines[i] = l
	}
	b.Recalculate()
}

// AddLine appends one line and recomputes the total.
func (b *Base[S]) AddLine(productID id.ID, count int64, price types.Money) {
	b.SetLines(append(b.Lines, Line{ProductID: productID, Count: count, Price: price}))
}

// Recalculate sets TotalAmount = Σ count × price.
func (b *Base[S]) Recalculate() {
	total := types.Zero()
	for _, l := range b.Lines {
		total = total.Add(l.Amount())
	}
	b.TotalAmount = total
}

// Moves converts lines into ledger moves.
func (b *Base[S]) Moves() []stock.Move {
	moves := make([]stock.Move, len(b.Lines))
	for i, l := range b.Lines {
		moves[i] = stock.Move{ProductID: l.ProductID, Quantity: l.Count, Price: l.Price}
	}
	return moves
}

// ProductIDs returns the distinct products referenced by lines.
func (b *Base[S]) ProductIDs() []id.ID {
	seen := make(map[id.ID]struct{}, len(b.Lines))
	var out []id.ID
	for _, l := range b.Lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		out = append(out, l.ProductID)
	}
	return out
}

// ValidateLines checks the table part. Empty documents are allowed while pending.
func (b *Base[S]) ValidateLines() error {
	for _, l := range b.Lines {
		if id.IsNil(l.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", l.LineNo)
		}
		if l.Count <= 0 {
			return apperror.NewValidation("count must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", l.LineNo)
		}
		if l.Price.IsNegative() {
			return apperror.NewValidation("price must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", l.LineNo)
		}
	}
	return nil
}

// Doc is implemented by every document type through embedding Base.
type Doc[S ~string] interface {
	entity.Validatable
	Core() *Base[S]

	// PostingWarehouse is the warehouse whose ledger the document mutates,
	// nil for documents without a ledger effect.
	PostingWarehouse() *id.ID
}

// ListFilter narrows document listings.
type ListFilter struct {
	domain.ListFilter

	Statuses    []string
	ClientID    *id.ID
	WarehouseID *id.ID // for movements: either side
	UserID      *id.ID
	DateFrom    *time.Time
	DateTo      *time.Time // inclusive calendar date
}

// Repository is the persistence contract shared by document types.
type Repository[D any] interface {
	Create(ctx context.Context, doc D) error
	GetByID(ctx context.Context, docID id.ID) (D, error)

	// GetForUpdate reads the header with a row lock.
	GetForUpdate(ctx context.Context, docID id.ID) (D, error)

	// Update writes the header with optimistic locking and advances its version.
	Update(ctx context.Context, doc D) error

	SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[D], error)
}
