// Package product provides the product catalog.
package product

import (
	"context"
	"strings"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/entity"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
)

// UnitType is the measurement unit of a product.
type UnitType string

const (
	UnitPieces   UnitType = "pcs"
	UnitKilogram UnitType = "kg"
)

// Valid reports whether u is a known unit.
func (u UnitType) Valid() bool {
	return u == UnitPieces || u == UnitKilogram
}

// Product is a sellable item.
type Product struct {
	entity.BaseEntity

	CategoryID id.ID       `db:"category_id" json:"categoryId"`
	Code       *string     `db:"code" json:"code,omitempty"`
	Name       string      `db:"name" json:"name"`
	UnitType   UnitType    `db:"unit_type" json:"unitType"`
	Price      types.Money `db:"price" json:"price"`
	Status     string      `db:"status" json:"status"`
	Comment    string      `db:"comment" json:"comment"`

	UserID *id.ID `db:"user_id" json:"userId,omitempty"`
}

// NewProduct creates a product with required fields. Unit defaults to pieces.
func NewProduct(now time.Time, categoryID id.ID, name string, price types.Money) *Product {
	return &Product{
		BaseEntity: entity.NewBaseEntity(now),
		CategoryID: categoryID,
		Name:       strings.TrimSpace(name),
		UnitType:   UnitPieces,
		Price:      price,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(_ context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if id.IsNil(p.CategoryID) {
		return apperror.NewValidation("category is required").WithDetail("field", "categoryId")
	}
	if !p.UnitType.Valid() {
		return apperror.NewValidation("invalid unit type").
			WithDetail("field", "unitType").
			WithDetail("value", string(p.UnitType))
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").WithDetail("field", "price")
	}
	return nil
}
