// Package category provides the product category catalog.
package category

import (
	"context"
	"strings"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/entity"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
)

// Category groups products for reporting and filtering.
type Category struct {
	entity.BaseEntity

	Name   string `db:"name" json:"name"`
	Status string `db:"status" json:"status"`

	// UserID is the operator who created the category
	UserID *id.ID `db:"user_id" json:"userId,omitempty"`
}

// NewCategory creates a category with required fields.
func NewCategory(now time.Time, name string) *Category {
	return &Category{
		BaseEntity: entity.NewBaseEntity(now),
		Name:       strings.TrimSpace(name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}
