// Package warehouse provides the Warehouse catalog.
// Warehouses are the physical locations stock ledger rows belong to.
package warehouse

import (
	"context"
	"strings"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/entity"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
)

// Warehouse represents a storage location for goods.
type Warehouse struct {
	entity.BaseEntity

	Name string `db:"name" json:"name"`

	// ResponsibleID is the user in charge; reports treat it as the warehouse's dealer
	ResponsibleID *id.ID `db:"responsible_id" json:"responsibleId,omitempty"`

	// UserID is the operator who created the warehouse
	UserID *id.ID `db:"user_id" json:"userId,omitempty"`
}

// NewWarehouse creates a new Warehouse with required fields.
func NewWarehouse(now time.Time, name string) *Warehouse {
	return &Warehouse{
		BaseEntity: entity.NewBaseEntity(now),
		Name:       strings.TrimSpace(name),
	}
}

// Validate implements entity.Validatable interface.
func (w *Warehouse) Validate(_ context.Context) error {
	if strings.TrimSpace(w.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}
