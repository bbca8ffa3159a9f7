// Package entity contains fields shared by every persisted entity.
package entity

import (
	"context"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	Validate(ctx context.Context) error
}

// BaseEntity contains common fields for catalogs and documents.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// DeletionMark indicates soft-deleted entity
	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity(now time.Time) BaseEntity {
	now = now.UTC()
	return BaseEntity{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the primary key.
func (b *BaseEntity) GetID() id.ID {
	return b.ID
}

// Touch bumps the update timestamp. The version is advanced by the repository.
func (b *BaseEntity) Touch(now time.Time) {
	b.UpdatedAt = now.UTC()
}

// Touchable is implemented by every entity embedding BaseEntity.
type Touchable interface {
	Validatable
	Touch(now time.Time)
}

// SetVersion records the version the repository stored.
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}
