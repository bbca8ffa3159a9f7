package entity

import (
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
)

// Document is the header shared by income, outcome, movement, order and plan documents.
type Document struct {
	BaseEntity

	// UserID is the operator who created the document
	UserID *id.ID `db:"user_id" json:"userId,omitempty"`

	// Comment is an optional free-text note
	Comment string `db:"comment" json:"comment"`
}

// NewDocument creates a header with generated ID.
func NewDocument(now time.Time, userID *id.ID) Document {
	return Document{
		BaseEntity: NewBaseEntity(now),
		UserID:     userID,
	}
}
