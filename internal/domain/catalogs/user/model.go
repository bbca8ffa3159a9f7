// Package user provides the user catalog: dealers, warehouse staff and administrators.
// Tokens are issued elsewhere; this catalog only stores the password hash they are checked against.
package user

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/entity"
)

// Role defines what a user does in the system.
type Role string

const (
	RoleProvider  Role = "provider"
	RoleAdmin     Role = "admin"
	RoleDealer    Role = "dealer"
	RoleWarehouse Role = "warehouse"
)

// Status is the account state.
type Status string

const (
	StatusNew     Status = "new"
	StatusActive  Status = "active"
	StatusDisable Status = "disable"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// User is a person known to the system. A dealer is a user with RoleDealer.
type User struct {
	entity.BaseEntity

	PhoneNumber  string  `db:"phone_number" json:"phoneNumber"`
	Email        *string `db:"email" json:"email,omitempty"`
	FirstName    string  `db:"first_name" json:"firstName"`
	LastName     string  `db:"last_name" json:"lastName"`
	Role         Role    `db:"role" json:"role"`
	Status       Status  `db:"status" json:"status"`
	PasswordHash string  `db:"password_hash" json:"-"`
}

// NewUser creates a user with required fields. Role defaults to provider, status to new.
func NewUser(now time.Time, phone string) *User {
	return &User{
		BaseEntity:  entity.NewBaseEntity(now),
		PhoneNumber: strings.TrimSpace(phone),
		Role:        RoleProvider,
		Status:      StatusNew,
	}
}

// FullName joins first and last names.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsDealer reports whether the user acts as a dealer.
func (u *User) IsDealer() bool {
	return u.Role == RoleDealer
}

// Validate implements entity.Validatable interface.
func (u *User) Validate(_ context.Context) error {
	if !phonePattern.MatchString(u.PhoneNumber) {
		return apperror.NewValidation("invalid phone number").
			WithDetail("field", "phoneNumber").
			WithDetail("value", u.PhoneNumber)
	}
	if u.Email != nil && *u.Email != "" && !isValidEmail(*u.Email) {
		return apperror.NewValidation("invalid email").WithDetail("field", "email")
	}
	switch u.Role {
	case RoleProvider, RoleAdmin, RoleDealer, RoleWarehouse:
	default:
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}
	switch u.Status {
	case StatusNew, StatusActive, StatusDisable:
	default:
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(u.Status))
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
