package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// MinPasswordLength is enforced on SetPassword.
const MinPasswordLength = 6

// Service provides business logic for the user catalog.
type Service struct {
	*domain.CatalogService[*User]
	repo Repository
	cost int
}

// NewService creates a new User service.
func NewService(repo Repository, txm tx.Manager, clk clock.Clock) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*User]{
		Repo:       repo,
		TxManager:  txm,
		Clock:      clk,
		EntityName: "user",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		cost:           bcrypt.DefaultCost,
	}

	base.Hooks().OnBeforeCreate(svc.checkPhone)
	base.Hooks().OnBeforeUpdate(svc.checkPhone)

	return svc
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) checkPhone(ctx context.Context, u *User) error {
	taken, err := s.repo.ExistsByPhone(ctx, u.PhoneNumber, u.ID)
	if err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	if taken {
		return apperror.NewDuplicate("user", "phoneNumber", u.PhoneNumber)
	}
	return nil
}

// SetPassword hashes password into u. An empty password leaves the hash untouched.
func (s *Service) SetPassword(u *User, password string) error {
	if password == "" {
		return nil
	}
	if len(password) < MinPasswordLength {
		return apperror.NewValidation("password is too short").
			WithDetail("field", "password").
			WithDetail("min", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(u *User, password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RequireDealer returns NotFound when dealerID is missing and a validation error
// when the user exists but is not a dealer.
func (s *Service) RequireDealer(ctx context.Context, dealerID id.ID) (*User, error) {
	u, err := s.GetByID(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	if !u.IsDealer() {
		return nil, apperror.NewValidation("user is not a dealer").
			WithDetail("userId", dealerID.String()).
			WithDetail("role", string(u.Role))
	}
	return u, nil
}
