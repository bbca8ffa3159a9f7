package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func TestValidate(t *testing.T) {
	u := NewUser(testNow, "+998901234567")
	require.NoError(t, u.Validate(context.Background()))

	u.Role = "boss"
	assert.True(t, apperror.HasCode(u.Validate(context.Background()), apperror.CodeValidation))

	u = NewUser(testNow, "abc")
	assert.Error(t, u.Validate(context.Background()))

	bad := "not-an-email"
	u = NewUser(testNow, "998901234567")
	u.Email = &bad
	assert.Error(t, u.Validate(context.Background()))
}

func TestSetPasswordHashes(t *testing.T) {
	svc := (&Service{}).WithCost(bcrypt.MinCost)
	u := NewUser(testNow, "998901234567")

	require.NoError(t, svc.SetPassword(u, "secret1"))
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, CheckPassword(u, "secret1"))
	assert.False(t, CheckPassword(u, "secret2"))

	err := svc.SetPassword(u, "123")
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	hash := u.PasswordHash
	require.NoError(t, svc.SetPassword(u, ""))
	assert.Equal(t, hash, u.PasswordHash)
}

func TestFullNameAndDealer(t *testing.T) {
	u := NewUser(testNow, "998901234567")
	u.FirstName = "Ali"
	u.LastName = "Valiev"
	u.Role = RoleDealer

	assert.Equal(t, "Ali Valiev", u.FullName())
	assert.True(t, u.IsDealer())
}
