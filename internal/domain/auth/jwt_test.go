package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator_RoundTrip(t *testing.T) {
	v := NewTokenValidator(JWTConfig{Secret: "s3cret", Issuer: "panasonic"})
	token, err := v.Sign(Claims{UserID: "u-1", Phone: "+998901234567", Role: "dealer"}, time.Hour, time.Now())
	require.NoError(t, err)

	user, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)
	assert.Equal(t, "+998901234567", user.Phone)
	assert.Equal(t, "dealer", user.Role)
}

func TestTokenValidator_Rejects(t *testing.T) {
	v := NewTokenValidator(JWTConfig{Secret: "s3cret", Issuer: "panasonic"})

	expired, err := v.Sign(Claims{UserID: "u-1"}, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = v.ValidateToken(expired)
	assert.Error(t, err)

	other := NewTokenValidator(JWTConfig{Secret: "other", Issuer: "panasonic"})
	forged, err := other.Sign(Claims{UserID: "u-1"}, time.Hour, time.Now())
	require.NoError(t, err)
	_, err = v.ValidateToken(forged)
	assert.Error(t, err)

	wrongIssuer := NewTokenValidator(JWTConfig{Secret: "s3cret", Issuer: "someone-else"})
	foreign, err := wrongIssuer.Sign(Claims{UserID: "u-1"}, time.Hour, time.Now())
	require.NoError(t, err)
	_, err = v.ValidateToken(foreign)
	assert.Error(t, err)

	_, err = v.ValidateToken("not-a-token")
	assert.Error(t, err)
}
