// Package auth validates bearer tokens issued by the external identity service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "github.com/amriddinov-m/panasonic-api/internal/core/context"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret string
	Issuer string // optional; checked when set
	Leeway time.Duration
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret: secret,
		Leeway: 30 * time.Second,
	}
}

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role"`
}

// TokenValidator checks HS256 tokens and extracts the caller.
type TokenValidator struct {
	config JWTConfig
}

// NewTokenValidator creates a validator.
func NewTokenValidator(config JWTConfig) *TokenValidator {
	return &TokenValidator{config: config}
}

// Sign issues a token for the given claims. The API never issues tokens to
// clients; the seed tool and tests use it to produce fixtures.
func (v *TokenValidator) Sign(claims Claims, ttl time.Duration, now time.Time) (string, error) {
	if claims.Subject == "" {
		claims.Subject = claims.UserID
	}
	claims.Issuer = v.config.Issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(v.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates JWT and returns user context.
func (v *TokenValidator) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.config.Leeway),
		jwt.WithExpirationRequired(),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(v.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, errors.New("token has no subject")
	}

	return &appctx.UserContext{
		UserID: userID,
		Phone:  claims.Phone,
		Role:   claims.Role,
	}, nil
}
