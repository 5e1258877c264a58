package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default lifetimes. Access tokens are short so a leaked one is only briefly
// useful; refresh tokens cover a working day.
const (
	DefaultAccessTokenTTL  = 5 * time.Minute
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// Token types carried in the token_type claim. A refresh token must never
// authenticate a request and an access token must never be refreshed.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the JWT payload issued by the blog.
type Claims struct {
	jwt.RegisteredClaims

	TokenType string `json:"token_type"`
	Username  string `json:"username,omitempty"`
}

// NewClaims builds claims for subject valid from now for ttl.
func NewClaims(subject, username, tokenType, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenType: tokenType,
		Username:  username,
	}
}

// NewJTI returns a unique token id. Two tokens minted in the same second
// for the same user still differ.
func NewJTI() string {
	return uuid.NewString()
}

func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

func (c *Claims) ValidateTokenType(expected string) error {
	if c.TokenType != expected {
		return ErrTokenType
	}
	return nil
}

// ValidateExpiry checks exp and nbf against now, allowing leeway for
// clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
