package blogsdk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshSkew refreshes the access token this long before it expires.
const refreshSkew = 30 * time.Second

// Session is an authenticated client. It refreshes its access token
// automatically.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// NewSession wraps an existing token pair. The access token's exp claim is
// read without verification to schedule refreshes.
func (c *Client) NewSession(access, refresh string) *Session {
	return &Session{
		client:       c,
		accessToken:  access,
		refreshToken: refresh,
		expiresAt:    expiryOf(access),
	}
}

// expiryOf returns the refresh deadline for token. An unreadable token is
// treated as already expired.
func expiryOf(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Add(-refreshSkew)
}

// getValidToken returns a usable access token, refreshing it if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token available")
	}

	out, err := s.client.RefreshToken(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = out.Access
	s.expiresAt = expiryOf(out.Access)
	return s.accessToken, nil
}

// AccessToken returns the current access token without checking expiry.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}
