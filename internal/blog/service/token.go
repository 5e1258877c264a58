package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
	"github.com/aussiebroadwan/blog/internal/blog/store"
	"github.com/aussiebroadwan/blog/pkg/cryptox"
	"github.com/aussiebroadwan/blog/pkg/jwtx"
	"github.com/aussiebroadwan/blog/pkg/slogx"
)

// TokenService issues and refreshes JWT token pairs for username/password logins.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// dummyHash is verified against when the username is unknown so both
// failure paths cost one argon2 run.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("not-a-real-password")
	if err != nil {
		panic(err)
	}
	return h
})

// ObtainTokenPair checks username and password and issues an access and a
// refresh token. Unknown users and wrong passwords both yield
// ErrInvalidCredentials.
func (s *TokenService) ObtainTokenPair(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		_ = cryptox.VerifyPassword(password, dummyHash())
		l.Info("token request for unknown user", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("token request with bad password", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	access, err := s.sign(user, jwtx.TokenTypeAccess, s.accessTTL(), now)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, jwtx.TokenTypeRefresh, s.refreshTTL(), now)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshToken exchanges a refresh token for a new access token for the same
// user. The refresh token itself is not rotated.
func (s *TokenService) RefreshToken(ctx context.Context, refresh string) (string, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.KeyManager.Verifier.Verify(refresh)
	if err != nil {
		l.Info("refresh token rejected", slog.String("err", err.Error()))
		return "", ErrInvalidRefresh
	}
	if err := claims.ValidateTokenType(jwtx.TokenTypeRefresh); err != nil {
		l.Info("non-refresh token presented for refresh", slog.String("token_type", claims.TokenType))
		return "", ErrInvalidRefresh
	}

	caller, err := IdentityFromClaims(claims)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetUserByID(ctx, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidRefresh
	}
	if err != nil {
		return "", err
	}

	return s.sign(user, jwtx.TokenTypeAccess, s.accessTTL(), time.Now())
}

func (s *TokenService) sign(user domain.User, tokenType string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwtx.NewClaims(
		strconv.FormatInt(user.ID, 10),
		user.Username,
		tokenType,
		s.KeyManager.Issuer(),
		ttl,
		now,
	)
	return s.KeyManager.Sign(claims)
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// IdentityFromClaims turns verified token claims into a caller identity.
func IdentityFromClaims(c jwtx.Claims) (*domain.Identity, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrUnauthenticated
	}
	return &domain.Identity{UserID: id, Username: c.Username}, nil
}
