package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/blog/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestObtainTokenPair(t *testing.T) {
	st := newTestStore(t)
	users := &UserService{Store: st}
	tokens := &TokenService{KeyManager: newTestKeyManager(t), Store: st}
	ctx := t.Context()

	alice := registerUser(t, users, "alice", "pw123")

	pair, err := tokens.ObtainTokenPair(ctx, "alice", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	require.NotEqual(t, pair.Access, pair.Refresh)

	access, err := tokens.KeyManager.Verifier.Verify(pair.Access)
	require.NoError(t, err)
	require.Equal(t, jwtx.TokenTypeAccess, access.TokenType)
	require.Equal(t, "alice", access.Username)

	caller, err := IdentityFromClaims(access)
	require.NoError(t, err)
	require.Equal(t, alice.ID, caller.UserID)

	refresh, err := tokens.KeyManager.Verifier.Verify(pair.Refresh)
	require.NoError(t, err)
	require.Equal(t, jwtx.TokenTypeRefresh, refresh.TokenType)
	require.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))

	_, err = tokens.ObtainTokenPair(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = tokens.ObtainTokenPair(ctx, "mallory", "pw123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	st := newTestStore(t)
	users := &UserService{Store: st}
	km := newTestKeyManager(t)
	tokens := &TokenService{KeyManager: km, Store: st}
	ctx := t.Context()

	alice := registerUser(t, users, "alice", "pw123")
	pair, err := tokens.ObtainTokenPair(ctx, "alice", "pw123")
	require.NoError(t, err)

	t.Run("valid refresh yields access for same user", func(t *testing.T) {
		access, err := tokens.RefreshToken(ctx, pair.Refresh)
		require.NoError(t, err)

		claims, err := km.Verifier.Verify(access)
		require.NoError(t, err)
		require.Equal(t, jwtx.TokenTypeAccess, claims.TokenType)

		caller, err := IdentityFromClaims(claims)
		require.NoError(t, err)
		require.Equal(t, alice.ID, caller.UserID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.RefreshToken(ctx, "not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := tokens.RefreshToken(ctx, pair.Access)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("expired", func(t *testing.T) {
		claims := jwtx.NewClaims("1", "alice", jwtx.TokenTypeRefresh, testIssuer, time.Minute, time.Now().Add(-time.Hour))
		expired, err := km.Sign(claims)
		require.NoError(t, err)

		_, err = tokens.RefreshToken(ctx, expired)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("signed by another instance", func(t *testing.T) {
		other := &TokenService{KeyManager: newTestKeyManager(t), Store: st}
		foreign, err := other.ObtainTokenPair(ctx, "alice", "pw123")
		require.NoError(t, err)

		_, err = tokens.RefreshToken(ctx, foreign.Refresh)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("unknown user", func(t *testing.T) {
		claims := jwtx.NewClaims("4242", "ghost", jwtx.TokenTypeRefresh, testIssuer, time.Hour, time.Now())
		ghost, err := km.Sign(claims)
		require.NoError(t, err)

		_, err = tokens.RefreshToken(ctx, ghost)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestIdentityFromClaims(t *testing.T) {
	t.Parallel()

	_, err := IdentityFromClaims(jwtx.Claims{})
	require.ErrorIs(t, err, ErrUnauthenticated)

	c := jwtx.NewClaims("abc", "x", jwtx.TokenTypeAccess, testIssuer, time.Minute, time.Now())
	_, err = IdentityFromClaims(c)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
