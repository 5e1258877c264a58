package service

import (
	"testing"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
	"github.com/aussiebroadwan/blog/internal/blog/store/drivers/sqlite"
	"github.com/aussiebroadwan/blog/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "blog-test"

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestKeyManager(t *testing.T) *jwtx.KeyManager {
	t.Helper()

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    testIssuer,
	})
	require.NoError(t, err)
	return km
}

func registerUser(t *testing.T, users *UserService, username, password string) domain.User {
	t.Helper()

	u, err := users.Register(t.Context(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	require.NoError(t, err)
	return u
}

func identityOf(u domain.User) *domain.Identity {
	return &domain.Identity{UserID: u.ID, Username: u.Username}
}

func ptr(s string) *string { return &s }
