package service

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/blog/internal/blog/domain"
	"github.com/aussiebroadwan/blog/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	users := &UserService{Store: newTestStore(t)}
	ctx := t.Context()

	u := registerUser(t, users, "alice", "pw123")
	require.NotZero(t, u.ID)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "alice@example.com", u.Email)

	t.Run("password is stored hashed", func(t *testing.T) {
		stored, err := users.Store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotEqual(t, "pw123", stored.PasswordHash)
		require.NotContains(t, stored.PasswordHash, "pw123")
		require.True(t, strings.HasPrefix(stored.PasswordHash, "$argon2id$"))
		require.NoError(t, cryptox.VerifyPassword("pw123", stored.PasswordHash))
	})

	t.Run("duplicate username and email", func(t *testing.T) {
		_, err := users.Register(ctx, RegisterInput{Username: "alice", Email: "ALICE@example.com", Password: "x"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, []string{msgUsernameTaken}, verr.Fields["username"])
		require.Equal(t, []string{msgEmailTaken}, verr.Fields["email"])
	})

	t.Run("malformed fields", func(t *testing.T) {
		_, err := users.Register(ctx, RegisterInput{Username: "bad name!", Email: "nope", Password: ""})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, []string{msgInvalidUsername}, verr.Fields["username"])
		require.Equal(t, []string{msgInvalidEmail}, verr.Fields["email"])
		require.Equal(t, []string{msgRequired}, verr.Fields["password"])
	})

	t.Run("username too long", func(t *testing.T) {
		_, err := users.Register(ctx, RegisterInput{
			Username: strings.Repeat("a", MaxUsernameLength+1),
			Email:    "long@example.com",
			Password: "pw",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, []string{"Ensure this field has no more than 150 characters."}, verr.Fields["username"])
	})
}

func TestGetCurrentUser(t *testing.T) {
	users := &UserService{Store: newTestStore(t)}
	ctx := t.Context()

	alice := registerUser(t, users, "alice", "pw123")

	got, err := users.GetCurrentUser(ctx, identityOf(alice))
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)
	require.Equal(t, "alice@example.com", got.Email)

	_, err = users.GetCurrentUser(ctx, nil)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = users.GetCurrentUser(ctx, &domain.Identity{UserID: 999})
	require.ErrorIs(t, err, ErrUnauthenticated)
}
