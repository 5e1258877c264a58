package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-pepper")
	if err != nil {
		panic(err)
	}

	if err := LoadPepper(filepath.Join(dir, "pepper")); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "pw123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 128)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotContains(t, hash, tt.password)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])

			require.NoError(t, VerifyPassword(tt.password, hash))
			require.ErrorIs(t, VerifyPassword(tt.password+"x", hash), ErrPasswordMismatch)
		})
	}
}

func TestHashPasswordUsesUniqueSalts(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	for _, h := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$",
	} {
		require.ErrorIs(t, VerifyPassword("pw", h), ErrInvalidHash, h)
	}
}

func TestLoadPepper(t *testing.T) {
	prev := pepperValue()
	t.Cleanup(func() { setPepper(prev) })

	path := filepath.Join(t.TempDir(), "nested", "pepper")

	require.NoError(t, LoadPepper(path))
	first := pepperValue()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, string(data))

	// A second load reads the same value back.
	setPepper("")
	require.NoError(t, LoadPepper(path))
	require.Equal(t, first, pepperValue())

	require.Error(t, LoadPepper(""))

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	require.Error(t, LoadPepper(empty))
}

func TestPepperChangesBreakVerification(t *testing.T) {
	prev := pepperValue()
	t.Cleanup(func() { setPepper(prev) })

	hash, err := HashPassword("pw123")
	require.NoError(t, err)

	setPepper("a-different-pepper")
	require.ErrorIs(t, VerifyPassword("pw123", hash), ErrPasswordMismatch)
}
