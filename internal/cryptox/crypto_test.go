package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDigest_Deterministic(t *testing.T) {
	d1 := DeriveDigest("secret-password", "fixed-salt")
	d2 := DeriveDigest("secret-password", "fixed-salt")

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, KeyLength*2)
	_, err := hex.DecodeString(d1)
	assert.NoError(t, err)
}

// Vector produced by Node's crypto.pbkdf2Sync(password, salt, 1000, 64, "sha512"),
// the format of digests already stored in the users table.
func TestDeriveDigest_KnownAnswer(t *testing.T) {
	const (
		password = "pässwörd123"
		salt     = "0123456789abcdef0123456789abcdef"
		want     = "22724a35b9f2371494e325184492a31bfd5f1a5160f2b116c52a409107381c6f" +
			"45a7e60b80efd6b70c07c293df6e6b7cf046e8336ad7474cde71f285353f47d7"
	)

	assert.Equal(t, want, DeriveDigest(password, salt))
	assert.True(t, VerifyPassword(password, salt, want))
	assert.False(t, VerifyPassword("passwörd123", salt, want))
}

func TestDeriveDigest_DifferentInputs(t *testing.T) {
	assert.NotEqual(t, DeriveDigest("secret-password", "salt-1"), DeriveDigest("secret-password", "salt-2"))
	assert.NotEqual(t, DeriveDigest("password-1", "salt"), DeriveDigest("password-2", "salt"))
}

func TestHashPassword_SaltShape(t *testing.T) {
	salt, digest, err := HashPassword("password123")
	require.NoError(t, err)

	assert.Len(t, salt, SaltSize*2)
	_, err = hex.DecodeString(salt)
	assert.NoError(t, err)
	assert.Equal(t, DeriveDigest("password123", salt), digest)
}

func TestHashPassword_FreshSaltEachCall(t *testing.T) {
	salt1, digest1, err := HashPassword("password123")
	require.NoError(t, err)
	salt2, digest2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, digest1, digest2)
}

func TestVerifyPassword(t *testing.T) {
	passwords := []string{"password123", "", "pässwörd", "a very long passphrase with spaces"}

	for _, p := range passwords {
		salt, digest, err := HashPassword(p)
		require.NoError(t, err)

		assert.True(t, VerifyPassword(p, salt, digest), "own password must verify: %q", p)
		assert.False(t, VerifyPassword(p+"x", salt, digest), "other password must not verify: %q", p)
		assert.False(t, VerifyPassword(p, salt+"00", digest), "other salt must not verify: %q", p)
	}
}

func TestVerifyPassword_TruncatedDigest(t *testing.T) {
	salt, digest, err := HashPassword("password123")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("password123", salt, digest[:len(digest)-2]))
	assert.False(t, VerifyPassword("password123", salt, ""))
}
