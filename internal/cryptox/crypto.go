// Package cryptox implements the credential hasher: salted PBKDF2-SHA512
// digests for stored passwords.
//
// Parameters are fixed so that digests produced by earlier deployments keep
// verifying: 16 random salt bytes hex-encoded, the hex salt text used as the
// PBKDF2 salt, 1000 iterations, 64-byte key, hex-encoded output.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/dmitrijs2005/medapp/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16
	Iterations = 1000
	KeyLength  = 64
)

// DeriveDigest returns the hex PBKDF2-SHA512 digest of password under salt.
func DeriveDigest(password, salt string) string {
	pw := []byte(password)
	key := pbkdf2.Key(pw, []byte(salt), Iterations, KeyLength, sha512.New)
	defer common.WipeByteArray(key)
	defer common.WipeByteArray(pw)
	return hex.EncodeToString(key)
}

// HashPassword generates a fresh salt and returns it together with the
// digest of password under that salt.
func HashPassword(password string) (salt, digest string, err error) {
	salt, err = common.MakeRandHexString(SaltSize)
	if err != nil {
		return "", "", err
	}
	return salt, DeriveDigest(password, salt), nil
}

// VerifyPassword reports whether password hashes to expectedDigest under salt.
func VerifyPassword(password, salt, expectedDigest string) bool {
	candidate := DeriveDigest(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(expectedDigest)) == 1
}
