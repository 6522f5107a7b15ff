// Package cryptox implements credential hashing for user accounts.
//
// Passwords are never stored or compared in the clear: each user carries a
// random salt and an argon2id digest, and verification uses a constant-time
// comparison.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/taskflow/internal/common"
)

const saltSize = 16

// NewSalt returns a fresh random salt for hashing a password.
func NewSalt() []byte {
	return common.GenerateRandByteArray(saltSize)
}

// HashPassword derives an argon2id digest of password with the given salt.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword reports whether candidate hashes to the stored digest
// under the stored salt. The comparison is constant-time.
func VerifyPassword(hash []byte, salt []byte, candidate []byte) bool {
	derived := HashPassword(candidate, salt)
	return subtle.ConstantTimeCompare(hash, derived) == 1
}
