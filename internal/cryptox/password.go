// Package cryptox implements password hashing for stored credentials.
//
// Two schemes coexist: bcrypt for newly written hashes and a legacy unsalted
// SHA-256 hex digest still present on rows imported from the old system. The
// scheme of a stored hash is decided once, from its prefix.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Scheme identifies the algorithm a stored password hash was produced with.
type Scheme int

const (
	SchemeBcrypt Scheme = iota
	SchemeLegacySHA256
)

// BcryptCost matches the work factor of existing bcrypt records.
const BcryptCost = 12

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// ClassifyHash resolves the scheme of a stored hash from its prefix.
func ClassifyHash(stored string) Scheme {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return SchemeBcrypt
		}
	}
	return SchemeLegacySHA256
}

func legacyDigest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether plain matches the stored hash under the
// hash's own scheme. It never returns an error: an empty or malformed stored
// hash simply does not match.
func VerifyPassword(plain, stored string) bool {
	if stored == "" {
		return false
	}
	switch ClassifyHash(stored) {
	case SchemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	default:
		digest := legacyDigest(plain)
		return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1
	}
}

// HashPassword hashes plain with bcrypt. When bcrypt rejects the input
// (passwords over 72 bytes), it degrades to the legacy digest instead of
// failing the write.
func HashPassword(plain string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return legacyDigest(plain)
	}
	return string(h)
}
