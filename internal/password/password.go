// Package password verifies stored credentials that may be in one of two
// formats: a bcrypt hash (new rows) or legacy plaintext (rows that predate the
// migration). Format detection and comparison live entirely here so callers
// never branch on storage format themselves.
package password

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// hashMarkers are the bcrypt scheme prefixes we accept on stored values.
var hashMarkers = []string{"$2a$", "$2b$", "$2y$"}

// MinCost is the lowest work factor ever used when hashing a new password.
const MinCost = 10

// IsHashed reports whether stored carries a recognized hash marker.
func IsHashed(stored string) bool {
	for _, m := range hashMarkers {
		if strings.HasPrefix(stored, m) {
			return true
		}
	}
	return false
}

// Verify compares a submitted plaintext against a stored value. Hashed values
// go through bcrypt; any internal bcrypt failure counts as a mismatch rather
// than an error. Unmarked values fall back to constant-time equality, the
// legacy read path, never used for new writes.
func Verify(stored, submitted string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// Hash produces a bcrypt hash for a new credential. Costs below MinCost are
// raised to MinCost so no write can undercut the migration floor.
func Hash(plain string, cost int) (string, error) {
	if cost < MinCost {
		cost = MinCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
