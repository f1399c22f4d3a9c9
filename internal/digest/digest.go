// Package digest implements answer verification. Submitted answers are never
// stored or compared in plaintext; both sides of the comparison are SHA-256
// digests in lowercase hex.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Answer returns the digest of a submitted answer.
func Answer(answer string) string {
	sum := sha256.Sum256([]byte(answer))
	return hex.EncodeToString(sum[:])
}

// Matches compares a submitted answer against a stored digest.
func Matches(answer, storedDigest string) bool {
	return Answer(answer) == storedDigest
}
