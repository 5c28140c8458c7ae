package model

import (
	"crypto/rand"
	"encoding/hex"
)

// IDLength is the length of a document identifier in hex characters.
const IDLength = 24

// NewID generates a new document identifier: 12 random bytes, hex encoded.
func NewID() string {
	b := make([]byte, IDLength/2)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// IsValidID reports whether s is a syntactically valid document identifier:
// exactly 24 lowercase hex characters. Only the format is checked; the
// referenced document need not exist.
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
