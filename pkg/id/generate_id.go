// Package id generates the opaque public identifiers exposed by the API.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a random 32-character lowercase hex string
// (no separators or prefixes), suitable for public resource IDs.
func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
