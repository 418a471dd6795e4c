package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Key builds a namespaced cache key: prefix:hash(name).
// Hashing keeps arbitrary package names (slashes, scopes) filesystem- and
// Redis-safe.
func Key(prefix, name string) string {
	return fmt.Sprintf("%s:%s", prefix, Hash([]byte(name)))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
