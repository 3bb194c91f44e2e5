// Package cache provides pluggable byte caches for expensive pipeline
// stages. Pair sets, layouts and rendered artifacts are stored under
// content-hash keys, so identical inputs hit the cache no matter where
// the request came from.
//
// Three backends are provided: FileCache for CLI runs, RedisCache for
// shared server deployments, and NullCache to disable caching. Keys are
// produced by a Keyer so all backends agree on the key layout.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Stage TTLs. Pair sets and layouts are pure functions of their key, so
// the TTLs only bound disk growth; artifacts expire sooner because a
// renderer update should show up without a manual cache clear.
const (
	TTLPairs    = 30 * 24 * time.Hour
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte blobs under string keys. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero or less stores it without
	// expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Hash computes a SHA-256 hash of the input data and returns the full
// 64-character hex string. It is the canonical content hash for graphs
// and layouts throughout the pipeline.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
