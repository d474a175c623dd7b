// Package cache memoizes per-document extraction results. The key is a hash
// of the document content, so re-running a batch after a partial failure
// skips every document whose text has not changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from document content.
func Key(content string) string {
	hash := sha256.Sum256([]byte(content))
	return "contratista:v1:" + hex.EncodeToString(hash[:])
}
