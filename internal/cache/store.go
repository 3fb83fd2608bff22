// Package cache implements the verification cache: an expiring,
// content-addressed store of verification results with access accounting
// and hit/miss statistics.
package cache

import "time"

// Entry is one cached verification result. At most one live entry exists
// per key at any time.
type Entry struct {
	Key         string    `json:"key"`
	Result      []byte    `json:"result"` // Serialized VerificationResult
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	AccessCount int       `json:"access_count"`
}

// Store is the repository abstraction behind the verification cache.
// Backends handle raw entry storage only; expiry accounting and statistics
// belong to VerificationCache.
type Store interface {
	Get(key string) (*Entry, bool, error)
	Put(entry *Entry) error
	Delete(key string) error
	Clear() error

	// Entries returns a snapshot of all live entries, in no particular
	// order. Used by the cleanup sweep.
	Entries() ([]*Entry, error)
}
