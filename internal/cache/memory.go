package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process memory. Entries are stored without
// a backend-level TTL: expiry is decided by VerificationCache so that
// expired reads are counted as misses rather than silently dropped.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves an entry by key
func (s *MemoryStore) Get(key string) (*Entry, bool, error) {
	val, found := s.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	return val.(*Entry), true, nil
}

// Put stores an entry, replacing any existing entry for the same key
func (s *MemoryStore) Put(entry *Entry) error {
	s.cache.Set(entry.Key, entry, gocache.NoExpiration)
	return nil
}

// Delete removes an entry; no-op when absent
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Clear removes all entries
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}

// Entries returns a snapshot of all live entries
func (s *MemoryStore) Entries() ([]*Entry, error) {
	items := s.cache.Items()
	entries := make([]*Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, item.Object.(*Entry))
	}
	return entries, nil
}
