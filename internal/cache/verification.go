package cache

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chaguan/chaguan/internal/cachekey"
	"github.com/chaguan/chaguan/internal/model"
)

// DefaultTTL is how long a verification result stays fresh
const DefaultTTL = 7 * 24 * time.Hour

// nowFunc is the clock used for expiry decisions (injectable for tests)
var nowFunc = time.Now

// Stats are the process-lifetime cache counters. Reset only by Clear.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// VerificationCache maps cache keys to verification results with
// time-bounded expiry and access accounting. Storage faults are absorbed
// and treated as misses: verification correctness never depends on cache
// availability.
type VerificationCache struct {
	store Store
	log   *zap.Logger

	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// New creates a verification cache over the given store
func New(store Store, log *zap.Logger) *VerificationCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &VerificationCache{store: store, log: log}
}

// Get returns the cached result for a (claim, language) pair, or nil on
// miss. Expired entries are deleted and never returned. A hit increments
// the entry's access count and marks the result as cached.
func (c *VerificationCache) Get(claim, language string) *model.VerificationResult {
	key := cachekey.Verification(claim, language)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found, err := c.store.Get(key)
	if err != nil {
		c.log.Warn("cache get failed, treating as miss", zap.String("key", key), zap.Error(err))
		c.misses++
		return nil
	}
	if !found {
		c.misses++
		c.log.Debug("cache miss", zap.String("key", key))
		return nil
	}

	if !nowFunc().Before(entry.ExpiresAt) {
		if err := c.store.Delete(key); err != nil {
			c.log.Warn("expired entry delete failed", zap.String("key", key), zap.Error(err))
		}
		c.misses++
		c.log.Debug("cache expired", zap.String("key", key))
		return nil
	}

	var result model.VerificationResult
	if err := json.Unmarshal(entry.Result, &result); err != nil {
		// Corrupt entry: drop it and report a miss
		_ = c.store.Delete(key)
		c.misses++
		c.log.Warn("corrupt cache entry dropped", zap.String("key", key), zap.Error(err))
		return nil
	}

	entry.AccessCount++
	if err := c.store.Put(entry); err != nil {
		c.log.Warn("access count update failed", zap.String("key", key), zap.Error(err))
	}

	c.hits++
	c.log.Debug("cache hit", zap.String("key", key), zap.Int("access_count", entry.AccessCount))

	result.Cached = true
	return &result
}

// Set stores a result for a (claim, language) pair, superseding any
// existing entry for the same key. A non-positive ttl produces an entry
// that is already expired.
func (c *VerificationCache) Set(claim, language string, result *model.VerificationResult, ttl time.Duration) {
	key := cachekey.Verification(claim, language)

	data, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("cache set: encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	now := nowFunc()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(key); err != nil {
		c.log.Warn("cache set: delete existing failed", zap.String("key", key), zap.Error(err))
	}

	entry := &Entry{
		Key:         key,
		Result:      data,
		Language:    language,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
		AccessCount: 0,
	}
	if err := c.store.Put(entry); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return
	}

	c.log.Debug("cache set", zap.String("key", key), zap.Duration("ttl", ttl))
}

// SetDefault stores a result with the default TTL
func (c *VerificationCache) SetDefault(claim, language string, result *model.VerificationResult) {
	c.Set(claim, language, result, DefaultTTL)
}

// Remove deletes the entry for a (claim, language) pair; no-op if absent
func (c *VerificationCache) Remove(claim, language string) {
	key := cachekey.Verification(claim, language)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(key); err != nil {
		c.log.Warn("cache remove failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear deletes all entries and resets statistics
func (c *VerificationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		c.log.Warn("cache clear failed", zap.Error(err))
	}
	c.hits = 0
	c.misses = 0
	c.log.Info("cache cleared")
}

// Cleanup deletes all entries whose expiry is strictly before now and
// returns the number removed. Advisory housekeeping: Get already refuses
// expired entries, so correctness never depends on this running.
func (c *VerificationCache) Cleanup() int {
	now := nowFunc()

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.store.Entries()
	if err != nil {
		c.log.Warn("cache cleanup: list failed", zap.Error(err))
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.ExpiresAt.Before(now) {
			if err := c.store.Delete(entry.Key); err != nil {
				c.log.Warn("cache cleanup: delete failed", zap.String("key", entry.Key), zap.Error(err))
				continue
			}
			removed++
		}
	}

	c.log.Info("cache cleanup complete", zap.Int("removed", removed))
	return removed
}

// Stats returns the hit/miss counters. HitRate is 0 when no lookups have
// happened yet.
func (c *VerificationCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}
