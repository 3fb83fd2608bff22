// Package coordinate arbitrates verification requests: cache first, one
// outstanding remote call per cache key, offline fallback on failure.
package coordinate

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/chaguan/chaguan/internal/cache"
	"github.com/chaguan/chaguan/internal/cachekey"
	"github.com/chaguan/chaguan/internal/model"
)

// Verifier is the narrow contract a verification backend satisfies.
// The remote service client, the offline fallback, and LLM providers all
// implement it.
type Verifier interface {
	Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationResult, error)
}

// Coordinator drives claims through unverified -> pending -> {verified,
// failed}. Concurrent resolutions of claims sharing a cache key collapse
// into a single outstanding remote call whose result fans out to every
// waiter. Two distinct texts normalizing to the same key share one entry
// and one in-flight slot.
type Coordinator struct {
	cache   *cache.VerificationCache
	remote  Verifier
	offline Verifier
	history *cache.History
	ttl     time.Duration
	flight  singleflight.Group
	log     *zap.Logger
}

// Options configure a Coordinator
type Options struct {
	// TTL for freshly stored results; DefaultTTL when zero
	TTL time.Duration
	// History, when set, receives every user-visible outcome
	History *cache.History
}

// New creates a coordinator over a cache and a remote verifier. The
// offline verifier is consulted when the remote path fails.
func New(vc *cache.VerificationCache, remote, offline Verifier, opts Options, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Coordinator{
		cache:   vc,
		remote:  remote,
		offline: offline,
		history: opts.History,
		ttl:     ttl,
		log:     log,
	}
}

// Resolve verifies a claim, mutating its status and result in place.
// The error is non-nil only when both the remote call and the offline
// fallback fail; callers otherwise always get a usable result, possibly
// a low-confidence one marked offline.
func (c *Coordinator) Resolve(ctx context.Context, claim *model.Claim) (*model.VerificationResult, error) {
	key := cachekey.Verification(claim.Text, claim.Language)

	if result := c.cache.Get(claim.Text, claim.Language); result != nil {
		claim.Status = model.StatusVerified
		claim.Result = result
		return result, nil
	}

	claim.Status = model.StatusPending

	value, err, shared := c.flight.Do(key, func() (interface{}, error) {
		// A verification may have landed between the miss above and
		// this flight winning the slot.
		if result := c.cache.Get(claim.Text, claim.Language); result != nil {
			return result, nil
		}
		return c.verify(ctx, claim)
	})
	if err != nil {
		claim.Status = model.StatusFailed
		return nil, err
	}

	result := value.(*model.VerificationResult)
	if result.Offline {
		claim.Status = model.StatusFailed
	} else {
		claim.Status = model.StatusVerified
	}
	claim.Result = result

	if shared {
		c.log.Debug("verification shared with in-flight request", zap.String("key", key))
	}
	return result, nil
}

// verify performs the remote call for one in-flight slot, falling back to
// the offline verdict on timeout or transport failure.
func (c *Coordinator) verify(ctx context.Context, claim *model.Claim) (*model.VerificationResult, error) {
	req := model.VerificationRequest{Text: claim.Text, Language: claim.Language}

	result, err := c.remote.Verify(ctx, req)
	if err == nil {
		c.cache.Set(claim.Text, claim.Language, result, c.ttl)
		c.record(claim, result)
		c.log.Info("claim verified",
			zap.String("verdict", string(result.Verdict)),
			zap.Float64("confidence", result.Confidence))
		return result, nil
	}

	c.log.Warn("remote verification failed, using offline fallback",
		zap.String("claim_id", claim.ID), zap.Error(err))

	fallback, fbErr := c.offline.Verify(ctx, req)
	if fbErr != nil {
		return nil, fbErr
	}
	// Offline verdicts are not cached: a later retry should reach the
	// service again.
	c.record(claim, fallback)
	return fallback, nil
}

// record appends the outcome to the history log; failures only warn
func (c *Coordinator) record(claim *model.Claim, result *model.VerificationResult) {
	if c.history == nil {
		return
	}
	err := c.history.Append(cache.HistoryRecord{
		Claim:      claim.Text,
		Verdict:    result.Verdict,
		Confidence: result.Confidence,
		Summary:    result.Summary,
	})
	if err != nil {
		c.log.Warn("history append failed", zap.Error(err))
	}
}

// StartCleanup runs periodic expiry sweeps until ctx is done. Advisory
// housekeeping on its own goroutine; never blocks lookups.
func (c *Coordinator) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := c.cache.Cleanup()
				if removed > 0 {
					c.log.Debug("periodic cleanup", zap.Int("removed", removed))
				}
			}
		}
	}()
}

// Cache exposes the underlying verification cache for stats and admin
func (c *Coordinator) Cache() *cache.VerificationCache {
	return c.cache
}
