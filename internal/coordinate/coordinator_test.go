package coordinate

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chaguan/chaguan/internal/cache"
	"github.com/chaguan/chaguan/internal/model"
	"github.com/chaguan/chaguan/internal/verify"
)

// stubVerifier counts calls and can be gated to hold requests in flight
type stubVerifier struct {
	calls   int64
	gate    chan struct{}
	err     error
	verdict model.Verdict
}

func (s *stubVerifier) Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationResult, error) {
	atomic.AddInt64(&s.calls, 1)
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	verdict := s.verdict
	if verdict == "" {
		verdict = model.VerdictTrue
	}
	return &model.VerificationResult{
		ID:            model.NewID("verif"),
		Verdict:       verdict,
		Confidence:    0.9,
		Summary:       "stub verdict",
		EvidenceChain: []model.Evidence{},
		OriginalClaim: req.Text,
		Language:      req.Language,
		CreatedAt:     time.Now(),
	}, nil
}

func newTestCoordinator(remote Verifier) *Coordinator {
	vc := cache.New(cache.NewMemoryStore(), zap.NewNop())
	return New(vc, remote, verify.NewOfflineVerifier(), Options{TTL: time.Hour}, zap.NewNop())
}

func testClaim(text string) *model.Claim {
	return &model.Claim{
		ID:       model.NewID("claim"),
		Text:     text,
		Type:     model.ClaimTypeFactual,
		Language: "zh-CN",
		Status:   model.StatusUnverified,
	}
}

func TestCoordinator_CacheHitSkipsRemote(t *testing.T) {
	stub := &stubVerifier{}
	c := newTestCoordinator(stub)
	claim := testClaim("据报道，该药物在临床研究中显示91%的有效率。")

	first, err := c.Resolve(context.Background(), claim)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if first.Cached {
		t.Error("first result must not be marked cached")
	}
	if claim.Status != model.StatusVerified {
		t.Errorf("status = %q, want verified", claim.Status)
	}

	second, err := c.Resolve(context.Background(), testClaim(claim.Text))
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !second.Cached {
		t.Error("second result must come from cache")
	}
	if got := atomic.LoadInt64(&stub.calls); got != 1 {
		t.Errorf("remote called %d times, want 1", got)
	}
}

func TestCoordinator_ConcurrentResolvesCollapse(t *testing.T) {
	stub := &stubVerifier{gate: make(chan struct{})}
	c := newTestCoordinator(stub)

	// Distinct texts that normalize to the same key share one in-flight
	// slot: this is deliberate dedup, not a collision.
	texts := []string{
		"据报道，该药物在临床研究中显示91%的有效率。",
		"据报道 该药物在临床研究中显示91%的有效率",
	}

	const waiters = 8
	results := make([]*model.VerificationResult, waiters)
	errs := make([]error, waiters)
	var started, done sync.WaitGroup

	for i := 0; i < waiters; i++ {
		started.Add(1)
		done.Add(1)
		go func(idx int) {
			defer done.Done()
			claim := testClaim(texts[idx%len(texts)])
			started.Done()
			results[idx], errs[idx] = c.Resolve(context.Background(), claim)
		}(i)
	}

	started.Wait()
	time.Sleep(50 * time.Millisecond) // Let every waiter reach the flight
	close(stub.gate)
	done.Wait()

	if got := atomic.LoadInt64(&stub.calls); got != 1 {
		t.Errorf("remote called %d times for one key, want 1", got)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Fatalf("waiter %d error: %v", i, errs[i])
		}
		if results[i].ID != results[0].ID {
			t.Errorf("waiter %d got a different result: %q vs %q", i, results[i].ID, results[0].ID)
		}
	}
}

func TestCoordinator_FailureFallsBackOffline(t *testing.T) {
	stub := &stubVerifier{err: &verify.TransportError{Err: errors.New("connection refused")}}
	c := newTestCoordinator(stub)
	claim := testClaim("专家称这种做法存在严重的安全隐患需要警惕。")

	result, err := c.Resolve(context.Background(), claim)
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if !result.Offline {
		t.Error("fallback result must be marked offline")
	}
	if result.Cached {
		t.Error("offline result must not be marked cached")
	}
	if result.Confidence >= 0.5 {
		t.Errorf("offline confidence = %v, want lowered", result.Confidence)
	}
	if claim.Status != model.StatusFailed {
		t.Errorf("status = %q, want failed", claim.Status)
	}

	// Offline verdicts are not cached: the next resolve retries remote
	stub.err = nil
	if _, err := c.Resolve(context.Background(), testClaim(claim.Text)); err != nil {
		t.Fatalf("retry resolve: %v", err)
	}
	if got := atomic.LoadInt64(&stub.calls); got != 2 {
		t.Errorf("remote called %d times, want 2 (retry after offline)", got)
	}
}

func TestCoordinator_TimeoutFallsBackOffline(t *testing.T) {
	stub := &stubVerifier{err: &verify.TimeoutError{Err: context.DeadlineExceeded}}
	c := newTestCoordinator(stub)

	result, err := c.Resolve(context.Background(), testClaim("官方宣布新的管理办法已经在上周正式生效了。"))
	if err != nil {
		t.Fatalf("timeout must degrade, not error: %v", err)
	}
	if !result.Offline || result.Verdict != model.VerdictUnverified {
		t.Errorf("timeout fallback = %+v, want offline unverified", result)
	}
}

func TestCoordinator_SuccessIsWrittenToHistory(t *testing.T) {
	history := cache.NewHistory(filepath.Join(t.TempDir(), "history.jsonl"))
	vc := cache.New(cache.NewMemoryStore(), zap.NewNop())
	stub := &stubVerifier{verdict: model.VerdictFalse}
	c := New(vc, stub, verify.NewOfflineVerifier(), Options{TTL: time.Hour, History: history}, zap.NewNop())

	claim := testClaim("据报道，这条声明的结果应该被写入历史。")
	if _, err := c.Resolve(context.Background(), claim); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	records, err := history.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	if records[0].Claim != claim.Text || records[0].Verdict != model.VerdictFalse {
		t.Errorf("history record = %+v", records[0])
	}

	// A cache hit is not a new user-visible outcome
	if _, err := c.Resolve(context.Background(), testClaim(claim.Text)); err != nil {
		t.Fatalf("cached resolve: %v", err)
	}
	records, _ = history.Recent(0)
	if len(records) != 1 {
		t.Errorf("cache hit must not append history, got %d records", len(records))
	}
}
