// Package watch consumes content-change notifications from a host
// document, batches bursts, and re-runs claim detection on newly added
// subtrees only, never the whole document.
package watch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/chaguan/chaguan/internal/extract"
	"github.com/chaguan/chaguan/internal/model"
)

// DefaultDebounce is the window within which change bursts are coalesced
const DefaultDebounce = time.Second

// Change is one batch of nodes added to the host document. The watcher is
// a pure consumer of these; the notification mechanism behind them is the
// host's concern.
type Change struct {
	Nodes []*html.Node
}

// Watcher debounces change batches and feeds the added subtrees through
// extraction, detection, and session dedup.
type Watcher struct {
	extractor *extract.TextExtractor
	detector  extract.Detector
	registry  *extract.DedupRegistry
	window    time.Duration
	log       *zap.Logger
}

// NewWatcher creates a watcher with the default debounce window
func NewWatcher(extractor *extract.TextExtractor, detector extract.Detector, registry *extract.DedupRegistry, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		extractor: extractor,
		detector:  detector,
		registry:  registry,
		window:    DefaultDebounce,
		log:       log,
	}
}

// SetWindow overrides the debounce window (tests use short windows)
func (w *Watcher) SetWindow(d time.Duration) {
	w.window = d
}

// Run consumes changes until ctx is done or the channel closes, invoking
// emit with each flush's fresh claims. Runs on a single goroutine: the
// registry needs no locking.
func (w *Watcher) Run(ctx context.Context, changes <-chan Change, emit func([]*model.Claim)) {
	var pending []*html.Node
	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		if len(pending) == 0 {
			return
		}
		claims := w.process(pending)
		pending = nil
		if len(claims) > 0 {
			emit(claims)
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case change, ok := <-changes:
			if !ok {
				flush()
				return
			}
			pending = append(pending, change.Nodes...)
			if timer == nil {
				timer = time.NewTimer(w.window)
				fire = timer.C
			}

		case <-fire:
			timer = nil
			fire = nil
			flush()
		}
	}
}

// process extracts and detects claims from a flushed batch. Nodes seen
// twice in one batch, or nested under another batched node, are processed
// once.
func (w *Watcher) process(nodes []*html.Node) []*model.Claim {
	roots := dedupeNodes(nodes)

	var fresh []*model.Claim
	for _, node := range roots {
		for _, segment := range w.extractor.Extract(node) {
			detected := w.detector.Detect(segment.Text)
			for _, claim := range detected {
				// Rebase positions onto the document-wide offsets
				claim.Position.Start += segment.Start
				claim.Position.End += segment.Start
			}
			fresh = append(fresh, w.registry.Filter(detected)...)
		}
	}

	w.log.Debug("mutation batch processed",
		zap.Int("nodes", len(nodes)),
		zap.Int("roots", len(roots)),
		zap.Int("new_claims", len(fresh)))
	return fresh
}

// dedupeNodes drops repeated nodes and nodes nested under another node in
// the same batch, preserving first-seen order.
func dedupeNodes(nodes []*html.Node) []*html.Node {
	seen := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		seen[n] = true
	}

	var roots []*html.Node
	taken := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		if taken[n] || hasAncestorIn(n, seen) {
			continue
		}
		taken[n] = true
		roots = append(roots, n)
	}
	return roots
}

// hasAncestorIn reports whether any proper ancestor of n is in set
func hasAncestorIn(n *html.Node, set map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if set[p] {
			return true
		}
	}
	return false
}
