package extract

import "github.com/chaguan/chaguan/internal/model"

// DedupRegistry tracks claim texts already processed in one document
// session. Membership is keyed on exact detected text, not the normalized
// cache key: near-duplicates differing by whitespace are distinct here,
// a documented limitation rather than a bug to silently fix.
//
// The registry is owned by the single-threaded detection context and
// needs no locking.
type DedupRegistry struct {
	seen map[string]*model.Claim
}

// NewDedupRegistry creates an empty session registry
func NewDedupRegistry() *DedupRegistry {
	return &DedupRegistry{seen: make(map[string]*model.Claim)}
}

// Seen reports whether this exact claim text was already recorded
func (r *DedupRegistry) Seen(text string) bool {
	_, ok := r.seen[text]
	return ok
}

// Record remembers a claim under its exact text
func (r *DedupRegistry) Record(text string, claim *model.Claim) {
	r.seen[text] = claim
}

// Get returns the claim recorded for text, if any
func (r *DedupRegistry) Get(text string) (*model.Claim, bool) {
	claim, ok := r.seen[text]
	return claim, ok
}

// Len returns the number of distinct claim texts recorded
func (r *DedupRegistry) Len() int {
	return len(r.seen)
}

// Reset drops all session state, for reuse on navigation
func (r *DedupRegistry) Reset() {
	r.seen = make(map[string]*model.Claim)
}

// Filter returns the claims not yet seen, recording each as it passes.
// The returned slice preserves input order.
func (r *DedupRegistry) Filter(claims []*model.Claim) []*model.Claim {
	var fresh []*model.Claim
	for _, claim := range claims {
		if r.Seen(claim.Text) {
			continue
		}
		r.Record(claim.Text, claim)
		fresh = append(fresh, claim)
	}
	return fresh
}
