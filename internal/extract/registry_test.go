package extract

import (
	"testing"

	"github.com/chaguan/chaguan/internal/model"
)

func TestDedupRegistry_RecordThenSeen(t *testing.T) {
	registry := NewDedupRegistry()
	text := "据报道，该药物在临床研究中显示91%的有效率。"

	if registry.Seen(text) {
		t.Error("fresh registry reported text as seen")
	}

	registry.Record(text, &model.Claim{Text: text})

	if !registry.Seen(text) {
		t.Error("recorded text not reported as seen")
	}
	// A single-character difference is a distinct claim
	if registry.Seen(text + " ") {
		t.Error("whitespace variant must be treated as distinct")
	}
	if registry.Seen("据报道,该药物在临床研究中显示91%的有效率。") {
		t.Error("punctuation variant must be treated as distinct")
	}
}

func TestDedupRegistry_Filter(t *testing.T) {
	registry := NewDedupRegistry()
	a := &model.Claim{Text: "claim a"}
	b := &model.Claim{Text: "claim b"}
	dup := &model.Claim{Text: "claim a"}

	fresh := registry.Filter([]*model.Claim{a, b, dup})
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh claims, got %d", len(fresh))
	}
	if fresh[0] != a || fresh[1] != b {
		t.Error("filter must preserve input order")
	}

	again := registry.Filter([]*model.Claim{a, b})
	if len(again) != 0 {
		t.Errorf("second pass should be fully suppressed, got %d", len(again))
	}
}

func TestDedupRegistry_Reset(t *testing.T) {
	registry := NewDedupRegistry()
	registry.Record("session claim", &model.Claim{Text: "session claim"})

	registry.Reset()

	if registry.Seen("session claim") {
		t.Error("Reset must drop session state")
	}
	if registry.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", registry.Len())
	}
}
