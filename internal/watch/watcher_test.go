package watch

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/chaguan/chaguan/internal/extract"
	"github.com/chaguan/chaguan/internal/model"
)

func parseFragment(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return doc
}

// findElement returns the first element with the given tag
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func newTestWatcher() *Watcher {
	w := NewWatcher(extract.NewTextExtractor(), extract.NewPatternDetector(), extract.NewDedupRegistry(), zap.NewNop())
	w.SetWindow(20 * time.Millisecond)
	return w
}

type collector struct {
	mu      sync.Mutex
	batches [][]*model.Claim
}

func (c *collector) emit(claims []*model.Claim) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, claims)
}

func (c *collector) all() []*model.Claim {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*model.Claim
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}

func TestWatcher_DetectsClaimsInAddedNodes(t *testing.T) {
	w := newTestWatcher()
	doc := parseFragment(t, `<div><p>据报道，该药物在临床研究中显示91%的有效率。</p></div>`)

	changes := make(chan Change, 1)
	changes <- Change{Nodes: []*html.Node{doc}}
	close(changes)

	var c collector
	w.Run(context.Background(), changes, c.emit)

	claims := c.all()
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim from added subtree, got %d", len(claims))
	}
	if claims[0].RiskLevel == model.RiskNone {
		t.Errorf("risk level = %q, want above none", claims[0].RiskLevel)
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	w := newTestWatcher()

	a := parseFragment(t, `<p>据报道，第一批新增的内容包含了一条可以核查的声明。</p>`)
	b := parseFragment(t, `<p>研究表明第二批新增的内容也包含一条声明可以核查。</p>`)

	changes := make(chan Change)
	var c collector
	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), changes, c.emit)
		close(done)
	}()

	// Two changes inside one debounce window
	changes <- Change{Nodes: []*html.Node{a}}
	changes <- Change{Nodes: []*html.Node{b}}
	time.Sleep(60 * time.Millisecond)
	close(changes)
	<-done

	c.mu.Lock()
	batches := len(c.batches)
	c.mu.Unlock()
	if batches != 1 {
		t.Errorf("burst produced %d emissions, want 1 coalesced batch", batches)
	}
	if got := len(c.all()); got != 2 {
		t.Errorf("coalesced batch has %d claims, want 2", got)
	}
}

func TestWatcher_NestedNodesProcessedOnce(t *testing.T) {
	w := newTestWatcher()

	doc := parseFragment(t, `<div><p>据报道，嵌套节点中的这条声明只应该被处理一次。</p></div>`)
	div := findElement(doc, "div")
	p := findElement(doc, "p")
	if div == nil || p == nil {
		t.Fatal("fragment missing expected elements")
	}

	// The same subtree arrives as parent, child, and a duplicate
	changes := make(chan Change, 1)
	changes <- Change{Nodes: []*html.Node{div, p, div}}
	close(changes)

	var c collector
	w.Run(context.Background(), changes, c.emit)

	if got := len(c.all()); got != 1 {
		t.Errorf("nested/duplicate nodes yielded %d claims, want 1", got)
	}
}

func TestWatcher_SessionDedupAcrossBatches(t *testing.T) {
	w := newTestWatcher()
	fragment := `<p>据报道，跨批次重复出现的声明不应被再次上报。</p>`

	changes := make(chan Change)
	var c collector
	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), changes, c.emit)
		close(done)
	}()

	changes <- Change{Nodes: []*html.Node{parseFragment(t, fragment)}}
	time.Sleep(60 * time.Millisecond) // Let the first batch flush
	changes <- Change{Nodes: []*html.Node{parseFragment(t, fragment)}}
	time.Sleep(60 * time.Millisecond)
	close(changes)
	<-done

	if got := len(c.all()); got != 1 {
		t.Errorf("duplicate claim across batches yielded %d claims, want 1", got)
	}
}
