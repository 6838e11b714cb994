package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/lexcrawl"
	"github.com/fwojciec/lexcrawl/bloom"
)

// Kind is the type of page a request fetches. Higher kinds are served first.
type Kind int

const (
	KindListing Kind = iota
	KindDocument
	KindTab
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindDocument:
		return "document"
	case KindTab:
		return "tab"
	}
	return "unknown"
}

// Request is a unit of crawl work.
type Request struct {
	Kind Kind
	URL  string
	// CELEX is the accumulator key of the document a tab request belongs
	// to. It falls back to the document URL when no CELEX is known.
	CELEX string
	Tab   lexcrawl.Tab
}

// Frontier is an in-memory request queue ordered by kind, FIFO within a
// kind. Listing and document URLs are deduplicated with a Bloom filter; tab
// requests are always accepted. It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *requestHeap
	seq   uint64
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &requestHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a request to the frontier.
// Returns false if a listing or document URL has already been seen.
// URL fragments are stripped before deduplication.
func (f *Frontier) Push(req Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	req.URL = stripFragment(req.URL)
	if req.Kind != KindTab && f.seen.TestAndAdd(req.URL) {
		return false
	}

	heap.Push(f.queue, queued{req: req, seq: f.seq})
	f.seq++
	return true
}

// Pop returns the next request.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return Request{}, false
	}
	q, _ := heap.Pop(f.queue).(queued)
	return q.req, true
}

func stripFragment(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

type queued struct {
	req Request
	seq uint64
}

// requestHeap implements heap.Interface. Higher kinds pop first, and
// requests of the same kind pop in insertion order.
type requestHeap []queued

func (h requestHeap) Len() int { return len(h) }

func (h requestHeap) Less(i, j int) bool {
	if h[i].req.Kind != h[j].req.Kind {
		return h[i].req.Kind > h[j].req.Kind
	}
	return h[i].seq < h[j].seq
}

func (h requestHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *requestHeap) Push(x any) {
	q, _ := x.(queued)
	*h = append(*h, q)
}

func (h *requestHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
