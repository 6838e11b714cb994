package crawl

import (
	"slices"
	"sync"

	"github.com/fwojciec/lexcrawl"
)

// Accumulator merges per-tab fragments into one record per document and
// releases each record exactly once, when every expected tab has arrived.
// It is safe for concurrent use.
type Accumulator struct {
	mu      sync.Mutex
	pending map[string]*partial
	emitted map[string]bool
}

type partial struct {
	record   lexcrawl.Fragment
	expected map[lexcrawl.Tab]bool
	received map[lexcrawl.Tab]bool
}

func (p *partial) complete() bool {
	for tab := range p.expected {
		if !p.received[tab] {
			return false
		}
	}
	return true
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		pending: make(map[string]*partial),
		emitted: make(map[string]bool),
	}
}

// Seed starts the record for key from its main page fragment. The main tab
// is always expected and counts as received. When tabs is empty the record
// is complete at once: it is removed and returned with complete set.
//
// Seeding a key that is pending or already emitted returns ECONFLICT.
func (a *Accumulator) Seed(key string, main lexcrawl.Fragment, tabs []lexcrawl.Tab) (record lexcrawl.Fragment, complete bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.emitted[key] {
		return nil, false, lexcrawl.Errorf(lexcrawl.ECONFLICT, "document %q already emitted", key)
	}
	if _, ok := a.pending[key]; ok {
		return nil, false, lexcrawl.Errorf(lexcrawl.ECONFLICT, "document %q already seeded", key)
	}

	p := &partial{
		record:   lexcrawl.Merge(main),
		expected: map[lexcrawl.Tab]bool{lexcrawl.TabMain: true},
		received: map[lexcrawl.Tab]bool{lexcrawl.TabMain: true},
	}
	for _, tab := range tabs {
		p.expected[tab] = true
	}
	return a.settle(key, p)
}

// Add merges a tab fragment into the record for key, later fragments
// overwriting earlier keys. When the record is complete it is removed and
// returned with complete set.
//
// Adding to an emitted key returns ECONFLICT. Adding to a key that was
// never seeded returns ENOTFOUND.
func (a *Accumulator) Add(key string, tab lexcrawl.Tab, fragment lexcrawl.Fragment) (record lexcrawl.Fragment, complete bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.emitted[key] {
		return nil, false, lexcrawl.Errorf(lexcrawl.ECONFLICT, "document %q already emitted", key)
	}
	p, ok := a.pending[key]
	if !ok {
		return nil, false, lexcrawl.Errorf(lexcrawl.ENOTFOUND, "document %q not seeded", key)
	}

	p.record = lexcrawl.Merge(p.record, fragment)
	p.received[tab] = true
	return a.settle(key, p)
}

// settle stores p as pending, or removes and releases it when complete.
// The caller must hold a.mu.
func (a *Accumulator) settle(key string, p *partial) (lexcrawl.Fragment, bool, error) {
	if !p.complete() {
		a.pending[key] = p
		return p.record, false, nil
	}
	delete(a.pending, key)
	a.emitted[key] = true
	return p.record, true, nil
}

// Pending returns the sorted keys of records still waiting for tabs.
func (a *Accumulator) Pending() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	keys := make([]string, 0, len(a.pending))
	for key := range a.pending {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
