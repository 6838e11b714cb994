package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/lexcrawl"
	"golang.org/x/time/rate"
)

var _ lexcrawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Requests to different domains proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests
// per second limit and a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
	}
}

// NewDelayLimiter creates a DomainLimiter that spaces requests to the same
// domain at least delay apart. A zero delay disables limiting.
func NewDelayLimiter(delay time.Duration) *DomainLimiter {
	if delay <= 0 {
		return NewDomainLimiter(float64(rate.Inf))
	}
	return NewDomainLimiter(float64(rate.Every(delay)))
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
