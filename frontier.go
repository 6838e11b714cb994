package lexcrawl

import "context"

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// RobotsPolicy decides whether a URL may be crawled.
type RobotsPolicy interface {
	Allowed(ctx context.Context, url string) bool
}
