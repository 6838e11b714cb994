// Package rod fetches portal pages through a headless Chrome browser.
// It is used when the portal answers plain HTTP clients with a challenge
// page instead of the document.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/lexcrawl"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements lexcrawl.Fetcher at compile time.
var _ lexcrawl.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	fetchTimeout time.Duration
	managerOpts  []ManagerOption
}

// WithFetchTimeout sets the maximum time a single page load may take.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.fetchTimeout = d
	}
}

// WithRecycleAfter recycles the browser after n pages.
func WithRecycleAfter(n int64) Option {
	return func(c *fetcherConfig) {
		c.managerOpts = append(c.managerOpts, WithMaxPages(n))
	}
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{fetchTimeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(cfg.managerOpts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: manager, fetchTimeout: cfg.fetchTimeout}, nil
}

// Fetch navigates to url and returns the rendered HTML together with the
// URL the browser ended on.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*lexcrawl.Response, error) {
	if f.closed.Load() {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EFETCH, "open page for %s: %v", url, err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, fetchErr(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fetchErr(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fetchErr(ctx, url, err)
	}

	final := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		final = info.URL
	}

	return &lexcrawl.Response{URL: final, Body: html}, nil
}

// fetchErr keeps context errors intact so callers can detect cancellation
// and wraps everything else as EFETCH.
func fetchErr(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return lexcrawl.Errorf(lexcrawl.EFETCH, "fetch %s: %v", url, err)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
