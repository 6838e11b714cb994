// Package http implements portal access over plain HTTP: page fetching,
// single-document downloads, robots.txt policy and sitemap discovery.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/lexcrawl"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the crawler to the portal.
const DefaultUserAgent = "lexcrawl/1.0 (+https://github.com/fwojciec/lexcrawl)"

// Ensure Fetcher implements lexcrawl.Fetcher at compile time.
var _ lexcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using HTTP requests. Redirects are followed and
// the final URL is reported in the response.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. Any status other than 200 is an EFETCH
// error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*lexcrawl.Response, error) {
	body, finalURL, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return &lexcrawl.Response{URL: finalURL, Body: string(body)}, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", lexcrawl.Errorf(lexcrawl.EINVALID, "invalid URL %q: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", lexcrawl.Errorf(lexcrawl.EFETCH, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", lexcrawl.Errorf(lexcrawl.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", lexcrawl.Errorf(lexcrawl.EFETCH, "read %s: %v", url, err)
	}

	return body, resp.Request.URL.String(), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
