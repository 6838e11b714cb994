package mock

import (
	"context"

	"github.com/fwojciec/lexcrawl"
)

// Compile-time interface verification.
var (
	_ lexcrawl.Fetcher       = (*Fetcher)(nil)
	_ lexcrawl.RawStore      = (*RawStore)(nil)
	_ lexcrawl.Downloader    = (*Downloader)(nil)
	_ lexcrawl.DomainLimiter = (*DomainLimiter)(nil)
	_ lexcrawl.RobotsPolicy  = (*RobotsPolicy)(nil)
)

// Fetcher is a mock implementation of lexcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*lexcrawl.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*lexcrawl.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// RawStore is a mock implementation of lexcrawl.RawStore.
type RawStore struct {
	SaveRawFn func(ctx context.Context, name string, body []byte) (string, error)
}

func (s *RawStore) SaveRaw(ctx context.Context, name string, body []byte) (string, error) {
	return s.SaveRawFn(ctx, name, body)
}

// Downloader is a mock implementation of lexcrawl.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) (string, error)
}

func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	return d.DownloadFn(ctx, url)
}

// DomainLimiter is a mock implementation of lexcrawl.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

// RobotsPolicy is a mock implementation of lexcrawl.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) bool {
	return p.AllowedFn(ctx, url)
}
