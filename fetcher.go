package lexcrawl

import "context"

// Response is a fetched page.
type Response struct {
	// URL is the final URL after redirects.
	URL  string
	Body string
}

// Fetcher retrieves pages from the portal.
type Fetcher interface {
	// Fetch retrieves the page at url. Non-success statuses are reported
	// as EFETCH errors.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// RawStore persists raw page bytes.
type RawStore interface {
	// SaveRaw stores body under name and returns the path written.
	SaveRaw(ctx context.Context, name string, body []byte) (string, error)
}

// Downloader fetches a single document page and persists it as-is.
type Downloader interface {
	Download(ctx context.Context, url string) (path string, err error)
}
