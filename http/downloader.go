package http

import (
	"context"

	"github.com/fwojciec/lexcrawl"
)

// Ensure Downloader implements lexcrawl.Downloader at compile time.
var _ lexcrawl.Downloader = (*Downloader)(nil)

// unknownName is the file stem used when a URL carries no CELEX number.
const unknownName = "unknown"

// Downloader saves a single document page as-is, named after its CELEX
// number. Failures are returned without retrying.
type Downloader struct {
	fetcher lexcrawl.Fetcher
	store   lexcrawl.RawStore
}

// NewDownloader creates a Downloader that fetches with fetcher and writes
// to store.
func NewDownloader(fetcher lexcrawl.Fetcher, store lexcrawl.RawStore) *Downloader {
	return &Downloader{fetcher: fetcher, store: store}
}

// Download fetches url and stores the body as <CELEX>.html, or
// unknown.html when url has no CELEX number. It returns the stored path.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	resp, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return d.store.SaveRaw(ctx, FileName(url), []byte(resp.Body))
}

// FileName returns the file name a downloaded page is stored under.
func FileName(url string) string {
	celex, ok := lexcrawl.CELEXFromURL(url)
	if !ok {
		celex = unknownName
	}
	return celex + ".html"
}
