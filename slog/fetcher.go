// Package slog provides logging decorators for lexcrawl services using
// log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lexcrawl"
)

// Ensure LoggingFetcher implements lexcrawl.Fetcher.
var _ lexcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   lexcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next lexcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *lexcrawl.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"bytes", 0,
			"duration", time.Since(begin),
			"err", err,
		}
		if resp != nil {
			attrs[3] = len(resp.Body)
			if resp.URL != url {
				attrs = append(attrs, "final", resp.URL)
			}
		}
		f.logger.Debug("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingDownloader implements lexcrawl.Downloader.
var _ lexcrawl.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   lexcrawl.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next lexcrawl.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the saved path.
func (d *LoggingDownloader) Download(ctx context.Context, url string) (path string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("download",
			"url", url,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url)
}
