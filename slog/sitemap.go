package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lexcrawl"
)

// Ensure LoggingSitemapService implements lexcrawl.SitemapService.
var _ lexcrawl.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   lexcrawl.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next lexcrawl.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the number of URLs found.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *lexcrawl.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
