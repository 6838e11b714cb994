package mock

import (
	"context"

	"github.com/fwojciec/lexcrawl"
)

var _ lexcrawl.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of lexcrawl.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *lexcrawl.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *lexcrawl.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
