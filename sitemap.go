package lexcrawl

import (
	"context"
	"regexp"
)

// SitemapService discovers document URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs listed in the sitemaps declared by the
	// site's robots.txt, falling back to /sitemap.xml. Sitemap indexes are
	// resolved recursively. A nil filter keeps every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	Exclude []*regexp.Regexp
}

// DocumentURLFilter keeps only URLs that carry a CELEX number.
func DocumentURLFilter() *URLFilter {
	return &URLFilter{Include: []*regexp.Regexp{celexRe, regexp.MustCompile(`CELEX%3A[0-9A-Z]+`)}}
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}
	return true
}
