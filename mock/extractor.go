package mock

import "github.com/fwojciec/lexcrawl"

var _ lexcrawl.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of lexcrawl.MetadataExtractor.
type MetadataExtractor struct {
	ExtractFn  func(html string, tab lexcrawl.Tab) (lexcrawl.Fragment, error)
	SupportsFn func(tab lexcrawl.Tab) bool
}

func (e *MetadataExtractor) Extract(html string, tab lexcrawl.Tab) (lexcrawl.Fragment, error) {
	return e.ExtractFn(html, tab)
}

func (e *MetadataExtractor) Supports(tab lexcrawl.Tab) bool {
	return e.SupportsFn(tab)
}

var _ lexcrawl.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of lexcrawl.PageParser.
type PageParser struct {
	ParseListingFn  func(html string, baseURL string) (*lexcrawl.ListingPage, error)
	ParseDocumentFn func(html string, baseURL string) (*lexcrawl.DocumentPage, error)
}

func (p *PageParser) ParseListing(html string, baseURL string) (*lexcrawl.ListingPage, error) {
	return p.ParseListingFn(html, baseURL)
}

func (p *PageParser) ParseDocument(html string, baseURL string) (*lexcrawl.DocumentPage, error) {
	return p.ParseDocumentFn(html, baseURL)
}
