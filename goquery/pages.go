package goquery

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
)

// Ensure PageParser implements lexcrawl.PageParser at compile time.
var _ lexcrawl.PageParser = (*PageParser)(nil)

// PageParser reads navigation links from search-result and document pages.
type PageParser struct{}

// NewPageParser creates a new PageParser.
func NewPageParser() *PageParser {
	return &PageParser{}
}

// ParseListing returns the result links (a.title) and the "Next Page" link.
func (p *PageParser) ParseListing(html string, baseURL string) (*lexcrawl.ListingPage, error) {
	doc, base, err := parseWithBase(html, baseURL)
	if err != nil {
		return nil, err
	}

	page := &lexcrawl.ListingPage{}
	doc.Find("a.title").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		if resolved := resolveURL(base, href); resolved != "" {
			page.DocumentURLs = append(page.DocumentURLs, resolved)
		}
	})

	if href, ok := doc.Find(`a[title="Next Page"]`).First().Attr("href"); ok {
		page.NextURL = resolveURL(base, href)
	}
	return page, nil
}

// ParseDocument returns the page title and the links in the tab menu
// (ul.MenuList). Tabs are returned in page order, recognized or not.
func (p *PageParser) ParseDocument(html string, baseURL string) (*lexcrawl.DocumentPage, error) {
	doc, base, err := parseWithBase(html, baseURL)
	if err != nil {
		return nil, err
	}

	page := &lexcrawl.DocumentPage{Title: ExtractTitle(doc)}
	doc.Find("ul.MenuList a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		page.Tabs = append(page.Tabs, lexcrawl.TabLink{
			Tab: lexcrawl.Tab(Text(a)),
			URL: resolved,
		})
	})
	return page, nil
}

func parseWithBase(html, baseURL string) (*goquery.Document, *url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, lexcrawl.Errorf(lexcrawl.EINVALID, "invalid base URL: %v", err)
	}
	doc, err := Parse(html)
	if err != nil {
		return nil, nil, err
	}
	return doc, base, nil
}
