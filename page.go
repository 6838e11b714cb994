package lexcrawl

// ListingPage is a parsed search-result page.
type ListingPage struct {
	DocumentURLs []string `json:"documentUrls"`
	// NextURL is empty on the last page.
	NextURL string `json:"nextUrl"`
}

// TabLink is a link to one of a document's sub-pages.
type TabLink struct {
	Tab Tab    `json:"tab"`
	URL string `json:"url"`
}

// DocumentPage is a parsed document landing page.
type DocumentPage struct {
	Title *string   `json:"title"`
	Tabs  []TabLink `json:"tabs"`
}

// PageParser extracts navigation from portal pages.
// Relative links are resolved against baseURL.
type PageParser interface {
	ParseListing(html string, baseURL string) (*ListingPage, error)
	ParseDocument(html string, baseURL string) (*DocumentPage, error)
}
