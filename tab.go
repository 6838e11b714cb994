package lexcrawl

import (
	"net/url"
	"regexp"
)

// Tab names a sub-page of a document.
type Tab string

// Tabs recognized by the crawler. TabMain is the document's landing page.
const (
	TabMain                Tab = "main"
	TabDocumentInformation Tab = "Document information"
	TabProcedure           Tab = "Procedure"
)

var celexRe = regexp.MustCompile(`CELEX:([0-9A-Z]+)`)

// CELEXFromURL extracts the CELEX number embedded in a document URL.
// Percent-encoded URLs are decoded before matching.
func CELEXFromURL(rawURL string) (string, bool) {
	if m := celexRe.FindStringSubmatch(rawURL); m != nil {
		return m[1], true
	}
	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		return "", false
	}
	if m := celexRe.FindStringSubmatch(decoded); m != nil {
		return m[1], true
	}
	return "", false
}
