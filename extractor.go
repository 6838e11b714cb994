package lexcrawl

// MetadataExtractor turns a tab page into a fragment.
type MetadataExtractor interface {
	// Extract runs the extractors registered for tab against the HTML.
	// Unknown tabs yield an empty fragment. Missing markup never causes
	// an error; only unparseable input does.
	Extract(html string, tab Tab) (Fragment, error)

	// Supports reports whether tab has registered extractors.
	Supports(tab Tab) bool
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}
