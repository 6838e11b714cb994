package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
)

// Ensure Extractor implements lexcrawl.MetadataExtractor at compile time.
var _ lexcrawl.MetadataExtractor = (*Extractor)(nil)

// Extractor dispatches tab pages to the field extractors registered for them.
type Extractor struct {
	converter lexcrawl.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the document body to Markdown under
// content_markdown on the document information tab.
func WithConverter(c lexcrawl.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Supports reports whether tab has registered extractors.
func (e *Extractor) Supports(tab lexcrawl.Tab) bool {
	switch tab {
	case lexcrawl.TabDocumentInformation, lexcrawl.TabProcedure:
		return true
	}
	return false
}

// Extract runs the extractors registered for tab.
func (e *Extractor) Extract(html string, tab lexcrawl.Tab) (lexcrawl.Fragment, error) {
	if !e.Supports(tab) {
		return lexcrawl.Fragment{}, nil
	}

	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}

	switch tab {
	case lexcrawl.TabProcedure:
		return lexcrawl.Fragment{
			lexcrawl.FieldProcedureTimeline: ExtractProcedureTimeline(doc),
		}, nil
	default:
		return e.documentInformation(doc), nil
	}
}

func (e *Extractor) documentInformation(doc *goquery.Document) lexcrawl.Fragment {
	f := lexcrawl.Fragment{
		lexcrawl.FieldELI: optional(ExtractELI(doc)),
	}
	f = lexcrawl.Merge(
		f,
		ExtractAuthorship(doc),
		ExtractDates(doc),
		ExtractRelationships(doc),
		ExtractClassification(doc),
		ExtractText(doc),
	)
	if md, ok := e.markdown(doc); ok {
		f[lexcrawl.FieldContentMarkdown] = md
	}
	return f
}

// markdown converts the document body. Conversion failures leave the
// field absent.
func (e *Extractor) markdown(doc *goquery.Document) (string, bool) {
	if e.converter == nil {
		return "", false
	}
	body := doc.Find(textContainer).First()
	if body.Length() == 0 {
		return "", false
	}
	html, err := goquery.OuterHtml(body)
	if err != nil {
		return "", false
	}
	md, err := e.converter.Convert(html)
	if err != nil {
		return "", false
	}
	return md, true
}
