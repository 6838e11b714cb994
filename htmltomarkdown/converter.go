// Package htmltomarkdown renders legal-act HTML as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
)

// Ensure Converter implements lexcrawl.Converter at compile time.
var _ lexcrawl.Converter = (*Converter)(nil)

// DefaultDomain resolves relative links found in document bodies.
const DefaultDomain = "https://eur-lex.europa.eu"

// Converter wraps html-to-markdown to convert document bodies to Markdown.
// Official Journal title paragraphs become headings.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain sets the base used to make relative links absolute.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		domain: DefaultDomain,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// headings maps Official Journal paragraph classes to heading tags.
// Both the current oj- prefixed and the older unprefixed classes occur.
var headings = []struct {
	selector string
	tag      string
}{
	{"p.oj-doc-ti, p.doc-ti", "h1"},
	{"p.oj-ti-section-1, p.ti-section-1", "h2"},
	{"p.oj-ti-art, p.ti-art", "h2"},
	{"p.oj-sti-art, p.sti-art", "h3"},
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", lexcrawl.Errorf(lexcrawl.EINVALID, "empty HTML input")
	}

	prepared, err := prepare(html)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(prepared, converter.WithDomain(c.domain))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// prepare drops scripts and promotes title paragraphs to headings.
func prepare(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", lexcrawl.Errorf(lexcrawl.EINVALID, "parse HTML: %v", err)
	}

	doc.Find("script, style, noscript").Remove()
	for _, h := range headings {
		doc.Find(h.selector).Each(func(_ int, s *goquery.Selection) {
			inner, _ := s.Html()
			s.ReplaceWithHtml("<" + h.tag + ">" + inner + "</" + h.tag + ">")
		})
	}

	return doc.Find("body").Html()
}
