// Package goquery implements metadata extraction and page navigation for
// EUR-Lex pages using goquery selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
	"golang.org/x/net/html"
)

// Parse parses markup into a queryable document.
func Parse(markup string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Text returns the selection's text nodes, each trimmed, with empty ones
// dropped, concatenated without a separator.
func Text(sel *goquery.Selection) string {
	return joinText(sel.Nodes, "")
}

// SpacedText is like Text but joins the text nodes with single spaces.
func SpacedText(sel *goquery.Selection) string {
	return joinText(sel.Nodes, " ")
}

func joinText(nodes []*html.Node, sep string) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}

// optional converts a possibly-absent string into a fragment value.
func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// valueAfter returns the part of rawURL that follows the first occurrence
// of marker, up to the next '&'. It returns nil if marker is absent.
func valueAfter(rawURL, marker string) *string {
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return nil
	}
	v := rawURL[idx+len(marker):]
	if amp := strings.IndexByte(v, '&'); amp >= 0 {
		v = v[:amp]
	}
	return &v
}

// resolveURL resolves href against base. It returns "" if href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
