package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/lexcrawl"
	"github.com/fwojciec/lexcrawl/goquery"
	"github.com/fwojciec/lexcrawl/htmltomarkdown"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	b, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	html := string(b)

	var out any
	if lexcrawl.Tab(c.Tab) == lexcrawl.TabMain {
		page, err := goquery.NewPageParser().ParseDocument(html, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
			return err
		}
		out = page
	} else {
		var opts []goquery.Option
		if c.Markdown {
			opts = append(opts, goquery.WithConverter(htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(siteOf(c.URL)))))
		}
		extractor := goquery.NewExtractor(opts...)
		if !extractor.Supports(lexcrawl.Tab(c.Tab)) {
			fmt.Fprintf(deps.Stderr, "error: unknown tab %q\n", c.Tab)
			return lexcrawl.Errorf(lexcrawl.EINVALID, "unknown tab %q", c.Tab)
		}
		fragment, err := extractor.Extract(html, lexcrawl.Tab(c.Tab))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
			return err
		}
		out = fragment
	}

	return writeJSON(deps.Stdout, out)
}

// writeJSON prints v as indented JSON without HTML escaping.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
