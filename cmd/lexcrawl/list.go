package main

import (
	"fmt"

	"github.com/fwojciec/lexcrawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, lexcrawl.DocumentFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'lexcrawl crawl' to fetch some.")
		return nil
	}

	for _, d := range docs {
		celex := d.CELEX
		if celex == "" {
			celex = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", celex, d.FetchedAt.Format("2006-01-02"), d.Title)
	}

	return nil
}
