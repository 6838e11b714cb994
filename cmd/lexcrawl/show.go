package main

import (
	"fmt"

	"github.com/fwojciec/lexcrawl"
	"github.com/fwojciec/lexcrawl/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByCELEX(deps.Ctx, c.CELEX)
	if err != nil {
		if lexcrawl.ErrorCode(err) == lexcrawl.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %s not found. Use 'lexcrawl list' to see stored documents.\n", c.CELEX)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		}
		return err
	}

	if c.Markdown {
		md, err := fs.FormatDocument(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
		return nil
	}

	return writeJSON(deps.Stdout, doc.Fields)
}
