package main

import (
	"fmt"

	"github.com/fwojciec/lexcrawl"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return lexcrawl.Errorf(lexcrawl.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, c.CELEX); err != nil {
		if lexcrawl.ErrorCode(err) == lexcrawl.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %s not found. Use 'lexcrawl list' to see stored documents.\n", c.CELEX)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %s\n", c.CELEX)
	return nil
}
