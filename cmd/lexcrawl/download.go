package main

import (
	"fmt"

	"github.com/fwojciec/lexcrawl"
	"golang.org/x/sync/errgroup"
)

// Run executes the download command. Every URL is attempted; failures
// are reported and do not cancel the other downloads.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	paths := make([]string, len(c.URLs))
	errs := make([]error, len(c.URLs))

	var g errgroup.Group
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for i, u := range c.URLs {
		g.Go(func() error {
			paths[i], errs[i] = deps.Downloader.Download(deps.Ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, u := range c.URLs {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", u, lexcrawl.ErrorMessage(errs[i]))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s\n", paths[i])
	}

	if failed > 0 {
		return lexcrawl.Errorf(lexcrawl.EFETCH, "%d of %d downloads failed", failed, len(c.URLs))
	}
	return nil
}
