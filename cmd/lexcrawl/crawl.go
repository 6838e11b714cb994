package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/lexcrawl"
	"github.com/fwojciec/lexcrawl/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	startURLs := c.Resolved.StartURLs
	if len(startURLs) == 0 {
		startURLs = c.URLs
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressFetched:
			fmt.Fprintf(deps.Stderr, "  fetched %s %s (%s)\n", event.Kind, crawl.TruncateURL(event.URL, 80), crawl.FormatBytes(event.Bytes))
		case crawl.ProgressEmitted:
			fmt.Fprintf(deps.Stdout, "  saved %s\n", label(event))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(event.URL, 80), lexcrawl.ErrorMessage(event.Error))
		case crawl.ProgressBlocked:
			fmt.Fprintf(deps.Stderr, "  blocked by robots.txt: %s\n", event.URL)
		}
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s\n", strings.Join(startURLs, ", "))

	result, err := deps.Crawler.Run(deps.Ctx, startURLs, progress)
	if err != nil {
		if abortErr := deps.Output.Abort(); abortErr != nil {
			err = errors.Join(err, abortErr)
		}
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}
	if err := deps.Output.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetched %d listing pages and %d documents: %d saved, %d failed, %d declined, %d blocked\n",
		result.Pages, result.Documents, result.Emitted, result.Failed, result.Declined, result.Blocked)
	if len(result.Incomplete) > 0 {
		fmt.Fprintf(deps.Stdout, "  incomplete: %s\n", strings.Join(result.Incomplete, ", "))
	}
	return nil
}

func label(event crawl.ProgressEvent) string {
	if event.CELEX != "" {
		return event.CELEX
	}
	return event.URL
}
