package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/lexcrawl"
	"github.com/fwojciec/lexcrawl/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Documents  lexcrawl.DocumentService
	Crawler    *crawl.Crawler
	Output     *Output
	Downloader lexcrawl.Downloader
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"SQLite database path (default: $LEXCRAWL_DB or ~/.lexcrawl/lexcrawl.db)" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl search results and store document records"`
	Extract  ExtractCmd  `cmd:"" help:"Extract metadata from a saved page"`
	Download DownloadCmd `cmd:"" help:"Download raw document pages"`
	List     ListCmd     `cmd:"" help:"List stored documents"`
	Show     ShowCmd     `cmd:"" help:"Show a stored document"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored document"`
}

// CrawlCmd is the "crawl" subcommand. Zero-valued flags fall back to the
// config file, then to the built-in defaults.
type CrawlCmd struct {
	URLs        []string      `arg:"" optional:"" name:"url" help:"Search result URLs to start from"`
	Config      string        `short:"c" type:"existingfile" help:"YAML or JSON config file"`
	MaxPages    int           `name:"max-pages" help:"Listing pages to fetch, -1 for no limit (default 2)"`
	MaxDocs     int           `name:"max-docs" help:"Documents to fetch, -1 for no limit (default 5)"`
	Delay       time.Duration `help:"Delay between requests to one host (default 2s)"`
	Concurrency int           `short:"j" help:"Concurrent fetches (default 4)"`
	Timeout     time.Duration `help:"Per-request timeout (default 10s)"`
	Out         string        `short:"o" type:"path" help:"Also write records as JSON lines to this file"`
	Markdown    string        `type:"path" help:"Also export records as Markdown files into this directory"`
	UserAgent   string        `name:"user-agent" help:"User-Agent header for HTTP fetches"`
	Browser     bool          `help:"Fetch pages with a headless browser"`
	Robots      bool          `help:"Honor robots.txt"`
	Sitemap     bool          `help:"Also queue document URLs found in sitemaps"`

	// Resolved is the effective configuration, set before Run.
	Resolved Config `kong:"-"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string `arg:"" type:"existingfile" help:"Saved HTML page"`
	Tab      string `short:"t" default:"Document information" help:"Tab the page belongs to (main, 'Document information', Procedure)"`
	URL      string `short:"u" default:"https://eur-lex.europa.eu/" help:"URL the page was fetched from, for resolving links"`
	Markdown bool   `help:"Render the document body as Markdown"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Document URLs to download"`
	Dir         string        `short:"d" default:"downloads" type:"path" help:"Directory to save pages into"`
	Concurrency int           `short:"j" default:"4" help:"Concurrent downloads"`
	Timeout     time.Duration `default:"10s" help:"Per-request timeout"`
	Browser     bool          `help:"Fetch pages with a headless browser"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `short:"n" default:"50" help:"Maximum number of documents"`
	Offset int `help:"Number of documents to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	CELEX    string `arg:"" name:"celex" help:"CELEX number"`
	Markdown bool   `help:"Print as Markdown with frontmatter"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	CELEX string `arg:"" name:"celex" help:"CELEX number"`
	Force bool   `help:"Confirm deletion"`
}
