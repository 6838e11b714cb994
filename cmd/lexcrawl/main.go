package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lexcrawl"
	"github.com/fwojciec/lexcrawl/crawl"
	"github.com/fwojciec/lexcrawl/fs"
	"github.com/fwojciec/lexcrawl/goquery"
	"github.com/fwojciec/lexcrawl/htmltomarkdown"
	lexhttp "github.com/fwojciec/lexcrawl/http"
	"github.com/fwojciec/lexcrawl/rod"
	lexslog "github.com/fwojciec/lexcrawl/slog"
	"github.com/fwojciec/lexcrawl/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, lexcrawl.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// DocumentService is set by Run once the database is open.
	DocumentService lexcrawl.DocumentService

	// Fetcher replaces the HTTP or browser fetcher. Set for end-to-end testing.
	Fetcher lexcrawl.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lexcrawl"),
		kong.Description("Crawl EUR-Lex and extract legal-document metadata."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lexcrawl --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	switch cmd {
	case "crawl", "list", "show", "delete":
		if err := m.openDB(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Documents = m.DocumentService
	}

	switch cmd {
	case "crawl":
		cfg, err := cli.Crawl.Resolve()
		if err != nil {
			return err
		}
		cli.Crawl.Resolved = cfg

		fetcher, err := m.fetcher(cfg.Browser, cfg.Timeout, cfg.UserAgent, stderr)
		if err != nil {
			return err
		}
		fetcher = lexslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer fetcher.Close()

		output := NewOutput(m.DocumentService)
		if cfg.Out != "" {
			output.Add(fs.NewWriter(cfg.Out))
		}
		if cfg.Markdown != "" {
			dir := filepath.Clean(cfg.Markdown)
			output.Add(fs.NewMarkdownStore(filepath.Dir(dir), filepath.Base(dir)))
		}
		deps.Output = output

		extractor := goquery.NewExtractor(goquery.WithConverter(
			htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(siteOf(cfg.StartURLs[0]))),
		))

		crawler := &crawl.Crawler{
			Fetcher:      fetcher,
			Parser:       goquery.NewPageParser(),
			Extractor:    lexslog.NewLoggingExtractor(extractor, deps.Logger),
			Documents:    lexslog.NewLoggingDocumentWriter(output, deps.Logger),
			RateLimiter:  crawl.NewDelayLimiter(cfg.Delay),
			Concurrency:  cfg.Concurrency,
			MaxPages:     cfg.MaxPages,
			MaxDocuments: cfg.MaxDocs,
		}
		if cfg.Robots {
			crawler.Robots = lexhttp.NewRobotsPolicy(nil, cfg.UserAgent)
		}
		if cfg.Sitemap {
			crawler.Sitemaps = lexslog.NewLoggingSitemapService(lexhttp.NewSitemapService(nil), deps.Logger)
		}
		deps.Crawler = crawler

	case "download":
		fetcher, err := m.fetcher(cli.Download.Browser, cli.Download.Timeout, lexhttp.DefaultUserAgent, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		downloader := lexhttp.NewDownloader(lexslog.NewLoggingFetcher(fetcher, deps.Logger), fs.NewRawStore(cli.Download.Dir))
		deps.Downloader = lexslog.NewLoggingDownloader(downloader, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(stderr io.Writer) error {
	if dir := filepath.Dir(m.DBPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEXCRAWL_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	return nil
}

// fetcher returns the injected fetcher, or builds a browser or HTTP one.
func (m *Main) fetcher(browser bool, timeout time.Duration, userAgent string, stderr io.Writer) (lexcrawl.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return lexhttp.NewFetcher(lexhttp.WithTimeout(timeout), lexhttp.WithUserAgent(userAgent)), nil
}

func defaultDBPath() string {
	if path := os.Getenv("LEXCRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lexcrawl.db"
	}
	return filepath.Join(home, ".lexcrawl", "lexcrawl.db")
}
