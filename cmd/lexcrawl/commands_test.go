package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/lexcrawl"
	main "github.com/fwojciec/lexcrawl/cmd/lexcrawl"
	"github.com/fwojciec/lexcrawl/crawl"
	"github.com/fwojciec/lexcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stored documents", func(t *testing.T) {
		t.Parallel()

		var gotFilter lexcrawl.DocumentFilter
		deps, stdout, _ := newDeps()
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, filter lexcrawl.DocumentFilter) ([]*lexcrawl.Document, error) {
				gotFilter = filter
				return []*lexcrawl.Document{
					{CELEX: "32016R0679", Title: "GDPR", FetchedAt: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)},
					{SourceURL: "https://eur-lex.europa.eu/eli/x", Title: "Untitled"},
				}, nil
			},
		}

		err := (&main.ListCmd{Limit: 10, Offset: 20}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Equal(t, 20, gotFilter.Offset)
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "32016R0679  2025-01-08  GDPR", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "-  "))
	})

	t.Run("prints hint when empty", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, _ lexcrawl.DocumentFilter) ([]*lexcrawl.Document, error) {
				return []*lexcrawl.Document{}, nil
			},
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No documents found")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	stored := &lexcrawl.Document{
		CELEX:     "32016R0679",
		SourceURL: "https://eur-lex.europa.eu/legal-content/EN/AUTO/?uri=CELEX:32016R0679",
		Title:     "GDPR",
		Fields: lexcrawl.Fragment{
			"celex":       "32016R0679",
			"title":       "GDPR",
			"text_blocks": []any{"Article 1", "Subject-matter"},
		},
		FetchedAt: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
	}
	documents := &mock.DocumentService{
		FindDocumentByCELEXFn: func(_ context.Context, celex string) (*lexcrawl.Document, error) {
			if celex == "32016R0679" {
				return stored, nil
			}
			return nil, lexcrawl.Errorf(lexcrawl.ENOTFOUND, "document %s not found", celex)
		},
	}

	t.Run("prints fields as JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Documents = documents

		require.NoError(t, (&main.ShowCmd{CELEX: "32016R0679"}).Run(deps))

		var fields map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &fields))
		assert.Equal(t, "GDPR", fields["title"])
	})

	t.Run("prints markdown", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Documents = documents

		require.NoError(t, (&main.ShowCmd{CELEX: "32016R0679", Markdown: true}).Run(deps))

		assert.Contains(t, stdout.String(), "celex: 32016R0679")
		assert.Contains(t, stdout.String(), "Article 1")
	})

	t.Run("reports unknown document", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Documents = documents

		err := (&main.ShowCmd{CELEX: "32099R9999"}).Run(deps)

		assert.Equal(t, lexcrawl.ENOTFOUND, lexcrawl.ErrorCode(err))
		assert.Contains(t, stderr.String(), "lexcrawl list")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Documents = &mock.DocumentService{}

		err := (&main.DeleteCmd{CELEX: "32016R0679"}).Run(deps)

		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes document", func(t *testing.T) {
		t.Parallel()

		var deleted string
		deps, stdout, _ := newDeps()
		deps.Documents = &mock.DocumentService{
			DeleteDocumentFn: func(_ context.Context, celex string) error {
				deleted = celex
				return nil
			},
		}

		require.NoError(t, (&main.DeleteCmd{CELEX: "32016R0679", Force: true}).Run(deps))
		assert.Equal(t, "32016R0679", deleted)
		assert.Contains(t, stdout.String(), "Deleted document 32016R0679")
	})

	t.Run("reports unknown document", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Documents = &mock.DocumentService{
			DeleteDocumentFn: func(_ context.Context, celex string) error {
				return lexcrawl.Errorf(lexcrawl.ENOTFOUND, "document %s not found", celex)
			},
		}

		err := (&main.DeleteCmd{CELEX: "32099R9999", Force: true}).Run(deps)

		assert.Equal(t, lexcrawl.ENOTFOUND, lexcrawl.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestDownloadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints paths in argument order", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Downloader = &mock.Downloader{
			DownloadFn: func(_ context.Context, url string) (string, error) {
				celex, _ := lexcrawl.CELEXFromURL(url)
				return "downloads/" + celex + ".html", nil
			},
		}

		err := (&main.DownloadCmd{
			URLs: []string{
				"https://eur-lex.europa.eu/legal-content/EN/TXT/?uri=CELEX:32016R0679",
				"https://eur-lex.europa.eu/legal-content/EN/TXT/?uri=CELEX:32019L0790",
			},
			Concurrency: 2,
		}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "downloads/32016R0679.html\ndownloads/32019L0790.html\n", stdout.String())
	})

	t.Run("attempts every URL and reports failures", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var attempted []string
		deps, stdout, stderr := newDeps()
		deps.Downloader = &mock.Downloader{
			DownloadFn: func(_ context.Context, url string) (string, error) {
				mu.Lock()
				attempted = append(attempted, url)
				mu.Unlock()
				if strings.Contains(url, "missing") {
					return "", lexcrawl.Errorf(lexcrawl.EFETCH, "status 404")
				}
				return "downloads/unknown.html", nil
			},
		}

		err := (&main.DownloadCmd{
			URLs:        []string{"https://eur-lex.europa.eu/missing", "https://eur-lex.europa.eu/ok"},
			Concurrency: 1,
		}).Run(deps)

		assert.Equal(t, lexcrawl.EFETCH, lexcrawl.ErrorCode(err))
		assert.Len(t, attempted, 2)
		assert.Contains(t, stderr.String(), "fail https://eur-lex.europa.eu/missing: status 404")
		assert.Equal(t, "downloads/unknown.html\n", stdout.String())
	})
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	infoPage := `<html><body>
<dl class="NMetadata"><dt>Form:</dt><dd>Regulation</dd><dt>Date of document:</dt><dd>27/04/2016</dd></dl>
<div id="document1"><p class="oj-ti-art">Article 1</p><p>Subject-matter &amp; objectives</p></div>
</body></html>`

	t.Run("prints document information fragment", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		path := writeFile(t, "info.html", infoPage)

		err := (&main.ExtractCmd{File: path, Tab: "Document information"}).Run(deps)

		require.NoError(t, err)
		var fragment map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &fragment))
		assert.Equal(t, "Regulation", fragment["document_type"])
		assert.Equal(t, "27/04/2016", fragment["date_of_document"])
		assert.NotContains(t, fragment, "content_markdown")
		assert.Contains(t, stdout.String(), "Subject-matter & objectives")
	})

	t.Run("renders markdown on request", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		path := writeFile(t, "info.html", infoPage)

		err := (&main.ExtractCmd{File: path, Tab: "Document information", Markdown: true, URL: "https://eur-lex.europa.eu/"}).Run(deps)

		require.NoError(t, err)
		var fragment map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &fragment))
		assert.Contains(t, fragment["content_markdown"], "## Article 1")
	})

	t.Run("prints title and tabs for main page", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		path := writeFile(t, "main.html", `<h1>GDPR</h1><ul class="MenuList"><li><a href="/procedure/EN/2012_11">Procedure</a></li></ul>`)

		err := (&main.ExtractCmd{File: path, Tab: "main", URL: "https://eur-lex.europa.eu/"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"title": "GDPR"`)
		assert.Contains(t, stdout.String(), `"url": "https://eur-lex.europa.eu/procedure/EN/2012_11"`)
	})

	t.Run("rejects unknown tab", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		path := writeFile(t, "page.html", "<html></html>")

		err := (&main.ExtractCmd{File: path, Tab: "Summary"}).Run(deps)

		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	listing := "https://eur-lex.europa.eu/search.html?page=1"
	docURL := "https://eur-lex.europa.eu/legal-content/EN/AUTO/?uri=CELEX:32016R0679"

	newCrawler := func(fetch func(ctx context.Context, url string) (*lexcrawl.Response, error), written *[]string) *crawl.Crawler {
		return &crawl.Crawler{
			Fetcher: &mock.Fetcher{FetchFn: fetch},
			Parser: &mock.PageParser{
				ParseListingFn: func(_, _ string) (*lexcrawl.ListingPage, error) {
					return &lexcrawl.ListingPage{DocumentURLs: []string{docURL}}, nil
				},
				ParseDocumentFn: func(_, _ string) (*lexcrawl.DocumentPage, error) {
					title := "GDPR"
					return &lexcrawl.DocumentPage{Title: &title}, nil
				},
			},
			Extractor: &mock.MetadataExtractor{
				SupportsFn: func(lexcrawl.Tab) bool { return false },
			},
			Documents: &mock.DocumentWriter{
				CreateDocumentFn: func(_ context.Context, doc *lexcrawl.Document) error {
					*written = append(*written, doc.CELEX)
					return nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{},
		}
	}

	t.Run("reports saved documents and commits output", func(t *testing.T) {
		t.Parallel()

		var written []string
		committed := false
		deps, stdout, stderr := newDeps()
		deps.Crawler = newCrawler(func(_ context.Context, url string) (*lexcrawl.Response, error) {
			return &lexcrawl.Response{URL: url, Body: "<html></html>"}, nil
		}, &written)
		deps.Output = main.NewOutput(&committingWriter{commit: func() { committed = true }})

		cmd := &main.CrawlCmd{Resolved: main.Config{StartURLs: []string{listing}}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"32016R0679"}, written)
		assert.True(t, committed)
		assert.Contains(t, stdout.String(), "saved 32016R0679")
		assert.Contains(t, stdout.String(), "1 saved, 0 failed")
		assert.Contains(t, stderr.String(), "fetched listing "+listing+" (13 B)")
		assert.Contains(t, stderr.String(), "fetched document")
	})

	t.Run("reports failed fetches and continues", func(t *testing.T) {
		t.Parallel()

		var written []string
		deps, stdout, stderr := newDeps()
		deps.Crawler = newCrawler(func(_ context.Context, url string) (*lexcrawl.Response, error) {
			if url == docURL {
				return nil, lexcrawl.Errorf(lexcrawl.EFETCH, "status 503")
			}
			return &lexcrawl.Response{URL: url}, nil
		}, &written)
		deps.Output = main.NewOutput()

		err := (&main.CrawlCmd{Resolved: main.Config{StartURLs: []string{listing}}}).Run(deps)

		require.NoError(t, err)
		assert.Empty(t, written)
		assert.Contains(t, stderr.String(), "status 503")
		assert.Contains(t, stdout.String(), "0 saved, 1 failed")
	})

	t.Run("aborts output when canceled", func(t *testing.T) {
		t.Parallel()

		var written []string
		aborted := false
		deps, _, _ := newDeps()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		deps.Ctx = ctx
		deps.Crawler = newCrawler(func(ctx context.Context, _ string) (*lexcrawl.Response, error) {
			return nil, ctx.Err()
		}, &written)
		deps.Output = main.NewOutput(&committingWriter{abort: func() { aborted = true }})

		err := (&main.CrawlCmd{Resolved: main.Config{StartURLs: []string{listing}}}).Run(deps)

		assert.True(t, errors.Is(err, context.Canceled))
		assert.True(t, aborted)
	})
}

// committingWriter records Commit and Abort calls.
type committingWriter struct {
	commit func()
	abort  func()
}

func (w *committingWriter) CreateDocument(context.Context, *lexcrawl.Document) error { return nil }

func (w *committingWriter) Commit() error {
	if w.commit != nil {
		w.commit()
	}
	return nil
}

func (w *committingWriter) Abort() error {
	if w.abort != nil {
		w.abort()
	}
	return nil
}
