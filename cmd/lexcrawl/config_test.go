package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/lexcrawl"
	main "github.com/fwojciec/lexcrawl/cmd/lexcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("reads yaml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "crawl.yaml", `
start_urls:
  - https://eur-lex.europa.eu/search.html?type=quick&text=privacy
max_pages: 10
max_docs: 50
delay: 1500ms
robots: true
`)

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://eur-lex.europa.eu/search.html?type=quick&text=privacy"}, fc.StartURLs)
		assert.Equal(t, 10, fc.MaxPages)
		assert.Equal(t, 50, fc.MaxDocs)
		assert.Equal(t, "1500ms", fc.Delay)
		assert.True(t, fc.Robots)
	})

	t.Run("reads json", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "crawl.json", `{"max_pages": 3, "concurrency": 2, "out": "records.jsonl"}`)

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, 3, fc.MaxPages)
		assert.Equal(t, 2, fc.Concurrency)
		assert.Equal(t, "records.jsonl", fc.Out)
	})

	t.Run("tries yaml for unknown extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "crawl.conf", "max_docs: 7\n")

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, 7, fc.MaxDocs)
	})

	t.Run("rejects malformed file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "crawl.json", `{"max_pages": `)

		_, err := main.LoadConfigFile(path)

		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})
}

func TestCrawlCmd_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("uses defaults when nothing is set", func(t *testing.T) {
		t.Parallel()

		cfg, err := (&main.CrawlCmd{}).Resolve()

		require.NoError(t, err)
		assert.Equal(t, []string{main.DefaultStartURL}, cfg.StartURLs)
		assert.Equal(t, 2, cfg.MaxPages)
		assert.Equal(t, 5, cfg.MaxDocs)
		assert.Equal(t, 2*time.Second, cfg.Delay)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.NotEmpty(t, cfg.UserAgent)
		assert.False(t, cfg.Robots)
	})

	t.Run("file overrides defaults and flags override file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "crawl.yaml", `
max_pages: 10
max_docs: 50
delay: 500ms
sitemap: true
out: file.jsonl
`)
		cmd := &main.CrawlCmd{
			Config:   path,
			MaxPages: 1,
			Out:      "flag.jsonl",
		}

		cfg, err := cmd.Resolve()

		require.NoError(t, err)
		assert.Equal(t, 1, cfg.MaxPages)
		assert.Equal(t, 50, cfg.MaxDocs)
		assert.Equal(t, 500*time.Millisecond, cfg.Delay)
		assert.Equal(t, "flag.jsonl", cfg.Out)
		assert.True(t, cfg.Sitemap)
	})

	t.Run("negative limits mean no limit", func(t *testing.T) {
		t.Parallel()

		cfg, err := (&main.CrawlCmd{MaxPages: -1, MaxDocs: -1, Delay: -1}).Resolve()

		require.NoError(t, err)
		assert.Zero(t, cfg.MaxPages)
		assert.Zero(t, cfg.MaxDocs)
		assert.Zero(t, cfg.Delay)
	})

	t.Run("rejects invalid duration in file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "crawl.yaml", "delay: soon\n")

		_, err := (&main.CrawlCmd{Config: path}).Resolve()

		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})

	t.Run("rejects non-http start URL", func(t *testing.T) {
		t.Parallel()

		_, err := (&main.CrawlCmd{URLs: []string{"ftp://eur-lex.europa.eu/"}}).Resolve()

		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})

	t.Run("rejects negative concurrency", func(t *testing.T) {
		t.Parallel()

		_, err := (&main.CrawlCmd{Concurrency: -2}).Resolve()

		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})
}
