// Package fs provides file-based storage for crawled documents: a JSON
// lines feed, a Markdown export and raw page downloads.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/lexcrawl"
)

// Ensure Writer implements lexcrawl.DocumentWriter at compile time.
var _ lexcrawl.DocumentWriter = (*Writer)(nil)

// Writer appends each document's fields as one JSON line. Lines go to
// path.tmp and replace path only on Commit, so an aborted crawl leaves a
// previous feed untouched. It is safe for concurrent use.
type Writer struct {
	path string

	mu    sync.Mutex
	file  *os.File
	enc   *json.Encoder
	count int
}

// NewWriter creates a new Writer for the given output path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) tempPath() string {
	return w.path + ".tmp"
}

// CreateDocument writes doc.Fields as a JSON line.
func (w *Writer) CreateDocument(ctx context.Context, doc *lexcrawl.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.open(); err != nil {
		return err
	}
	if err := w.enc.Encode(doc.Fields); err != nil {
		return fmt.Errorf("encode document %s: %w", doc.CELEX, err)
	}
	w.count++
	return nil
}

// open creates the temp file on first use. The caller must hold w.mu.
func (w *Writer) open() error {
	if w.file != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}
	f, err := os.Create(w.tempPath())
	if err != nil {
		return err
	}
	w.file = f
	w.enc = json.NewEncoder(f)
	w.enc.SetEscapeHTML(false)
	return nil
}

// Count returns the number of documents written so far.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Commit moves the written lines to the output path. Committing without
// any document produces an empty file.
func (w *Writer) Commit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.open(); err != nil {
		return err
	}
	if err := w.file.Close(); err != nil {
		return err
	}
	w.file = nil
	return os.Rename(w.tempPath(), w.path)
}

// Abort discards the written lines.
func (w *Writer) Abort() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}
	if err := os.Remove(w.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
