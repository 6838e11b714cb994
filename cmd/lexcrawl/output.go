package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/lexcrawl"
)

// Ensure Output implements lexcrawl.DocumentWriter at compile time.
var _ lexcrawl.DocumentWriter = (*Output)(nil)

// committer is a writer whose output only becomes visible on Commit.
type committer interface {
	Commit() error
	Abort() error
}

// Output writes every document to each of its writers in order.
type Output struct {
	writers []lexcrawl.DocumentWriter
}

// NewOutput creates an Output over writers.
func NewOutput(writers ...lexcrawl.DocumentWriter) *Output {
	return &Output{writers: writers}
}

// Add appends a writer.
func (o *Output) Add(w lexcrawl.DocumentWriter) {
	o.writers = append(o.writers, w)
}

// CreateDocument stops at the first writer that fails.
func (o *Output) CreateDocument(ctx context.Context, doc *lexcrawl.Document) error {
	for _, w := range o.writers {
		if err := w.CreateDocument(ctx, doc); err != nil {
			return fmt.Errorf("write %s: %w", doc.CELEX, err)
		}
	}
	return nil
}

// Commit commits every writer that buffers its output.
func (o *Output) Commit() error {
	var errs []error
	for _, w := range o.writers {
		if c, ok := w.(committer); ok {
			errs = append(errs, c.Commit())
		}
	}
	return errors.Join(errs...)
}

// Abort discards the buffered output of every writer.
func (o *Output) Abort() error {
	var errs []error
	for _, w := range o.writers {
		if c, ok := w.(committer); ok {
			errs = append(errs, c.Abort())
		}
	}
	return errors.Join(errs...)
}
