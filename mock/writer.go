package mock

import (
	"context"

	"github.com/fwojciec/lexcrawl"
)

var _ lexcrawl.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of lexcrawl.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *lexcrawl.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *lexcrawl.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
