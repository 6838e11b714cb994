package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/lexcrawl"
)

// Ensure LoggingDocumentWriter implements lexcrawl.DocumentWriter.
var _ lexcrawl.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter logs every emitted document before handing it on.
// A nil next makes it a log-only sink.
type LoggingDocumentWriter struct {
	next   lexcrawl.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next lexcrawl.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// CreateDocument logs the document and delegates to the wrapped writer.
func (w *LoggingDocumentWriter) CreateDocument(ctx context.Context, doc *lexcrawl.Document) (err error) {
	defer func() {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		w.logger.Log(ctx, level, "document",
			"celex", doc.CELEX,
			"url", doc.SourceURL,
			"fields", len(doc.Fields),
			"err", err,
		)
	}()
	if w.next == nil {
		return nil
	}
	return w.next.CreateDocument(ctx, doc)
}
