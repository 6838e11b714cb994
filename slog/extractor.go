package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/lexcrawl"
)

// Ensure LoggingExtractor implements lexcrawl.MetadataExtractor.
var _ lexcrawl.MetadataExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a MetadataExtractor with debug logging.
type LoggingExtractor struct {
	next   lexcrawl.MetadataExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next lexcrawl.MetadataExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the tab, the number of fields found and the duration.
func (e *LoggingExtractor) Extract(html string, tab lexcrawl.Tab) (fragment lexcrawl.Fragment, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"tab", tab,
			"fields", len(fragment),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, tab)
}

// Supports delegates to the wrapped extractor.
func (e *LoggingExtractor) Supports(tab lexcrawl.Tab) bool {
	return e.next.Supports(tab)
}
