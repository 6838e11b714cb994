package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lexcrawl"
)

// timeFormat is a fixed-width RFC 3339 layout so stored timestamps sort
// lexically in time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// documentKey returns the unique storage key of a document.
func documentKey(doc *lexcrawl.Document) string {
	if doc.CELEX != "" {
		return doc.CELEX
	}
	return doc.SourceURL
}

// encodeFields returns the JSON encoding of fields and its xxhash.
func encodeFields(fields lexcrawl.Fragment) (string, string, error) {
	if fields == nil {
		fields = lexcrawl.Fragment{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode fields: %w", err)
	}
	return string(b), fmt.Sprintf("%x", xxhash.Sum64(b)), nil
}

func decodeFields(raw string) (lexcrawl.Fragment, error) {
	var fields lexcrawl.Fragment
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}
	return fields, nil
}
