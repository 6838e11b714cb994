package lexcrawl

import (
	"context"
	"time"
)

// Document is a merged record for one legal document, ready to be written.
type Document struct {
	ID         string    `json:"id"`
	CELEX      string    `json:"celex"`
	SourceURL  string    `json:"sourceUrl"`
	Title      string    `json:"title"`
	Fields     Fragment  `json:"fields"`
	FieldsHash string    `json:"fieldsHash"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// NewDocument builds a Document from a merged record.
func NewDocument(record Fragment) *Document {
	return &Document{
		CELEX:     record.String(FieldCELEX),
		SourceURL: record.String(FieldURL),
		Title:     record.String(FieldTitle),
		Fields:    record,
	}
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.CELEX == "" && d.SourceURL == "" {
		return Errorf(EINVALID, "document CELEX or source URL required")
	}
	return nil
}

// DocumentWriter writes emitted documents to a sink.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentService represents a service for managing stored documents.
type DocumentService interface {
	DocumentWriter

	// FindDocumentByCELEX retrieves a document by its CELEX number.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByCELEX(ctx context.Context, celex string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if the document does not exist.
	DeleteDocument(ctx context.Context, celex string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	CELEX     *string `json:"celex"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
