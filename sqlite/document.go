package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/lexcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ lexcrawl.DocumentService = (*DocumentService)(nil)

// DocumentService implements lexcrawl.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

const documentColumns = "id, celex, source_url, title, fields, fields_hash, fetched_at"

// CreateDocument stores a document. A document with the same CELEX number
// (or source URL when it has none) is replaced in place and keeps its ID.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *lexcrawl.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	fields, hash, err := encodeFields(doc.Fields)
	if err != nil {
		return err
	}
	if doc.FieldsHash == "" {
		doc.FieldsHash = hash
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO documents (id, doc_key, celex, source_url, title, fields, fields_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(doc_key) DO UPDATE SET
			source_url = excluded.source_url,
			title = excluded.title,
			fields = excluded.fields,
			fields_hash = excluded.fields_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), documentKey(doc), doc.CELEX, doc.SourceURL, doc.Title, fields, doc.FieldsHash,
		doc.FetchedAt.UTC().Format(timeFormat)).Scan(&id)
	if err != nil {
		return err
	}

	doc.ID = id
	return nil
}

// FindDocumentByCELEX retrieves a document by its CELEX number.
func (s *DocumentService) FindDocumentByCELEX(ctx context.Context, celex string) (*lexcrawl.Document, error) {
	if celex == "" {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "CELEX number required")
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE celex = ?", celex)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lexcrawl.Errorf(lexcrawl.ENOTFOUND, "document %s not found", celex)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, most recently
// fetched first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter lexcrawl.DocumentFilter) ([]*lexcrawl.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.CELEX != nil {
		query.WriteString(" AND celex = ?")
		args = append(args, *filter.CELEX)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, doc_key ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*lexcrawl.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, celex string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE celex = ? AND celex != ''", celex)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lexcrawl.Errorf(lexcrawl.ENOTFOUND, "document %s not found", celex)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*lexcrawl.Document, error) {
	var doc lexcrawl.Document
	var fields, fetchedAt string

	if err := row.Scan(&doc.ID, &doc.CELEX, &doc.SourceURL, &doc.Title, &fields, &doc.FieldsHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if doc.Fields, err = decodeFields(fields); err != nil {
		return nil, err
	}
	if doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}
