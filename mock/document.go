package mock

import (
	"context"

	"github.com/fwojciec/lexcrawl"
)

var _ lexcrawl.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of lexcrawl.DocumentService.
type DocumentService struct {
	CreateDocumentFn      func(ctx context.Context, doc *lexcrawl.Document) error
	FindDocumentByCELEXFn func(ctx context.Context, celex string) (*lexcrawl.Document, error)
	FindDocumentsFn       func(ctx context.Context, filter lexcrawl.DocumentFilter) ([]*lexcrawl.Document, error)
	DeleteDocumentFn      func(ctx context.Context, celex string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *lexcrawl.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByCELEX(ctx context.Context, celex string) (*lexcrawl.Document, error) {
	return s.FindDocumentByCELEXFn(ctx, celex)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter lexcrawl.DocumentFilter) ([]*lexcrawl.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, celex string) error {
	return s.DeleteDocumentFn(ctx, celex)
}
