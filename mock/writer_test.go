package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/lexcrawl"
	"github.com/fwojciec/lexcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where DocumentWriter is expected
	var _ lexcrawl.DocumentWriter = &mock.DocumentWriter{}
}

func TestDocumentWriter_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateDocumentFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *lexcrawl.Document
		w := &mock.DocumentWriter{
			CreateDocumentFn: func(_ context.Context, doc *lexcrawl.Document) error {
				calledWith = doc
				return nil
			},
		}

		doc := &lexcrawl.Document{
			CELEX:     "32016R0679",
			SourceURL: "https://eur-lex.europa.eu/legal-content/EN/ALL/?uri=CELEX:32016R0679",
			Title:     "General Data Protection Regulation",
			Fields:    lexcrawl.Fragment{"celex": "32016R0679"},
		}

		err := w.CreateDocument(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, doc, calledWith)
	})
}
