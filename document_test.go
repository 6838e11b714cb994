package lexcrawl_test

import (
	"testing"

	"github.com/fwojciec/lexcrawl"
	"github.com/stretchr/testify/assert"
)

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires CELEX or source URL", func(t *testing.T) {
		t.Parallel()

		err := (&lexcrawl.Document{}).Validate()

		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})

	t.Run("built from merged record", func(t *testing.T) {
		t.Parallel()

		doc := lexcrawl.NewDocument(lexcrawl.Fragment{
			"url":   "https://eur-lex.europa.eu/legal-content/EN/TXT/?uri=CELEX:32016R0679",
			"celex": "32016R0679",
			"title": "General Data Protection Regulation",
		})

		assert.NoError(t, doc.Validate())
		assert.Equal(t, "32016R0679", doc.CELEX)
		assert.Equal(t, "General Data Protection Regulation", doc.Title)
	})

	t.Run("accepts source URL without CELEX", func(t *testing.T) {
		t.Parallel()

		doc := lexcrawl.NewDocument(lexcrawl.Fragment{
			"url":   "https://eur-lex.europa.eu/eli/reg/2016/679/oj",
			"celex": nil,
		})

		assert.NoError(t, doc.Validate())
		assert.Empty(t, doc.CELEX)
		assert.Equal(t, "https://eur-lex.europa.eu/eli/reg/2016/679/oj", doc.SourceURL)
	})
}
