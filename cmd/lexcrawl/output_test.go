package main_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/lexcrawl"
	main "github.com/fwojciec/lexcrawl/cmd/lexcrawl"
	"github.com/fwojciec/lexcrawl/fs"
	"github.com/fwojciec/lexcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gdprDocument() *lexcrawl.Document {
	return lexcrawl.NewDocument(lexcrawl.Fragment{
		"url":   "https://eur-lex.europa.eu/legal-content/EN/AUTO/?uri=CELEX:32016R0679",
		"celex": "32016R0679",
		"title": "GDPR",
	})
}

func TestOutput(t *testing.T) {
	t.Parallel()

	t.Run("writes to every writer in order", func(t *testing.T) {
		t.Parallel()

		var calls []string
		writer := func(name string) *mock.DocumentWriter {
			return &mock.DocumentWriter{
				CreateDocumentFn: func(_ context.Context, _ *lexcrawl.Document) error {
					calls = append(calls, name)
					return nil
				},
			}
		}

		out := main.NewOutput(writer("db"))
		out.Add(writer("feed"))

		require.NoError(t, out.CreateDocument(context.Background(), gdprDocument()))
		assert.Equal(t, []string{"db", "feed"}, calls)
	})

	t.Run("stops at first failing writer", func(t *testing.T) {
		t.Parallel()

		reached := false
		out := main.NewOutput(
			&mock.DocumentWriter{
				CreateDocumentFn: func(_ context.Context, _ *lexcrawl.Document) error {
					return errors.New("database is locked")
				},
			},
			&mock.DocumentWriter{
				CreateDocumentFn: func(_ context.Context, _ *lexcrawl.Document) error {
					reached = true
					return nil
				},
			},
		)

		err := out.CreateDocument(context.Background(), gdprDocument())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "32016R0679")
		assert.False(t, reached)
	})

	t.Run("commits buffered writers", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "records.jsonl")
		out := main.NewOutput(&mock.DocumentWriter{
			CreateDocumentFn: func(_ context.Context, _ *lexcrawl.Document) error { return nil },
		})
		out.Add(fs.NewWriter(path))

		require.NoError(t, out.CreateDocument(context.Background(), gdprDocument()))
		require.NoError(t, out.Commit())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"celex":"32016R0679"`)
	})

	t.Run("abort discards buffered writers", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "records.jsonl")
		out := main.NewOutput(fs.NewWriter(path))

		require.NoError(t, out.CreateDocument(context.Background(), gdprDocument()))
		require.NoError(t, out.Abort())

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}
