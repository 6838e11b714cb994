package lexcrawl_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/lexcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("later fragments win on key collision", func(t *testing.T) {
		t.Parallel()

		merged := lexcrawl.Merge(
			lexcrawl.Fragment{"title": "main title", "celex": "32020R0001"},
			lexcrawl.Fragment{"title": "tab title", "eli": "http://data.europa.eu/eli/reg/2020/1/oj"},
		)

		assert.Equal(t, lexcrawl.Fragment{
			"title": "tab title",
			"celex": "32020R0001",
			"eli":   "http://data.europa.eu/eli/reg/2020/1/oj",
		}, merged)
	})

	t.Run("returns empty non-nil fragment for no input", func(t *testing.T) {
		t.Parallel()

		merged := lexcrawl.Merge()

		require.NotNil(t, merged)
		assert.Empty(t, merged)
	})

	t.Run("does not modify inputs", func(t *testing.T) {
		t.Parallel()

		first := lexcrawl.Fragment{"a": "1"}
		_ = lexcrawl.Merge(first, lexcrawl.Fragment{"a": "2"})

		assert.Equal(t, "1", first["a"])
	})
}

func TestFragment_String(t *testing.T) {
	t.Parallel()

	title := "Regulation"
	f := lexcrawl.Fragment{"a": "x", "b": &title, "c": nil, "d": 3}

	assert.Equal(t, "x", f.String("a"))
	assert.Equal(t, "Regulation", f.String("b"))
	assert.Empty(t, f.String("c"))
	assert.Empty(t, f.String("d"))
	assert.Empty(t, f.String("missing"))
}

func TestDateField(t *testing.T) {
	t.Parallel()

	t.Run("scalar marshals as a string", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(lexcrawl.ScalarDate("2020-01-01"))

		require.NoError(t, err)
		assert.JSONEq(t, `"2020-01-01"`, string(b))
	})

	t.Run("second occurrence upgrades scalar to list with empty first note", func(t *testing.T) {
		t.Parallel()

		field := lexcrawl.ScalarDate("2020-01-01").Add("2021-06-01", "noted")

		assert.Equal(t, []lexcrawl.DatedNote{
			{Date: "2020-01-01", Note: ""},
			{Date: "2021-06-01", Note: "noted"},
		}, field.List())

		b, err := json.Marshal(field)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"date":"2020-01-01","note":""},{"date":"2021-06-01","note":"noted"}]`, string(b))
	})

	t.Run("list appends further occurrences", func(t *testing.T) {
		t.Parallel()

		field := lexcrawl.DateList(lexcrawl.DatedNote{Date: "a"}).Add("b", "n")

		assert.Equal(t, []lexcrawl.DatedNote{{Date: "a"}, {Date: "b", Note: "n"}}, field.List())
	})

	t.Run("empty list marshals as empty array", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(lexcrawl.DateList())

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(b))
	})
}

func TestRelation_NullCode(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(lexcrawl.Relation{Description: "Treaty on the Functioning of the European Union"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"code":null,"description":"Treaty on the Functioning of the European Union"}`, string(b))
}
