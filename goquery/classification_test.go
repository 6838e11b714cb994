package goquery_test

import (
	"testing"

	"github.com/fwojciec/lexcrawl"
	"github.com/fwojciec/lexcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClassification(t *testing.T) {
	t.Parallel()

	t.Run("returns empty lists when nothing is classified", func(t *testing.T) {
		t.Parallel()

		f := goquery.ExtractClassification(mustParse(t, `<html></html>`))

		assert.Equal(t, []lexcrawl.Classification{}, f["eurovoc_descriptors"])
		assert.Equal(t, []lexcrawl.Classification{}, f["subject_matters"])
		assert.Equal(t, []lexcrawl.DirectoryCode{}, f["directory_codes"])
	})

	t.Run("reads eurovoc descriptors from DC_CODED", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<dl class="NMetadata">
			<dt>EUROVOC descriptor:</dt>
			<dd><ul>
				<li><a href="./../../../search.html?type=advanced&amp;DC_CODED=5595&amp;lang=en"><span lang="en">data protection</span></a></li>
				<li><a href="./../../../search.html?type=advanced">personal data</a></li>
				<li>no link</li>
			</ul></dd>
		</dl>`)

		f := goquery.ExtractClassification(doc)

		got := f["eurovoc_descriptors"].([]lexcrawl.Classification)
		require.Len(t, got, 2)
		assert.Equal(t, ptr("5595"), got[0].Code)
		assert.Equal(t, "data protection", got[0].Label)
		assert.Equal(t, "./../../../search.html?type=advanced&DC_CODED=5595&lang=en", got[0].URL)
		assert.Nil(t, got[1].Code)
		assert.Equal(t, "personal data", got[1].Label)
	})

	t.Run("reads subject matters from CT_1_CODED", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<dl class="NMetadata">
			<dt>Subject matter:</dt>
			<dd><ul><li><a href="/search.html?CT_1_CODED=MARI&amp;lang=en">Internal market</a></li></ul></dd>
		</dl>`)

		got := goquery.ExtractClassification(doc)["subject_matters"].([]lexcrawl.Classification)

		require.Len(t, got, 1)
		assert.Equal(t, ptr("MARI"), got[0].Code)
		assert.Equal(t, "Internal market", got[0].Label)
	})

	t.Run("reads directory code with path", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<dl class="NMetadata">
			<dt>Directory code:</dt>
			<dd><ul><li>13.30.99.00 <a href="/search.html?CC_1_CODED=13&amp;lang=en">Industrial policy</a> / <a href="/search.html?CC_2_CODED=1330">Internal market</a> / <a href="/other.html">Other</a></li></ul></dd>
		</dl>`)

		got := goquery.ExtractClassification(doc)["directory_codes"].([]lexcrawl.DirectoryCode)

		require.Len(t, got, 1)
		assert.Equal(t, "13.30.99.00", got[0].Code)
		require.Len(t, got[0].Path, 3)
		assert.Equal(t, ptr("13"), got[0].Path[0].Code)
		assert.Equal(t, "Industrial policy", got[0].Path[0].Label)
		assert.Equal(t, ptr("1330"), got[0].Path[1].Code)
		assert.Nil(t, got[0].Path[2].Code)
	})
}
