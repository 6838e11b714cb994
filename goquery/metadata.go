package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
)

// Metadata labels used on the document information tab.
const (
	LabelAuthor           = "Author"
	LabelResponsibleBody  = "Responsible body"
	LabelForm             = "Form"
	LabelTreaty           = "Treaty"
	LabelLegalBasis       = "Legal basis"
	LabelProposal         = "Proposal"
	LabelInstrumentsCited = "Instruments cited"
	LabelEurovoc          = "EUROVOC descriptor"
	LabelSubjectMatter    = "Subject matter"
	LabelDirectoryCode    = "Directory code"
)

// Pair is a label and its value element from a metadata description list.
type Pair struct {
	Label string
	Value *goquery.Selection
}

// MetadataPairs pairs every dt with the dd at the same position inside each
// dl.NMetadata. When a list has more labels than values, or the reverse,
// the surplus is dropped without notice.
func MetadataPairs(doc *goquery.Document) []Pair {
	var pairs []Pair
	doc.Find("dl.NMetadata").Each(func(_ int, dl *goquery.Selection) {
		dts := dl.Find("dt")
		dds := dl.Find("dd")
		n := min(dts.Length(), dds.Length())
		for i := 0; i < n; i++ {
			label := strings.TrimSuffix(Text(dts.Eq(i)), ":")
			pairs = append(pairs, Pair{Label: label, Value: dds.Eq(i)})
		}
	})
	return pairs
}

// ExtractTitle returns the text of the first h1, or nil if there is none.
func ExtractTitle(doc *goquery.Document) *string {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return nil
	}
	title := Text(h1)
	return &title
}

// ExtractELI returns the European Legislation Identifier link. It prefers the
// anchor in the paragraph labelled "ELI:" and falls back to any anchor
// pointing at data.europa.eu/eli/.
func ExtractELI(doc *goquery.Document) *string {
	var eli *string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if !strings.Contains(p.Text(), "ELI:") {
			return true
		}
		a := p.Find("a").First()
		if a.Length() == 0 {
			return true
		}
		if href, ok := a.Attr("href"); ok {
			eli = &href
		}
		return false
	})
	if eli != nil {
		return eli
	}

	a := doc.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.AttrOr("href", ""), "data.europa.eu/eli/")
	}).First()
	if href, ok := a.Attr("href"); ok {
		return &href
	}
	return nil
}

// ExtractAuthorship returns the author list, responsible body and document form.
func ExtractAuthorship(doc *goquery.Document) lexcrawl.Fragment {
	f := make(lexcrawl.Fragment)
	for _, p := range MetadataPairs(doc) {
		switch p.Label {
		case LabelAuthor:
			authors := []string{}
			p.Value.Find("span").Each(func(_ int, s *goquery.Selection) {
				authors = append(authors, Text(s))
			})
			f[lexcrawl.FieldAuthor] = authors
		case LabelResponsibleBody:
			f[lexcrawl.FieldResponsibleBody] = Text(p.Value)
		case LabelForm:
			f[lexcrawl.FieldDocumentType] = Text(p.Value)
		}
	}
	return f
}
