package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
	"golang.org/x/net/html"
)

// Query-string markers carrying classification codes.
const (
	eurovocMarker       = "DC_CODED="
	subjectMatterMarker = "CT_1_CODED="
	directoryMarker     = "_CODED="
	directoryScope      = "CC_"
)

// ExtractClassification returns EUROVOC descriptors, subject matters and
// directory codes. All three keys are always present.
func ExtractClassification(doc *goquery.Document) lexcrawl.Fragment {
	eurovoc := []lexcrawl.Classification{}
	subjects := []lexcrawl.Classification{}
	directory := []lexcrawl.DirectoryCode{}

	for _, p := range MetadataPairs(doc) {
		switch p.Label {
		case LabelEurovoc:
			eurovoc = append(eurovoc, codedLinks(p.Value, eurovocMarker)...)
		case LabelSubjectMatter:
			subjects = append(subjects, codedLinks(p.Value, subjectMatterMarker)...)
		case LabelDirectoryCode:
			p.Value.Find("li").Each(func(_ int, li *goquery.Selection) {
				entry := lexcrawl.DirectoryCode{
					Code: leadingText(li),
					Path: []lexcrawl.Classification{},
				}
				li.Find("a").Each(func(_ int, a *goquery.Selection) {
					href := a.AttrOr("href", "")
					var code *string
					if strings.Contains(href, directoryScope) {
						code = valueAfter(href, directoryMarker)
					}
					entry.Path = append(entry.Path, lexcrawl.Classification{
						Code:  code,
						Label: englishLabel(a),
						URL:   href,
					})
				})
				directory = append(directory, entry)
			})
		}
	}

	return lexcrawl.Fragment{
		lexcrawl.FieldEurovoc:        eurovoc,
		lexcrawl.FieldSubjectMatters: subjects,
		lexcrawl.FieldDirectoryCodes: directory,
	}
}

// codedLinks reads one classification per list item that contains a link.
func codedLinks(dd *goquery.Selection, marker string) []lexcrawl.Classification {
	var out []lexcrawl.Classification
	dd.Find("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a").First()
		if a.Length() == 0 {
			return
		}
		href := a.AttrOr("href", "")
		out = append(out, lexcrawl.Classification{
			Code:  valueAfter(href, marker),
			Label: englishLabel(a),
			URL:   href,
		})
	})
	return out
}

// englishLabel prefers the English span inside a link.
func englishLabel(a *goquery.Selection) string {
	if span := a.Find(`span[lang="en"]`).First(); span.Length() > 0 {
		return Text(span)
	}
	return Text(a)
}

// leadingText returns the trimmed text of the first child node of sel.
func leadingText(sel *goquery.Selection) string {
	if sel.Length() == 0 || sel.Nodes[0].FirstChild == nil {
		return ""
	}
	first := sel.Nodes[0].FirstChild
	if first.Type == html.TextNode {
		return strings.TrimSpace(first.Data)
	}
	return joinText([]*html.Node{first}, "")
}
