package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
)

// celexMarker precedes the CELEX number in portal links.
const celexMarker = "CELEX:"

// ExtractRelationships returns the treaty, legal bases, proposals and cited
// instruments. Keys are only set for labels present on the page.
func ExtractRelationships(doc *goquery.Document) lexcrawl.Fragment {
	f := make(lexcrawl.Fragment)
	for _, p := range MetadataPairs(doc) {
		switch p.Label {
		case LabelTreaty:
			if span := p.Value.Find(`span[lang="en"]`).First(); span.Length() > 0 {
				f[lexcrawl.FieldTreaty] = Text(span)
			} else {
				f[lexcrawl.FieldTreaty] = Text(p.Value)
			}
		case LabelLegalBasis:
			f[lexcrawl.FieldLegalBasis] = relations(p.Value)
		case LabelProposal:
			proposals := []lexcrawl.Proposal{}
			p.Value.Find("li").Each(func(_ int, li *goquery.Selection) {
				a := li.Find("a").First()
				proposals = append(proposals, lexcrawl.Proposal{
					Code:        referenceCode(a),
					Title:       a.AttrOr("data-original-title", ""),
					Description: SpacedText(li),
				})
			})
			f[lexcrawl.FieldProposals] = proposals
		case LabelInstrumentsCited:
			f[lexcrawl.FieldInstrumentsCited] = relations(p.Value)
		}
	}
	return f
}

func relations(dd *goquery.Selection) []lexcrawl.Relation {
	out := []lexcrawl.Relation{}
	dd.Find("li").Each(func(_ int, li *goquery.Selection) {
		out = append(out, lexcrawl.Relation{
			Code:        referenceCode(li.Find("a").First()),
			Description: SpacedText(li),
		})
	})
	return out
}

// referenceCode reads the CELEX number of a link from its data-celex
// attribute, falling back to the CELEX marker in its href.
func referenceCode(a *goquery.Selection) *string {
	if a.Length() == 0 {
		return nil
	}
	if code, ok := a.Attr("data-celex"); ok {
		return &code
	}
	return valueAfter(a.AttrOr("href", ""), celexMarker)
}
