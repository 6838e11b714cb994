package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
)

const (
	textContainer = "div#document1"
	noiseElements = "table, img, hr, a, figure"
	textElements  = "h1, h2, h3, h4, h5, h6, p, li"
)

// ExtractText collects the document body as reading-order text blocks.
// Tables, images, rules, links and figures are dropped first. Every
// heading also produces a section marker. The input document is not
// modified.
func ExtractText(doc *goquery.Document) lexcrawl.Fragment {
	blocks := []string{}
	sections := []lexcrawl.Section{}

	container := doc.Find(textContainer).First()
	if container.Length() > 0 {
		body := container.Clone()
		body.Find(noiseElements).Remove()
		body.Find(textElements).Each(func(_ int, s *goquery.Selection) {
			text := SpacedText(s)
			if text == "" {
				return
			}
			blocks = append(blocks, text)
			if name := goquery.NodeName(s); name[0] == 'h' {
				sections = append(sections, lexcrawl.Section{Level: name, Title: text})
			}
		})
	}

	return lexcrawl.Fragment{
		lexcrawl.FieldTextBlocks: blocks,
		lexcrawl.FieldSections:   sections,
	}
}
