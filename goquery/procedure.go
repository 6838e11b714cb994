package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
)

// ExtractProcedureTimeline reads table.procedureTable into one entry per row,
// keyed by the lowercased header text. Rows without cells are skipped and
// cells past the last header are ignored.
func ExtractProcedureTimeline(doc *goquery.Document) []lexcrawl.TimelineEntry {
	timeline := []lexcrawl.TimelineEntry{}

	table := doc.Find("table.procedureTable").First()
	if table.Length() == 0 {
		return timeline
	}

	var header []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		header = append(header, strings.ToLower(Text(th)))
	})

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return timeline
	}
	rows.Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return
		}
		entry := make(lexcrawl.TimelineEntry, tds.Length())
		tds.Each(func(i int, td *goquery.Selection) {
			if i < len(header) {
				entry[header[i]] = Text(td)
			}
		})
		timeline = append(timeline, entry)
	})
	return timeline
}
