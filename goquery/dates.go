package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lexcrawl"
)

// claimedLabels are handled by other extractors and never produce date fields.
var claimedLabels = map[string]bool{
	LabelAuthor:           true,
	LabelResponsibleBody:  true,
	LabelForm:             true,
	LabelTreaty:           true,
	LabelLegalBasis:       true,
	LabelProposal:         true,
	LabelInstrumentsCited: true,
	LabelEurovoc:          true,
	LabelSubjectMatter:    true,
	LabelDirectoryCode:    true,
}

// multiValued date fields are always lists.
var multiValued = map[string]bool{
	lexcrawl.FieldDateOfEffect: true,
	lexcrawl.FieldDeadline:     true,
}

// ExtractDates returns a lexcrawl.DateField for every unclaimed metadata label.
//
// A value is split on its first ';' into a date and a note. When the value
// contains spans, their texts replace the note. Date of effect and deadline
// are always lists; any other field is a scalar until its label repeats.
func ExtractDates(doc *goquery.Document) lexcrawl.Fragment {
	fields := make(map[string]lexcrawl.DateField)

	for _, p := range MetadataPairs(doc) {
		// Claimed labels produce no date keys, so author keeps its list form.
		if claimedLabels[p.Label] {
			continue
		}
		date, note := splitDate(p.Value)
		key := FieldName(p.Label)

		existing, seen := fields[key]
		switch {
		case !seen && multiValued[key]:
			fields[key] = lexcrawl.DateList(lexcrawl.DatedNote{Date: date, Note: note})
		case !seen:
			fields[key] = lexcrawl.ScalarDate(date)
		default:
			fields[key] = existing.Add(date, note)
		}
	}

	f := make(lexcrawl.Fragment, len(fields))
	for key, field := range fields {
		f[key] = field
	}
	return f
}

// FieldName converts a metadata label into a snake_case field name.
func FieldName(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

func splitDate(dd *goquery.Selection) (date, note string) {
	raw := SpacedText(dd)
	parts := strings.Split(raw, ";")
	date = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		note = strings.TrimSpace(strings.Join(parts[1:], ";"))
	}

	spans := dd.Find("span")
	if spans.Length() > 0 {
		texts := make([]string, 0, spans.Length())
		spans.Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, Text(s))
		})
		note = strings.Join(texts, " ")
	}
	return date, note
}
