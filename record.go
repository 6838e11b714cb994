package lexcrawl

import (
	"encoding/json"
	"maps"
)

// Field names used in fragments and emitted records.
const (
	FieldURL               = "url"
	FieldCELEX             = "celex"
	FieldTitle             = "title"
	FieldELI               = "eli"
	FieldAuthor            = "author"
	FieldResponsibleBody   = "responsible_body"
	FieldDocumentType      = "document_type"
	FieldTreaty            = "treaty"
	FieldLegalBasis        = "legal_basis"
	FieldProposals         = "proposals"
	FieldInstrumentsCited  = "instruments_cited"
	FieldEurovoc           = "eurovoc_descriptors"
	FieldSubjectMatters    = "subject_matters"
	FieldDirectoryCodes    = "directory_codes"
	FieldTextBlocks        = "text_blocks"
	FieldSections          = "sections"
	FieldProcedureTimeline = "procedure_timeline"
	FieldContentMarkdown   = "content_markdown"
	FieldDateOfEffect      = "date_of_effect"
	FieldDeadline          = "deadline"
)

// Fragment is the partial record produced from a single fetched page.
// Keys are snake_case field names; values are strings, nil, or the value
// types defined in this package.
type Fragment map[string]any

// Merge combines fragments into one flat record. Later fragments overwrite
// keys set by earlier ones; there is no conflict detection.
func Merge(fragments ...Fragment) Fragment {
	merged := make(Fragment)
	for _, f := range fragments {
		maps.Copy(merged, f)
	}
	return merged
}

// String returns a string field, or "" if absent or not a string.
func (f Fragment) String(key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	}
	return ""
}

// DatedNote is a date with its free-text annotation.
type DatedNote struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

// DateField holds either a single date string or an ordered list of
// dated notes. A field starts as a scalar and becomes a list when the same
// label is seen again.
type DateField struct {
	scalar string
	list   []DatedNote
	isList bool
}

// ScalarDate returns a DateField holding a single date.
func ScalarDate(date string) DateField {
	return DateField{scalar: date}
}

// DateList returns a DateField that is a list from the start.
func DateList(items ...DatedNote) DateField {
	return DateField{list: append([]DatedNote{}, items...), isList: true}
}

// Add appends an occurrence. A scalar is upgraded to a list in which the
// original value carries an empty note.
func (d DateField) Add(date, note string) DateField {
	if !d.isList {
		return DateList(
			DatedNote{Date: d.scalar},
			DatedNote{Date: date, Note: note},
		)
	}
	d.list = append(d.list, DatedNote{Date: date, Note: note})
	return d
}

// List returns the dated notes. It is nil for scalar fields.
func (d DateField) List() []DatedNote { return d.list }

// MarshalJSON encodes a scalar as a JSON string and a list as an array.
func (d DateField) MarshalJSON() ([]byte, error) {
	if d.isList {
		return json.Marshal(d.list)
	}
	return json.Marshal(d.scalar)
}

// Relation references another legal instrument.
// Code is nil when the link carries no identifier.
type Relation struct {
	Code        *string `json:"code"`
	Description string  `json:"description"`
}

// Proposal references a preparatory act.
type Proposal struct {
	Code        *string `json:"code"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// Classification is a code from a controlled vocabulary.
type Classification struct {
	Code  *string `json:"code"`
	Label string  `json:"label"`
	URL   string  `json:"url"`
}

// DirectoryCode is a directory code with its hierarchy path.
type DirectoryCode struct {
	Code string           `json:"code"`
	Path []Classification `json:"path"`
}

// Section marks a heading in the document text.
type Section struct {
	Level string `json:"level"`
	Title string `json:"title"`
}

// TimelineEntry is one row of a procedure table keyed by lowercased column name.
type TimelineEntry map[string]string
