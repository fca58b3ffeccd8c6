package domain

import "errors"

// Heading markers used by digest files
const (
	OpenMark  = "【"
	CloseMark = "】"
)

// ErrNoSections is returned when a document has no recognizable headings
var ErrNoSections = errors.New("no sections found")

// Document represents a parsed digest file
type Document struct {
	Header   string    `json:"header,omitempty"`
	Sections []Section `json:"sections"`
}

// Section represents a bracket-headed block of entries
type Section struct {
	Label   string   `json:"label"`
	Heading string   `json:"heading"`
	Entries []string `json:"entries"`
}

// CategoryCount is the number of entries assigned to one category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// EntryCount returns the total number of entries across all sections
func (d Document) EntryCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Entries)
	}
	return n
}

// Heading formats a label as a bracket heading
func Heading(label string) string {
	return OpenMark + label + CloseMark
}
