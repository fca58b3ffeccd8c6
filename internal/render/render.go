// Package render serializes documents and collections back to digest text.
package render

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pbaille/digest/internal/domain"
	"github.com/pbaille/digest/internal/store"
)

// CountLayout controls the "<label><separator> <count> <unit>" header line
type CountLayout struct {
	Bracketed bool   `yaml:"bracketed"`
	Separator string `yaml:"separator"`
	Unit      string `yaml:"unit"`
}

// Layouts used by the merge and sort commands
var (
	FreshLayout       = CountLayout{Bracketed: true, Separator: "共", Unit: "条"}
	IncrementalLayout = CountLayout{Bracketed: true, Separator: "：", Unit: "条"}
)

// Header formats the count header line for label, without a line ending
func (l CountLayout) Header(label string, count int) string {
	if l.Bracketed {
		label = domain.Heading(label)
	}
	return label + l.Separator + " " + strconv.Itoa(count) + " " + l.Unit
}

// Document renders the header and every section with blocks separated by a
// single blank line. The result ends with exactly one newline.
func Document(doc domain.Document) string {
	var parts []string
	if h := strings.TrimSpace(doc.Header); h != "" {
		parts = append(parts, h)
	}
	for _, s := range doc.Sections {
		parts = append(parts, strings.TrimSpace(s.Heading))
		for _, e := range s.Entries {
			parts = append(parts, strings.TrimSpace(e))
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n")) + "\n"
}

// Counted renders a collection as count-headed category blocks. Every entry
// is followed by a blank line.
func Counted(c *store.Collection, layout CountLayout) string {
	var sb strings.Builder
	for _, label := range c.Labels() {
		entries := c.Entries(label)
		sb.WriteString(layout.Header(label, len(entries)))
		sb.WriteString("\n\n")
		for _, e := range entries {
			sb.WriteString(strings.TrimRightFunc(e, unicode.IsSpace))
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// CountedDocument renders the trimmed header, when present, followed by
// Counted. Text before the first heading survives a rewrite this way.
func CountedDocument(header string, c *store.Collection, layout CountLayout) string {
	body := Counted(c, layout)
	h := strings.TrimSpace(header)
	switch {
	case h == "":
		return body
	case body == "":
		return h + "\n"
	}
	return h + "\n\n" + body
}
