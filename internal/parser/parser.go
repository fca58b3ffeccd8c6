// Package parser splits digest text into headed sections and blank-line
// separated entries.
package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pbaille/digest/internal/domain"
)

// RawSection is a heading and the unparsed text that follows it
type RawSection struct {
	Label   string
	Heading string
	Body    string
}

// ParseHeading reports whether line is a section heading and returns its label.
// A heading starts with 【 and closes with 】 on the same line, with a non-empty
// label in between. Text after the closing mark is part of the heading line.
func ParseHeading(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, domain.OpenMark) {
		return "", false
	}
	rest := t[len(domain.OpenMark):]
	i := strings.Index(rest, domain.CloseMark)
	if i <= 0 {
		return "", false
	}
	return rest[:i], true
}

// SplitRaw locates heading lines and returns the header text and the body of
// every section. Bodies span from just after a heading line up to the next
// heading line or the end of the text.
func SplitRaw(text string) (string, []RawSection) {
	var (
		sections  []RawSection
		header    string
		current   *RawSection
		bodyStart int
		offset    int
	)

	for _, line := range strings.SplitAfter(text, "\n") {
		lineStart := offset
		offset += len(line)

		label, ok := ParseHeading(line)
		if !ok {
			continue
		}

		if current == nil {
			header = text[:lineStart]
		} else {
			current.Body = text[bodyStart:lineStart]
			sections = append(sections, *current)
		}
		current = &RawSection{Label: label, Heading: strings.TrimSpace(line)}
		bodyStart = offset
	}

	if current == nil {
		return trimBlankLines(text), nil
	}
	current.Body = text[bodyStart:]
	sections = append(sections, *current)

	return trimBlankLines(header), sections
}

// SplitEntries breaks a section body into entries. Whitespace-only lines end
// the current entry; every kept line is right-trimmed.
func SplitEntries(body string) []string {
	var (
		entries []string
		buf     []string
	)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		entries = append(entries, strings.Join(buf, "\n"))
		buf = buf[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return entries
}

// Split parses text into a Document. A text without headings yields a
// Document with only a header.
func Split(text string) domain.Document {
	header, raw := SplitRaw(text)
	doc := domain.Document{Header: header}
	for _, r := range raw {
		doc.Sections = append(doc.Sections, domain.Section{
			Label:   r.Label,
			Heading: r.Heading,
			Entries: SplitEntries(r.Body),
		})
	}
	return doc
}

// Parse is Split for callers that need at least one section
func Parse(text string) (domain.Document, error) {
	doc := Split(text)
	if len(doc.Sections) == 0 {
		return doc, fmt.Errorf("parse document: %w (expected headings like %s)",
			domain.ErrNoSections, domain.Heading("舆情速览"))
	}
	return doc, nil
}

func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.TrimRight(strings.Join(lines[start:end], "\n"), "\r")
}
