// Package store accumulates digest entries per category and merges them
// across documents.
package store

import (
	"strings"

	"github.com/pbaille/digest/internal/domain"
)

// Collection holds entries per label in first-seen label order
type Collection struct {
	labels  []string
	index   map[string]int
	entries [][]string
}

// New creates an empty Collection
func New() *Collection {
	return &Collection{index: make(map[string]int)}
}

// FromDocument folds the sections of doc into a Collection. Repeated labels
// are concatenated. When allowed is non-empty, other labels are dropped.
func FromDocument(doc domain.Document, allowed ...string) *Collection {
	var allow map[string]bool
	if len(allowed) > 0 {
		allow = make(map[string]bool, len(allowed))
		for _, a := range allowed {
			allow[a] = true
		}
	}

	c := New()
	for _, s := range doc.Sections {
		if allow != nil && !allow[s.Label] {
			continue
		}
		c.Append(s.Label, s.Entries...)
	}
	return c
}

// Ensure registers label if it is not present yet and returns its position
func (c *Collection) Ensure(label string) int {
	if i, ok := c.index[label]; ok {
		return i
	}
	c.index[label] = len(c.labels)
	c.labels = append(c.labels, label)
	c.entries = append(c.entries, nil)
	return len(c.labels) - 1
}

// Append adds entries to label, keeping duplicates
func (c *Collection) Append(label string, entries ...string) {
	i := c.Ensure(label)
	c.entries[i] = append(c.entries[i], entries...)
}

// AppendUnique adds entry to label unless an entry with the same trimmed text
// is already there. It reports whether the entry was added.
func (c *Collection) AppendUnique(label, entry string) bool {
	if i, ok := c.index[label]; ok && c.contains(i, entry) {
		return false
	}
	c.Append(label, entry)
	return true
}

func (c *Collection) contains(i int, entry string) bool {
	key := strings.TrimSpace(entry)
	for _, e := range c.entries[i] {
		if strings.TrimSpace(e) == key {
			return true
		}
	}
	return false
}

// Has reports whether label is present
func (c *Collection) Has(label string) bool {
	_, ok := c.index[label]
	return ok
}

// Labels returns the labels in insertion order
func (c *Collection) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Entries returns a copy of the entries stored under label
func (c *Collection) Entries(label string) []string {
	i, ok := c.index[label]
	if !ok {
		return nil
	}
	return append([]string(nil), c.entries[i]...)
}

// Len returns the number of labels
func (c *Collection) Len() int {
	return len(c.labels)
}

// Total returns the number of entries across all labels
func (c *Collection) Total() int {
	n := 0
	for _, e := range c.entries {
		n += len(e)
	}
	return n
}

// Counts returns the entry count of every label in order
func (c *Collection) Counts() []domain.CategoryCount {
	out := make([]domain.CategoryCount, len(c.labels))
	for i, l := range c.labels {
		out[i] = domain.CategoryCount{Category: l, Count: len(c.entries[i])}
	}
	return out
}

// Clone returns a deep copy
func (c *Collection) Clone() *Collection {
	out := New()
	for i, l := range c.labels {
		out.Append(l, c.entries[i]...)
	}
	return out
}

// Map applies fn to the entries of every label and returns a new Collection
func (c *Collection) Map(fn func(label string, entries []string) []string) *Collection {
	out := New()
	for i, l := range c.labels {
		out.Append(l, fn(l, append([]string(nil), c.entries[i]...))...)
	}
	return out
}

// Document converts the Collection back into sections with bracket headings
func (c *Collection) Document() domain.Document {
	doc := domain.Document{}
	for i, l := range c.labels {
		doc.Sections = append(doc.Sections, domain.Section{
			Label:   l,
			Heading: domain.Heading(l),
			Entries: append([]string(nil), c.entries[i]...),
		})
	}
	return doc
}
