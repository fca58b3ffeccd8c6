// Package reorder regroups section entries into classifier category order.
package reorder

import (
	"strconv"
	"strings"

	"github.com/pbaille/digest/internal/classifier"
	"github.com/pbaille/digest/internal/domain"
)

// DefaultVerbatimMarkers name the reference sections that keep their order
var DefaultVerbatimMarkers = []string{"舆情参考", "舆情参"}

// Result describes what happened to one section
type Result struct {
	Section  domain.Section         `json:"section"`
	Counts   []domain.CategoryCount `json:"counts"`
	Verbatim bool                   `json:"verbatim"`
}

// Engine reorders sections using a classifier
type Engine struct {
	classifier *classifier.Classifier
	verbatim   []string
}

// New creates an Engine. Sections whose heading contains one of the verbatim
// markers are counted but not reordered.
func New(c *classifier.Classifier, verbatim []string) *Engine {
	return &Engine{classifier: c, verbatim: append([]string(nil), verbatim...)}
}

// Section classifies every entry and regroups them by category order. Entries
// of the same category keep their relative order.
func (e *Engine) Section(s domain.Section) Result {
	order := e.classifier.Order()
	buckets := make(map[string][]string, len(order))
	for _, entry := range s.Entries {
		cat := e.classifier.Classify(entry)
		buckets[cat] = append(buckets[cat], entry)
	}

	counts := make([]domain.CategoryCount, len(order))
	for i, cat := range order {
		counts[i] = domain.CategoryCount{Category: cat, Count: len(buckets[cat])}
	}

	out := domain.Section{Label: s.Label, Heading: s.Heading}
	if e.IsVerbatim(s.Heading) {
		out.Entries = append([]string(nil), s.Entries...)
		return Result{Section: out, Counts: counts, Verbatim: true}
	}

	for _, cat := range order {
		out.Entries = append(out.Entries, buckets[cat]...)
	}
	return Result{Section: out, Counts: counts}
}

// Document reorders every section of doc
func (e *Engine) Document(doc domain.Document) (domain.Document, []Result) {
	out := domain.Document{Header: doc.Header}
	results := make([]Result, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		r := e.Section(s)
		out.Sections = append(out.Sections, r.Section)
		results = append(results, r)
	}
	return out, results
}

// IsVerbatim reports whether heading marks a section that must not be reordered.
// Replacement characters and question marks left by broken encodings are
// ignored.
func (e *Engine) IsVerbatim(heading string) bool {
	h := strings.NewReplacer("�", "", "?", "").Replace(heading)
	for _, m := range e.verbatim {
		if m != "" && strings.Contains(h, m) {
			return true
		}
	}
	return false
}

// Breakdown formats counts as "cat:n, cat:n"
func Breakdown(counts []domain.CategoryCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = c.Category + ":" + strconv.Itoa(c.Count)
	}
	return strings.Join(parts, ", ")
}
