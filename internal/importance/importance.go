// Package importance orders entries by the score annotations embedded in them.
package importance

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strconv"

	"github.com/pbaille/digest/internal/store"
)

// Marker extracts a score from entry text
type Marker struct {
	Name    string
	Pattern *regexp.Regexp
}

// Markers are tried in order; the first one found in an entry decides its score
var Markers = []Marker{
	{Name: "external_importance", Pattern: regexp.MustCompile(`external_importance=(\d+)`)},
	{Name: "score", Pattern: regexp.MustCompile(`score=(\d+)`)},
}

// Score returns the importance of text, or 0 when no marker is present
func Score(text string) int {
	for _, m := range Markers {
		match := m.Pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			// only digits reach here, so the value overflowed
			return math.MaxInt
		}
		return n
	}
	return 0
}

// Sort returns entries ordered by descending score. Entries with equal scores
// keep their input order.
func Sort(entries []string) []string {
	type scored struct {
		text  string
		score int
	}
	items := make([]scored, len(entries))
	for i, e := range entries {
		items[i] = scored{text: e, score: Score(e)}
	}
	slices.SortStableFunc(items, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.text
	}
	return out
}

// SortCollection sorts the entries of every label
func SortCollection(c *store.Collection) *store.Collection {
	return c.Map(func(_ string, entries []string) []string {
		return Sort(entries)
	})
}

// Range returns the highest and lowest scores among entries
func Range(entries []string) (hi, lo int) {
	for i, e := range entries {
		s := Score(e)
		if i == 0 || s > hi {
			hi = s
		}
		if i == 0 || s < lo {
			lo = s
		}
	}
	return hi, lo
}
