package fileset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// SummaryPrefix starts the name of every summary file
const SummaryPrefix = "high_score_summaries_"

var segmentName = regexp.MustCompile(`^high_score_summaries_(\d{4}_\d{2}_\d{2})\((\d+)\)\.txt$`)

// Group is the set of segment files sharing a date, ordered by segment number
type Group struct {
	Date  string
	Paths []string
}

// ParseSegment extracts the date key and segment number from a segment file name
func ParseSegment(name string) (date string, n int, ok bool) {
	m := segmentName.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// MergedName returns the file name of the merged output for date
func MergedName(date, suffix string) string {
	return SummaryPrefix + date + suffix + ".txt"
}

// SegmentName returns the file name of segment n for date
func SegmentName(date string, n int) string {
	return fmt.Sprintf("%s%s(%d).txt", SummaryPrefix, date, n)
}

// Segments groups the segment files found directly in dir by date. Groups are
// sorted by date and paths by segment number.
func Segments(dir string) ([]Group, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	type segment struct {
		path string
		n    int
	}
	byDate := make(map[string][]segment)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		date, n, ok := ParseSegment(e.Name())
		if !ok {
			continue
		}
		byDate[date] = append(byDate[date], segment{path: filepath.Join(dir, e.Name()), n: n})
	}

	groups := make([]Group, 0, len(byDate))
	for date, segs := range byDate {
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].n < segs[j].n })
		g := Group{Date: date}
		for _, s := range segs {
			g.Paths = append(g.Paths, s.path)
		}
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date < groups[j].Date })

	return groups, nil
}
