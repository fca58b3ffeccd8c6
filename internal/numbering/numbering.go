// Package numbering prefixes news titles with Chinese ordinal numerals.
package numbering

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pbaille/digest/internal/domain"
)

var (
	chineseNumerals = []string{
		"", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十",
		"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
		"二十一", "二十二", "二十三", "二十四", "二十五", "二十六", "二十七", "二十八", "二十九", "三十",
	}

	existingPrefix = regexp.MustCompile(`^[一二三四五六七八九十]+、`)
	datedLine      = regexp.MustCompile(`^(\d+月\d+日|近日|昨日|今日)`)
)

// Options controls title detection
type Options struct {
	// SkipLines is the number of leading lines never treated as titles
	SkipLines int `yaml:"skip_lines"`
	// MinBodyRunes is the length a following line must exceed for the
	// current line to count as a title
	MinBodyRunes int `yaml:"min_body_runes"`
}

// DefaultOptions matches the layout of the daily brief files
var DefaultOptions = Options{SkipLines: 5, MinBodyRunes: 50}

// Chinese returns the Chinese numeral for n, falling back to decimal digits
// outside 0..30
func Chinese(n int) string {
	if n >= 0 && n < len(chineseNumerals) {
		return chineseNumerals[n]
	}
	return strconv.Itoa(n)
}

// Number renumbers title lines. Lines carry their own line endings. It returns
// the new lines and how many titles had no number before.
func Number(lines []string, opts Options) ([]string, int) {
	out := make([]string, 0, len(lines))
	counter, added := 0, 0

	for i, raw := range lines {
		stripped := strings.TrimSpace(raw)

		if i < opts.SkipLines || stripped == "" {
			out = append(out, raw)
			continue
		}
		if strings.HasPrefix(stripped, domain.OpenMark) {
			counter = 0
			out = append(out, raw)
			continue
		}
		if !isTitle(stripped, lines, i, opts) {
			out = append(out, raw)
			continue
		}

		counter++
		content := stripped
		if loc := existingPrefix.FindStringIndex(stripped); loc != nil {
			content = stripped[loc[1]:]
		} else {
			added++
		}
		out = append(out, Chinese(counter)+"、"+content+lineEnding(raw))
	}

	return out, added
}

// Text applies Number to a whole file body
func Text(content string, opts Options) (string, int, bool) {
	lines := SplitLines(content)
	numbered, added := Number(lines, opts)
	out := strings.Join(numbered, "")
	return out, added, out != content
}

// SplitLines splits s after every line ending, keeping the endings. "\r\n",
// "\n" and a lone "\r" all end a line.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				continue
			}
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isTitle(stripped string, lines []string, i int, opts Options) bool {
	if i+1 >= len(lines) {
		return false
	}
	next := strings.TrimSpace(lines[i+1])
	if next == "" || utf8.RuneCountInString(next) <= opts.MinBodyRunes || strings.HasPrefix(next, domain.OpenMark) {
		return false
	}
	return !datedLine.MatchString(stripped)
}

func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	case strings.HasSuffix(line, "\r"):
		return "\r"
	}
	return "\n"
}
