// Package cleanup normalizes source attributions and punctuation in digest
// text.
package cleanup

import (
	"regexp"
	"strings"
)

// Pair is one literal replacement
type Pair struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// DefaultPairs are applied in order before punctuation fixes
var DefaultPairs = []Pair{
	{"来源：", ""},
	{"北京日报客户端", "北京日报"},
	{"央视新闻客户端", "央视新闻"},
	{"@央视新闻", "央视新闻"},
	{"《北京日报》官方账号", "北京日报"},
	{"《新京报》官方账号", "新京报"},
	{"新黄河客户端", "新黄河"},
	{"人民日报客户端", "人民日报"},
	{"北晚在线", "北京晚报"},
	{"中新网", "中国新闻网"},
	{"中新社", "中国新闻社"},
	{"已获", "获"},
	{"次评论", "条评论"},
}

var (
	asciiParens = strings.NewReplacer("(", "（", ")", "）")

	parenContent     = regexp.MustCompile(`（([^）]*)）`)
	spaceBeforeClose = regexp.MustCompile(`([^\s\p{Zs}])[\s\p{Zs}]+）`)
)

// Cleaner applies a replacement table followed by the punctuation rules
type Cleaner struct {
	pairs []Pair
}

// New creates a Cleaner. Pairs with an empty From are ignored.
func New(pairs []Pair) *Cleaner {
	c := &Cleaner{}
	for _, p := range pairs {
		if p.From != "" {
			c.pairs = append(c.pairs, p)
		}
	}
	return c
}

// Apply returns the cleaned text and whether it differs from the input
func (c *Cleaner) Apply(text string) (string, bool) {
	out := text
	// pairs run sequentially so later pairs see earlier results
	for _, p := range c.pairs {
		out = strings.ReplaceAll(out, p.From, p.To)
	}
	out = asciiParens.Replace(out)
	out = StripTitleMarks(out)
	out = TrimBeforeClose(out)
	return out, out != text
}

// StripTitleMarks removes 《 and 》 found inside full-width parentheses
func StripTitleMarks(text string) string {
	return parenContent.ReplaceAllStringFunc(text, func(m string) string {
		if !strings.ContainsAny(m, "《》") {
			return m
		}
		return strings.NewReplacer("《", "", "》", "").Replace(m)
	})
}

// TrimBeforeClose removes whitespace between a non-space character and a
// closing full-width parenthesis
func TrimBeforeClose(text string) string {
	for {
		next := spaceBeforeClose.ReplaceAllString(text, "$1）")
		if next == text {
			return text
		}
		text = next
	}
}
