package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/digest/internal/domain"
	"github.com/pbaille/digest/internal/parser"
	"github.com/pbaille/digest/internal/store"
)

func TestCountedConcreteScenario(t *testing.T) {
	doc := parser.Split("【分类A】\nentry one\n\nentry two\n\n")
	plain := CountLayout{Separator: "共", Unit: "条"}

	got := Counted(store.FromDocument(doc), plain)

	assert.Equal(t, "分类A共 2 条\n\nentry one\n\nentry two\n\n", got)
}

func TestCountedBracketedRoundTrip(t *testing.T) {
	c := store.New()
	c.Append("京内正面", "a\nline two  ", "b")
	c.Append("京外负面")
	c.Append("京内负面", "c")

	out := Counted(c, FreshLayout)
	assert.Equal(t,
		"【京内正面】共 2 条\n\na\nline two\n\nb\n\n【京外负面】共 0 条\n\n【京内负面】共 1 条\n\nc\n\n",
		out)

	back := store.FromDocument(parser.Split(out))
	assert.Equal(t, c.Labels(), back.Labels())
	for _, l := range c.Labels() {
		want := c.Entries(l)
		got := back.Entries(l)
		require.Len(t, got, len(want), l)
		for i := range want {
			assert.Equal(t, trimmed(want[i]), got[i])
		}
	}
}

func trimmed(s string) string {
	return parser.SplitEntries(s)[0]
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "【甲】：3 条", IncrementalLayout.Header("甲", 3))
	assert.Equal(t, "【甲】共 0 条", FreshLayout.Header("甲", 0))
	assert.Equal(t, "甲 items 7 个", CountLayout{Separator: " items", Unit: "个"}.Header("甲", 7))
}

func TestCountedDocumentKeepsHeader(t *testing.T) {
	c := store.New()
	c.Append("甲", "a")

	assert.Equal(t, "日报\n\n【甲】共 1 条\n\na\n\n", CountedDocument("\n 日报 \n", c, FreshLayout))
	assert.Equal(t, "【甲】共 1 条\n\na\n\n", CountedDocument("  ", c, FreshLayout))
	assert.Equal(t, "日报\n", CountedDocument("日报", store.New(), FreshLayout))
}

func TestDocument(t *testing.T) {
	doc := domain.Document{
		Header: "\n  日报 \n",
		Sections: []domain.Section{
			{Heading: " 【甲】附注 ", Entries: []string{"  a  ", "b\nc"}},
			{Heading: "【乙】"},
		},
	}

	assert.Equal(t, "日报\n\n【甲】附注\n\na\n\nb\nc\n\n【乙】\n", Document(doc))
}

func TestDocumentRoundTrip(t *testing.T) {
	text := "标题\n\n\n【甲】\nx\n\n\ny\nz\n【乙】\n\nw\n"
	doc := parser.Split(text)

	out := Document(doc)
	assert.Equal(t, "标题\n\n【甲】\n\nx\n\ny\nz\n\n【乙】\n\nw\n", out)
	assert.Equal(t, doc, parser.Split(out))
}

func TestDocumentEmpty(t *testing.T) {
	assert.Equal(t, "\n", Document(domain.Document{}))
}
