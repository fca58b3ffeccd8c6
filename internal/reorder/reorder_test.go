package reorder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/digest/internal/classifier"
	"github.com/pbaille/digest/internal/domain"
	"github.com/pbaille/digest/internal/parser"
)

func TestSectionStablePartition(t *testing.T) {
	e := New(classifier.Default(), DefaultVerbatimMarkers)
	sec := domain.Section{
		Label:   "舆情速览",
		Heading: "【舆情速览】",
		Entries: []string{"某大学一", "天气", "小学一", "市教委一", "某大学二", "小学二", "交通"},
	}

	r := e.Section(sec)

	assert.False(t, r.Verbatim)
	want := []string{"市教委一", "小学一", "小学二", "某大学一", "某大学二", "天气", "交通"}
	if diff := cmp.Diff(want, r.Section.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []domain.CategoryCount{
		{Category: "市委教委", Count: 1},
		{Category: "中小学", Count: 2},
		{Category: "高校", Count: 2},
		{Category: "其他", Count: 2},
	}, r.Counts)
	// input untouched
	assert.Equal(t, "某大学一", sec.Entries[0])
}

func TestSectionZeroCounts(t *testing.T) {
	e := New(classifier.Default(), nil)
	r := e.Section(domain.Section{Heading: "【空】"})
	assert.Empty(t, r.Section.Entries)
	require.Len(t, r.Counts, 4)
	for _, c := range r.Counts {
		assert.Zero(t, c.Count)
	}
	assert.Equal(t, "市委教委:0, 中小学:0, 高校:0, 其他:0", Breakdown(r.Counts))
}

func TestVerbatimSectionKeepsOrder(t *testing.T) {
	e := New(classifier.Default(), DefaultVerbatimMarkers)
	entries := []string{"某大学", "小学", "天气"}

	for _, heading := range []string{"【舆情参考】", "【舆情?参考】", "【舆情�参】"} {
		r := e.Section(domain.Section{Heading: heading, Entries: entries})
		assert.True(t, r.Verbatim, heading)
		assert.Equal(t, entries, r.Section.Entries, heading)
		assert.Equal(t, "市委教委:0, 中小学:1, 高校:1, 其他:1", Breakdown(r.Counts))
	}
}

func TestDocument(t *testing.T) {
	e := New(classifier.Default(), DefaultVerbatimMarkers)
	doc := parser.Split("日报\n\n【舆情速览】\n大学\n\n小学\n\n【舆情参考】\n大学\n\n小学\n")

	out, results := e.Document(doc)

	require.Len(t, results, 2)
	assert.Equal(t, "日报", out.Header)
	assert.Equal(t, []string{"小学", "大学"}, out.Sections[0].Entries)
	assert.Equal(t, []string{"大学", "小学"}, out.Sections[1].Entries)
	assert.True(t, results[1].Verbatim)
}
