package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/digest/internal/domain"
)

func TestParseHeading(t *testing.T) {
	tests := []struct {
		line  string
		label string
		ok    bool
	}{
		{"【京内正面】", "京内正面", true},
		{"  【京内正面】共 3 条\n", "京内正面", true},
		{"【舆情速览】（共5条）", "舆情速览", true},
		{"【】", "", false},
		{"【未闭合", "", false},
		{"正文【括号】", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		label, ok := ParseHeading(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		assert.Equal(t, tt.label, label, "line %q", tt.line)
	}
}

func TestSplitConcreteScenario(t *testing.T) {
	doc := Split("【分类A】\nentry one\n\nentry two\n\n")

	want := domain.Document{
		Sections: []domain.Section{
			{Label: "分类A", Heading: "【分类A】", Entries: []string{"entry one", "entry two"}},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Split() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitRawBodies(t *testing.T) {
	text := "标题行\n\n【甲】\nA1\n\nA2\n【乙】附注\nB1\n【甲】\n"
	header, sections := SplitRaw(text)

	assert.Equal(t, "标题行", header)
	require.Len(t, sections, 3)
	assert.Equal(t, RawSection{Label: "甲", Heading: "【甲】", Body: "A1\n\nA2\n"}, sections[0])
	assert.Equal(t, RawSection{Label: "乙", Heading: "【乙】附注", Body: "B1\n"}, sections[1])
	assert.Equal(t, RawSection{Label: "甲", Heading: "【甲】", Body: ""}, sections[2])
}

func TestSplitRawSectionCountMatchesHeadings(t *testing.T) {
	text := "【一】\n【二】\nx\n【三】\n\n\n【四】"
	_, sections := SplitRaw(text)
	require.Len(t, sections, 4)
	assert.Equal(t, "", sections[0].Body)
	assert.Equal(t, "x\n", sections[1].Body)
	assert.Equal(t, "\n\n", sections[2].Body)
	assert.Equal(t, "", sections[3].Body)
}

func TestSplitNoHeadings(t *testing.T) {
	header, sections := SplitRaw("\n\n just text \nmore\n\n")
	assert.Equal(t, " just text \nmore", header)
	assert.Empty(t, sections)

	_, err := Parse("no headings here")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoSections))
}

func TestSplitEntries(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"empty", "", nil},
		{"blank only", "\n  \n\t\n", nil},
		{"no trailing blank", "a\nb", []string{"a\nb"}},
		{"multiple blanks", "a\n\n\n\nb\n", []string{"a", "b"}},
		{"trailing spaces trimmed", "a  \nb\t\n   \nc", []string{"a\nb", "c"}},
		{"crlf", "a\r\nb\r\n\r\nc\r\n", []string{"a\nb", "c"}},
		{"indent kept", "  a\n    b", []string{"  a\n    b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitEntries(tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitEntries() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseKeepsRepeatedLabels(t *testing.T) {
	doc, err := Parse("【甲】\na\n\n【乙】\nb\n\n【甲】\nc\n")
	require.NoError(t, err)
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "甲", doc.Sections[2].Label)
	assert.Equal(t, []string{"c"}, doc.Sections[2].Entries)
	assert.Equal(t, 3, doc.EntryCount())
}
