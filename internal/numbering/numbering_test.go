package numbering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var body = strings.Repeat("正文内容", 13) // 52 runes

func preamble() string {
	return "第1行\n第2行\n第3行\n第4行\n第5行\n"
}

func TestChinese(t *testing.T) {
	assert.Equal(t, "一", Chinese(1))
	assert.Equal(t, "十一", Chinese(11))
	assert.Equal(t, "三十", Chinese(30))
	assert.Equal(t, "31", Chinese(31))
	assert.Equal(t, "", Chinese(0))
	assert.Equal(t, "-1", Chinese(-1))
}

func TestTextNumbersTitles(t *testing.T) {
	in := preamble() +
		"【京内】\n" +
		"标题甲\n" + body + "\n\n" +
		"三、标题乙\n" + body + "\n\n" +
		"【京外】\n" +
		"标题丙\n" + body + "\n"

	out, added, changed := Text(in, DefaultOptions)

	require.True(t, changed)
	assert.Equal(t, 2, added)
	want := preamble() +
		"【京内】\n" +
		"一、标题甲\n" + body + "\n\n" +
		"二、标题乙\n" + body + "\n\n" +
		"【京外】\n" +
		"一、标题丙\n" + body + "\n"
	assert.Equal(t, want, out)
}

func TestTextSkipsShortBodiesAndDatedLines(t *testing.T) {
	in := preamble() +
		"标题\n短正文\n\n" +
		"10月8日" + body + "\n" + body + "\n" +
		"近日消息\n" + body + "\n"

	out, added, changed := Text(in, DefaultOptions)

	assert.False(t, changed)
	assert.Zero(t, added)
	assert.Equal(t, in, out)
}

func TestTextSkipsLeadingLines(t *testing.T) {
	in := "标题\n" + body + "\n"
	out, _, changed := Text(in, DefaultOptions)
	assert.False(t, changed)
	assert.Equal(t, in, out)

	out, added, changed := Text(in, Options{MinBodyRunes: 50})
	assert.True(t, changed)
	assert.Equal(t, 1, added)
	assert.Equal(t, "一、标题\n"+body+"\n", out)
}

func TestTextKeepsLineEndings(t *testing.T) {
	in := "  标题\r\n" + body + "\r\n"
	out, _, _ := Text(in, Options{MinBodyRunes: 10})
	assert.Equal(t, "一、标题\r\n"+body+"\r\n", out)
}

func TestRenumberingExistingIsNotCountedAsAdded(t *testing.T) {
	in := "一、标题\n" + body + "\n"
	out, added, changed := Text(in, Options{MinBodyRunes: 10})
	assert.False(t, changed)
	assert.Zero(t, added)
	assert.Equal(t, in, out)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b\r\n", "c\r", "d"}, SplitLines("a\nb\r\nc\rd"))
	assert.Nil(t, SplitLines(""))
}
