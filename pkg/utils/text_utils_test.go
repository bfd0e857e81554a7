package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	require.NoError(t, err)
	return &text.GoTextFace{Source: src, Size: 16}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font := testFace(t)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{"短文本不换行", "Route α", 1000, 1},
		{"长文本自动换行", "Recommended sequence: 3 days in Tokyo for baseline urban calibration, followed by deployment to Takayama.", 200, 3},
		{"超长单词强制断行", strings.Repeat("x", 80), 100, 2},
		{"空文本", "", 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			assert.GreaterOrEqual(t, len(lines), tt.expectMin)
			for _, line := range lines {
				assert.LessOrEqual(t, measureTextWidth(line, font), tt.maxWidth, "行超宽: %q", line)
			}
			// 去掉断行后内容不变
			assert.Equal(t,
				strings.Join(strings.Fields(tt.input), ""),
				strings.Join(strings.Fields(strings.Join(lines, "")), ""))
		})
	}
}

func TestWrapTextKeepsParagraphsAndWords(t *testing.T) {
	font := testFace(t)

	lines := WrapText("alpha beta\n\ngamma   delta", font, 1000)
	assert.Equal(t, []string{"alpha beta", "", "gamma delta"}, lines)

	lines = WrapText("one two three four five six seven eight nine ten", font, 120)
	for _, line := range lines {
		assert.Equal(t, strings.TrimSpace(line), line)
		for _, word := range strings.Fields(line) {
			assert.NotContains(t, []string{"on", "tw", "thr"}, word, "单词不被截断")
		}
	}
}

func TestWrapTextWithoutFont(t *testing.T) {
	assert.Equal(t, []string{"abc"}, WrapText("abc", nil, 100))
}

func TestTypewriterText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"零个字符", "hello", 0, ""},
		{"部分", "hello", 3, "hel"},
		{"超过长度", "hello", 10, "hello"},
		{"多字节字符", "αβγ", 2, "αβ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypewriterText(tt.input, tt.n))
		})
	}
}
