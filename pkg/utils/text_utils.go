package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空白处断行，连续空白折叠为一个空格
//   - 原文中的换行符保留为段落分隔
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, font text.Face, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measureTextWidth(candidate, font) <= maxWidth {
				current = candidate
				continue
			}

			if current != "" {
				lines = append(lines, current)
			}
			// 单词本身超宽
			if measureTextWidth(word, font) > maxWidth {
				pieces := breakWord(word, font, maxWidth)
				lines = append(lines, pieces[:len(pieces)-1]...)
				current = pieces[len(pieces)-1]
			} else {
				current = word
			}
		}
		lines = append(lines, current)
	}
	return lines
}

// breakWord 按字符切分超宽的单词，至少返回一段
func breakWord(word string, font text.Face, maxWidth float64) []string {
	var pieces []string
	current := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]
		candidate := current + string(r)
		if current != "" && measureTextWidth(candidate, font) > maxWidth {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	return append(pieces, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font text.Face) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// TypewriterText 打字机效果：返回前 n 个字符
func TypewriterText(textStr string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range textStr {
		if i == n {
			return textStr[:pos]
		}
		i++
	}
	return textStr
}
