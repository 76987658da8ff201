package templating

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// add returns a + b.
func add(a, b int) int {
	return a + b
}

// inc returns i + 1.
func inc(i int) int {
	return i + 1
}

// repeat returns a slice of integers from 0 to count-1, for use with range.
func repeat(count int) []int {
	if count < 0 {
		return []int{}
	}
	s := make([]int, count)
	for i := range s {
		s[i] = i
	}
	return s
}

// words returns the number of space-separated words in s.
func words(s string) int {
	return len(strings.Fields(s))
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// wrapText greedily breaks text into lines no longer than width runes. Words
// longer than width get a line of their own. A width of zero or less returns
// text unchanged.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var builder strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case lineLen == 0:
		case lineLen+1+wordLen > width:
			builder.WriteByte('\n')
			lineLen = 0
		default:
			builder.WriteByte(' ')
			lineLen++
		}
		builder.WriteString(word)
		lineLen += wordLen
	}
	return builder.String()
}
