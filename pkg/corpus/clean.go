package corpus

import "strings"

const (
	// StartMarker precedes the book content in a Gutenberg text file.
	StartMarker = "*** START OF THE PROJECT GUTENBERG EBOOK"
	// EndMarker follows the book content in a Gutenberg text file.
	EndMarker = "*** END OF THE PROJECT GUTENBERG EBOOK"
)

// StripBoilerplate removes the Gutenberg header and footer. Content begins on
// the line after StartMarker and ends right before EndMarker; both markers are
// matched case-insensitively. A missing start marker keeps the text from the
// beginning and a missing end marker keeps it through the end. If the start
// marker is on the last line, nothing is kept.
func StripBoilerplate(raw string) string {
	if raw == "" {
		return ""
	}

	start := 0
	if idx := indexFold(raw, StartMarker); idx != -1 {
		if nl := strings.IndexByte(raw[idx:], '\n'); nl != -1 {
			start = idx + nl
		} else {
			start = len(raw)
		}
	}

	end := len(raw)
	if idx := indexFold(raw, EndMarker); idx != -1 {
		end = idx
	}

	if start >= end {
		return ""
	}
	return strings.TrimSpace(raw[start:end])
}

// NormalizeWhitespace collapses every run of whitespace into a single space
// and trims the ends.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Clean strips the boilerplate and normalizes whitespace.
func Clean(raw string) string {
	return NormalizeWhitespace(StripBoilerplate(raw))
}

// indexFold returns the byte offset of the first ASCII case-insensitive match
// of marker in s, or -1.
func indexFold(s, marker string) int {
	for i := 0; i+len(marker) <= len(s); i++ {
		if asciiEqualFold(s[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}

func asciiEqualFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
