// Package slug turns heading text into URL fragment identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxLength is the longest slug Make returns, in runes.
const MaxLength = 50

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

	// Word characters, hyphens and CJK Unified Ideographs survive.
	disallowed = regexp.MustCompile(`[^\w\x{4E00}-\x{9FFF}-]`)

	hyphenRun = regexp.MustCompile(`-{2,}`)
)

// Make returns the slug for text: lowercased, whitespace turned into hyphens,
// everything but word characters, hyphens and CJK ideographs removed,
// hyphen runs collapsed, edges trimmed, at most MaxLength runes.
// An empty result means the text has no usable anchor.
func Make(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(text)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return truncate(s, MaxLength)
}

// truncate cuts s to n runes. A hyphen exposed by the cut is trimmed too,
// otherwise Make(Make(x)) could differ from Make(x).
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n]), "-")
}
