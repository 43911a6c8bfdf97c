package pipeline

import (
	"regexp"
	"strings"
)

const byteOrderMark = "\uFEFF"

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Preprocess prepares Markdown source for the engine: a leading byte order
// mark is dropped and \r\n and \r become \n, so heading slugs and stashed
// code never carry carriage returns.
func Preprocess(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
