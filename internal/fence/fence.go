// Package fence provides middleware for fenced code blocks: diagram
// rendering for PlantUML sources and copy-to-clipboard decoration.
//
// Both render the whole block on the entering visit and write nothing on
// leaving, matching the stock fenced code renderers they wrap.
package fence

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Language returns the lowercased first word of the info string, or "" when
// the fence has none.
func Language(n *ast.FencedCodeBlock, source []byte) string {
	return strings.ToLower(string(n.Language(source)))
}

// Info returns the whole trimmed info string.
func Info(n *ast.FencedCodeBlock, source []byte) string {
	if n.Info == nil {
		return ""
	}
	return strings.TrimSpace(string(n.Info.Segment.Value(source)))
}

// Content returns the raw fence body, trailing newline included.
func Content(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.Bytes()
}
