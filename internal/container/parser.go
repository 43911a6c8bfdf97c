package container

import (
	"bytes"
	"regexp"
	"slices"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ParserPriority runs container parsers after thematic breaks (200) and
// ahead of lists (300), blockquotes (800) and paragraphs (1000).
const ParserPriority = 250

var closeMarker = []byte(":::")

type blockParser struct {
	typ    Type
	opener *regexp.Regexp
}

// NewParser returns the block parser for one container type.
func NewParser(t Type) parser.BlockParser {
	return &blockParser{
		typ:    t,
		opener: regexp.MustCompile(`(?i)^:::\s*` + regexp.QuoteMeta(string(t)) + `(?:\s+(.+))?$`),
	}
}

// BlockParsers returns prioritized parsers for types, or for every type
// when none are given.
func BlockParsers(types ...Type) []util.PrioritizedValue {
	if len(types) == 0 {
		types = Types
	}
	out := make([]util.PrioritizedValue, 0, len(types))
	for _, t := range types {
		out = append(out, util.Prioritized(NewParser(t), ParserPriority))
	}
	return out
}

func (p *blockParser) Trigger() []byte {
	return []byte{':'}
}

// Open accepts the opener only when a closing line exists further down the
// enclosing block. The lookahead keeps a dangling opener out of the tree
// entirely.
func (p *blockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}

	m := p.opener.FindSubmatch(util.TrimRightSpace(line[pos:]))
	if m == nil {
		return nil, parser.NoChildren
	}
	source := reader.Source()
	lineStart := bytes.LastIndexByte(source[:segment.Start], '\n') + 1
	prefix := parsePrefix(source[lineStart:segment.Start])
	if !prefix.closerAhead(source[segment.Stop:]) {
		return nil, parser.NoChildren
	}

	node := NewNode(p.typ, strings.TrimSpace(string(m[1])))
	advanceLine(reader, line, segment)
	return node, parser.NoChildren
}

// Continue consumes body lines until the closing marker. Nothing can
// interrupt a container body.
func (p *blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if isCloser(line) {
		advanceLine(reader, line, segment)
		return parser.Close
	}

	body := segment
	if !util.IsBlank(line) {
		body = segment.TrimLeftSpace(reader.Source())
	}
	node.Lines().Append(body)
	advanceLine(reader, line, segment)
	return parser.Continue | parser.NoChildren
}

func (p *blockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	lines := node.Lines()
	if n := lines.Len(); n > 0 {
		last := lines.At(n - 1)
		lines.Set(n-1, last.TrimRightSpace(reader.Source()))
	}
}

func (p *blockParser) CanInterruptParagraph() bool {
	return true
}

func (p *blockParser) CanAcceptIndentedLine() bool {
	return false
}

func isCloser(line []byte) bool {
	return bytes.Equal(bytes.TrimSpace(line), closeMarker)
}

// linePrefix is what the enclosing blocks consumed before the opener: one
// entry per blockquote marker (-1) or run of list indentation (its width).
type linePrefix []int

const quoteMarker = -1

func parsePrefix(raw []byte) linePrefix {
	var p linePrefix
	for i := 0; i < len(raw); i++ {
		if raw[i] == '>' {
			p = append(p, quoteMarker)
			if i+1 < len(raw) && (raw[i+1] == ' ' || raw[i+1] == '\t') {
				i++
			}
			continue
		}
		if len(p) == 0 || p[len(p)-1] == quoteMarker {
			p = append(p, 0)
		}
		p[len(p)-1]++
	}
	return p
}

// strip removes the prefix from line. It reports false when line does not
// continue the enclosing blocks.
func (p linePrefix) strip(line []byte) ([]byte, bool) {
	if util.IsBlank(line) {
		return line, !slices.Contains(p, quoteMarker)
	}
	for _, width := range p {
		if width == quoteMarker {
			indent := 0
			for indent < 3 && indent < len(line) && line[indent] == ' ' {
				indent++
			}
			if indent >= len(line) || line[indent] != '>' {
				return nil, false
			}
			line = line[indent+1:]
			if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
				line = line[1:]
			}
			continue
		}
		for range width {
			if len(line) == 0 || (line[0] != ' ' && line[0] != '\t') {
				return nil, false
			}
			line = line[1:]
		}
	}
	return line, true
}

// closerAhead scans the lines after the opener for a closing marker, stopping
// at the first line that leaves the enclosing blocks.
func (p linePrefix) closerAhead(rest []byte) bool {
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte{'\n'})
		body, ok := p.strip(line)
		if !ok {
			return false
		}
		if isCloser(body) {
			return true
		}
	}
	return false
}

// advanceLine moves the reader to the end of the current line, leaving the
// newline for the block parser loop.
func advanceLine(reader text.Reader, line []byte, segment text.Segment) {
	newline := 0
	if len(line) > 0 && line[len(line)-1] == '\n' {
		newline = 1
	}
	reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
}
