package container

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/qblog/go-mdrender/internal/chain"
)

// Render writes the wrapper of a container. Body children are rendered by
// the walker between the two visits.
func Render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Node)
	if entering {
		_, _ = w.WriteString(`<div class="custom-container `)
		_, _ = w.Write(util.EscapeHTML([]byte(n.Flavor)))
		_, _ = w.WriteString("\">\n")
		_, _ = w.WriteString(`<p class="custom-container-title">`)
		_, _ = w.WriteString(n.Icon)
		_ = w.WriteByte(' ')
		_, _ = w.Write(util.EscapeHTML([]byte(n.Title)))
		_, _ = w.WriteString("</p>\n")
		return ast.WalkContinue, nil
	}

	if n.HasChildren() {
		_ = w.WriteByte('\n')
	}
	_, _ = w.WriteString("</div>\n")
	return ast.WalkContinue, nil
}

type extension struct {
	composer *chain.Composer
	types    []Type
}

// NewExtension returns a goldmark extender that adds the container parsers
// and installs Render as the base handler for Kind on composer. The composer
// must be registered as a node renderer by the caller.
func NewExtension(composer *chain.Composer, types ...Type) goldmark.Extender {
	return &extension{composer: composer, types: types}
}

func (e *extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(BlockParsers(e.types...)...))
	e.composer.SetBase(Kind, Render)
}
