// Package heading adds slug ids and hover anchors to headings.
package heading

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"github.com/qblog/go-mdrender/internal/chain"
	"github.com/qblog/go-mdrender/internal/slug"
)

const linkIcon = `<svg viewBox="0 0 24 24" width="16" height="16" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M10 13a5 5 0 0 0 7.54.54l3-3a5 5 0 0 0-7.07-7.07l-1.72 1.71"/><path d="M14 11a5 5 0 0 0-7.54-.54l-3 3a5 5 0 0 0 7.07 7.07l1.71-1.71"/></svg>`

// AnchorClass is the class of the anchor emitted after each heading.
const AnchorClass = "header-anchor"

var idAttr = []byte("id")

// Title returns the heading's raw source text, before inline markup is
// interpreted.
func Title(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			buf.WriteByte('\n')
		}
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}

// Anchor sets the id attribute of every heading to the slug of its title
// and appends an anchor linking to it after the closing tag. Headings
// whose title slugs to nothing get neither.
//
// The leaving visit reads the id back from the node it closes, so other
// middleware on the same kind cannot break the pairing.
func Anchor() chain.Middleware {
	return func(next chain.Handler) chain.Handler {
		return func(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
			if entering {
				if s := slug.Make(Title(node, source)); s != "" {
					node.SetAttribute(idAttr, []byte(s))
				}
				return next(w, source, node, entering)
			}

			status, err := next(w, source, node, entering)
			if err != nil {
				return status, err
			}
			id := anchorID(node)
			if id == "" {
				return status, nil
			}
			_, _ = w.WriteString(`<a class="` + AnchorClass + `" href="#`)
			_, _ = w.Write(util.EscapeHTML([]byte(id)))
			_, _ = w.WriteString(`" aria-label="Link to this heading">`)
			_, _ = w.WriteString(linkIcon)
			_, _ = w.WriteString("</a>\n")
			return status, nil
		}
	}
}

func anchorID(node ast.Node) string {
	v, ok := node.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}
