package fence

import (
	"strconv"
	"sync/atomic"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"github.com/qblog/go-mdrender/internal/chain"
)

// Markup names shared with code that reads rendered copy controls back.
const (
	BlockIDPrefix = "code-block-"
	WrapperClass  = "code-block-wrapper"
	ButtonClass   = "code-copy-btn"
	ButtonIDAttr  = "data-code-id"
	StashClass    = "code-data"
)

const copyIcons = `<svg class="copy-icon" viewBox="0 0 24 24" width="16" height="16" fill="none" stroke="currentColor" stroke-width="2"><rect x="9" y="9" width="13" height="13" rx="2" ry="2"></rect><path d="M5 15H4a2 2 0 0 1-2-2V4a2 2 0 0 1 2-2h9a2 2 0 0 1 2 2v1"></path></svg>` +
	`<svg class="copy-success-icon" viewBox="0 0 24 24" width="16" height="16" fill="none" stroke="currentColor" stroke-width="2" style="display:none"><polyline points="20 6 9 17 4 12"></polyline></svg>`

// BlockID formats the n-th block identifier.
func BlockID(n uint64) string {
	return BlockIDPrefix + strconv.FormatUint(n, 10)
}

// Copy wraps the output of next in a copy control. Each block takes a fresh
// identifier from counter; the hidden stash holds the escaped fence source,
// whatever next rendered.
func Copy(counter *atomic.Uint64) chain.Middleware {
	return func(next chain.Handler) chain.Handler {
		return func(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
			n, ok := node.(*ast.FencedCodeBlock)
			if !ok {
				return next(w, source, node, entering)
			}
			if !entering {
				return ast.WalkContinue, nil
			}

			inner, err := chain.Capture(next, source, n)
			if err != nil {
				return ast.WalkStop, err
			}

			id := BlockID(counter.Add(1))
			label := Info(n, source)
			if label == "" {
				label = "text"
			}
			escLabel := util.EscapeHTML([]byte(label))

			_, _ = w.WriteString(`<div class="` + WrapperClass + `" data-lang="`)
			_, _ = w.Write(escLabel)
			_, _ = w.WriteString("\">\n<div class=\"code-block-header\">\n<span class=\"code-lang\">")
			_, _ = w.Write(escLabel)
			_, _ = w.WriteString("</span>\n")
			_, _ = w.WriteString(`<button class="` + ButtonClass + `" ` + ButtonIDAttr + `="` + id + `" title="Copy code">`)
			_, _ = w.WriteString(copyIcons)
			_, _ = w.WriteString("</button>\n</div>\n")
			_, _ = w.Write(inner)
			_, _ = w.WriteString(`<textarea class="` + StashClass + `" id="` + id + `" style="position:absolute;left:-9999px;">`)
			_, _ = w.Write(util.EscapeHTML(Content(n, source)))
			_, _ = w.WriteString("</textarea>\n</div>\n")
			return ast.WalkContinue, nil
		}
	}
}
