package fence

import (
	"slices"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"github.com/qblog/go-mdrender/internal/chain"
	"github.com/qblog/go-mdrender/internal/plantuml"
)

// DiagramLanguages are the fence tags rendered as diagrams.
var DiagramLanguages = []string{"plantuml", "puml"}

// Markup classes of diagram output.
const (
	DiagramClass      = "plantuml-diagram"
	DiagramErrorClass = "plantuml-error"
)

// IsDiagram reports whether lang (already lowercased) is a diagram tag.
func IsDiagram(lang string) bool {
	return slices.Contains(DiagramLanguages, lang)
}

type diagramConfig struct {
	server     string
	encode     plantuml.Encoder
	onError    func(err error)
	onRendered func()
}

// DiagramOption configures Diagram.
type DiagramOption func(*diagramConfig)

// WithServer sets the rendering endpoint the image points at.
func WithServer(server string) DiagramOption {
	return func(c *diagramConfig) {
		if server != "" {
			c.server = server
		}
	}
}

// WithEncoder replaces plantuml.Encode.
func WithEncoder(enc plantuml.Encoder) DiagramOption {
	return func(c *diagramConfig) {
		if enc != nil {
			c.encode = enc
		}
	}
}

// OnError is called for every block whose source could not be encoded.
func OnError(fn func(err error)) DiagramOption {
	return func(c *diagramConfig) {
		c.onError = fn
	}
}

// OnRendered is called for every diagram image emitted.
func OnRendered(fn func()) DiagramOption {
	return func(c *diagramConfig) {
		c.onRendered = fn
	}
}

// Diagram renders plantuml and puml fences as an image served by a PlantUML
// endpoint. Encoding failures produce an inline error element; the render
// itself never fails. Other fences go to next unchanged.
func Diagram(opts ...DiagramOption) chain.Middleware {
	cfg := diagramConfig{
		server: plantuml.DefaultServer,
		encode: plantuml.Encode,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next chain.Handler) chain.Handler {
		return func(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
			n, ok := node.(*ast.FencedCodeBlock)
			if !ok || !IsDiagram(Language(n, source)) {
				return next(w, source, node, entering)
			}
			if !entering {
				return ast.WalkContinue, nil
			}

			payload, err := cfg.encode(Content(n, source))
			if err != nil {
				if cfg.onError != nil {
					cfg.onError(err)
				}
				_, _ = w.WriteString(`<div class="` + DiagramErrorClass + `">PlantUML render failed: `)
				_, _ = w.Write(util.EscapeHTML([]byte(err.Error())))
				_, _ = w.WriteString("</div>\n")
				return ast.WalkContinue, nil
			}

			if cfg.onRendered != nil {
				cfg.onRendered()
			}
			_, _ = w.WriteString(`<div class="` + DiagramClass + `"><img src="`)
			_, _ = w.Write(util.EscapeHTML([]byte(plantuml.URL(cfg.server, payload))))
			_, _ = w.WriteString(`" alt="PlantUML Diagram" loading="lazy" /></div>` + "\n")
			return ast.WalkContinue, nil
		}
	}
}
