package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/qblog/go-mdrender/internal/chain"
	"github.com/qblog/go-mdrender/internal/container"
	"github.com/qblog/go-mdrender/internal/fence"
	"github.com/qblog/go-mdrender/internal/heading"
	"github.com/qblog/go-mdrender/internal/plantuml"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Options configures one engine.
type Options struct {
	CopyButton     bool
	HighlightStyle string
	AllowHTML      bool
	HardWraps      bool
	Linkify        bool
	Typographer    bool
	DiagramServer  string

	// DiagramEncoder replaces plantuml.Encode when set.
	DiagramEncoder plantuml.Encoder

	// Counter numbers copy controls. A nil Counter gets a private one.
	Counter *atomic.Uint64

	// OnDiagram is called once per diagram fence with the encoding error,
	// nil on success.
	OnDiagram func(err error)
}

// Engine is a configured goldmark instance. It is safe for concurrent use
// once built.
type Engine struct {
	md       goldmark.Markdown
	composer *chain.Composer
}

// NewEngine builds the engine. Extensions are applied in a fixed order:
// diagram fences, containers (tip, warning, danger, info), heading anchors,
// then copy decoration when CopyButton is set. On fenced code blocks the
// copy control is therefore the outermost wrapper.
func NewEngine(o Options) *Engine {
	style := o.HighlightStyle
	if style == "" {
		style = DefaultHighlightStyle
	}
	counter := o.Counter
	if counter == nil {
		counter = new(atomic.Uint64)
	}

	var (
		htmlOpts     []html.Option
		rendererOpts []renderer.Option
	)
	add := func(opt interface {
		renderer.Option
		html.Option
	}) {
		htmlOpts = append(htmlOpts, opt)
		rendererOpts = append(rendererOpts, opt)
	}
	add(html.WithXHTML())
	if o.HardWraps {
		add(html.WithHardWraps())
	}
	if o.AllowHTML {
		add(html.WithUnsafe())
	}

	c := chain.New()
	c.Fallback(
		html.NewRenderer(htmlOpts...),
		highlighting.NewHTMLRenderer(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes, stylesheet emitted by HighlightCSS
			),
		),
	)

	diagramOpts := []fence.DiagramOption{
		fence.WithServer(o.DiagramServer),
		fence.WithEncoder(o.DiagramEncoder),
	}
	if o.OnDiagram != nil {
		diagramOpts = append(diagramOpts,
			fence.OnError(o.OnDiagram),
			fence.OnRendered(func() { o.OnDiagram(nil) }),
		)
	}
	c.Install(ast.KindFencedCodeBlock, fence.Diagram(diagramOpts...))

	extensions := []goldmark.Extender{
		container.NewExtension(c, container.Types...),
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Footnote,
	}
	if o.Linkify {
		extensions = append(extensions, extension.Linkify)
	}
	if o.Typographer {
		extensions = append(extensions, extension.Typographer)
	}

	c.Install(ast.KindHeading, heading.Anchor())
	if o.CopyButton {
		c.Install(ast.KindFencedCodeBlock, fence.Copy(counter))
	}

	rendererOpts = append(rendererOpts, renderer.WithNodeRenderers(util.Prioritized(c, chain.Priority)))
	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &Engine{md: md, composer: c}
}

// Render runs one synchronous parse and render pass into w.
func (e *Engine) Render(w io.Writer, source []byte) error {
	if err := e.md.Convert(source, w); err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return nil
}

// Convert renders content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (e *Engine) Convert(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := e.Render(&buf, []byte(content)); err != nil {
			done <- result{err: err}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Depth reports how many middleware wrap the handler of kind.
func (e *Engine) Depth(kind ast.NodeKind) int {
	return e.composer.Depth(kind)
}
