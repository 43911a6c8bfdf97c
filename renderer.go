package mdrender

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qblog/go-mdrender/internal/assets"
	"github.com/qblog/go-mdrender/internal/metrics"
	"github.com/qblog/go-mdrender/internal/pipeline"
)

// EmptyPlaceholder is rendered for empty input.
const EmptyPlaceholder = "<p>No content yet</p>"

// errorClass marks the element RenderText emits when the engine fails.
const errorClass = "markdown-error"

// Renderer converts Markdown for one variant. It is immutable once built
// and safe for concurrent use; its copy-control counter is shared by all
// callers.
type Renderer struct {
	variant  Variant
	engine   *pipeline.Engine
	counter  atomic.Uint64
	logger   *slog.Logger
	recorder Recorder
	assets   *assets.Resolver

	docOnce sync.Once
	doc     *pipeline.DocumentWrapper
	docErr  error
}

func (f *Factory) build(v Variant) *Renderer {
	r := &Renderer{
		variant:  v,
		logger:   f.logger.With("variant", v.Name),
		recorder: f.recorder,
		assets:   f.assets,
	}

	opts := v.engineOptions()
	opts.Counter = &r.counter
	opts.DiagramEncoder = f.encoder
	opts.OnDiagram = func(err error) {
		r.recorder.IncDiagram(metrics.Result(err == nil))
		if err != nil {
			r.logger.Warn("diagram encoding failed", "error", err)
		}
	}
	r.engine = pipeline.NewEngine(opts)

	r.logger.Debug("renderer built", "copyButton", v.CopyButton, "highlightStyle", v.HighlightStyle)
	return r
}

// Variant returns the configuration the renderer was built with.
func (r *Renderer) Variant() Variant {
	return r.variant
}

// Convert renders text to an HTML fragment. Context cancellation abandons
// the wait, not the render pass itself.
func (r *Renderer) Convert(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := r.engine.Convert(ctx, pipeline.Preprocess(text))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	r.recorder.ObserveRender(r.variant.Name, time.Since(start))
	return out, nil
}

// RenderText renders text and never fails: empty input yields
// EmptyPlaceholder and an engine error yields a visible error element.
// Whitespace-only input renders normally, usually to nothing.
func (r *Renderer) RenderText(text string) string {
	if text == "" {
		return EmptyPlaceholder
	}
	out, err := r.Convert(context.Background(), text)
	if err != nil {
		r.logger.Error("render failed", "error", err)
		return `<div class="` + errorClass + `">` + html.EscapeString(err.Error()) + "</div>\n"
	}
	return out
}

// Page is the input of a standalone document.
type Page struct {
	Title    string
	Lang     string // defaults to "en"
	Markdown string

	// DateText is shown under the content; DateISO is its machine form.
	DateText string
	DateISO  string
}

// Standalone renders a complete HTML5 page carrying the variant's theme
// stylesheet and the highlight stylesheet. Variants without a theme of
// their own use the default one.
func (r *Renderer) Standalone(ctx context.Context, p Page) (string, error) {
	wrapper, err := r.documentWrapper()
	if err != nil {
		return "", err
	}

	content := EmptyPlaceholder
	if p.Markdown != "" {
		content, err = r.Convert(ctx, p.Markdown)
		if err != nil {
			return "", err
		}
	}

	themeCSS, themeName, err := r.assets.LoadTheme(r.variant.Name)
	if err != nil {
		return "", fmt.Errorf("%w: theme: %v", ErrDocument, err)
	}
	highlightCSS, err := pipeline.HighlightCSS(r.variant.HighlightStyle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocument, err)
	}

	page, err := wrapper.Wrap(ctx, pipeline.Document{
		Title:        p.Title,
		Lang:         p.Lang,
		BodyClass:    ThemeClass(themeName),
		ThemeCSS:     themeCSS,
		HighlightCSS: highlightCSS,
		Content:      content,
		DateText:     p.DateText,
		DateISO:      p.DateISO,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocument, err)
	}
	return page, nil
}

func (r *Renderer) documentWrapper() (*pipeline.DocumentWrapper, error) {
	r.docOnce.Do(func() {
		tmpl, err := r.assets.Load(assets.Template, assets.DocumentTemplateName)
		if err != nil {
			r.docErr = fmt.Errorf("%w: template: %v", ErrDocument, err)
			return
		}
		r.doc, r.docErr = pipeline.NewDocumentWrapper(tmpl)
		if r.docErr != nil {
			r.docErr = fmt.Errorf("%w: %v", ErrDocument, r.docErr)
		}
	})
	return r.doc, r.docErr
}
