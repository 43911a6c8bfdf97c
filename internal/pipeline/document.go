package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Sentinel errors for document assembly.
var (
	ErrDocumentTemplate = errors.New("document template invalid")
	ErrDocumentRender   = errors.New("document rendering failed")
	ErrUnknownStyle     = errors.New("unknown highlight style")
)

// Document is the input of a standalone page.
type Document struct {
	Title        string
	Lang         string // defaults to "en"
	BodyClass    string
	ThemeCSS     string
	HighlightCSS string
	Content      string // rendered fragment, trusted

	// Date is shown under the content when DateText is set. DateISO fills
	// the datetime attribute and may be empty.
	DateText string
	DateISO  string
}

// DocumentWrapper renders fragments into complete HTML5 pages.
type DocumentWrapper struct {
	tmpl *template.Template
}

// NewDocumentWrapper parses an html/template source such as the embedded
// "document" template.
func NewDocumentWrapper(tmplContent string) (*DocumentWrapper, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentTemplate, err)
	}
	return &DocumentWrapper{tmpl: tmpl}, nil
}

type documentData struct {
	Title        string
	Lang         string
	BodyClass    string
	ThemeCSS     template.CSS
	HighlightCSS template.CSS
	Content      template.HTML
	DateText     string
	DateISO      string
}

// Wrap renders doc. CSS is sanitized so it cannot close its style block.
func (d *DocumentWrapper) Wrap(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}
	data := documentData{
		Title:        doc.Title,
		Lang:         lang,
		BodyClass:    doc.BodyClass,
		ThemeCSS:     template.CSS(sanitizeCSS(doc.ThemeCSS)),     // #nosec G203 -- sanitized above
		HighlightCSS: template.CSS(sanitizeCSS(doc.HighlightCSS)), // #nosec G203 -- sanitized above
		Content:      template.HTML(doc.Content),                  // #nosec G203 -- engine output
		DateText:     doc.DateText,
		DateISO:      doc.DateISO,
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// HighlightCSS returns the chroma stylesheet for the class names emitted
// by the engine.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	var buf bytes.Buffer
	if err := html.New(html.WithClasses(true)).WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// ValidHighlightStyle reports whether chroma knows style.
func ValidHighlightStyle(style string) bool {
	_, ok := styles.Registry[strings.ToLower(style)]
	return ok
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
