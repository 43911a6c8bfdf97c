package mdrender

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/qblog/go-mdrender/internal/pipeline"
	"github.com/qblog/go-mdrender/internal/plantuml"
)

// Built-in variant keys.
const (
	VariantVuePress = "vuepress"
	VariantGitHub   = "github"

	// DefaultVariant is the variant selected when none is named, and the
	// theme used by variants without one.
	DefaultVariant = VariantVuePress

	// FallbackVariant is what a Factory resolves unknown keys to unless
	// WithDefaultVariant says otherwise. It carries no copy controls.
	FallbackVariant = VariantGitHub
)

// MaxVariantNameLength bounds variant keys.
const MaxVariantNameLength = 64

var variantName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Variant configures one renderer.
type Variant struct {
	Name           string
	CopyButton     bool   // wrap fenced code in a copy control
	HighlightStyle string // chroma style name (default: github)
	AllowHTML      bool   // pass raw HTML through
	HardWraps      bool   // soft line breaks become <br />
	Linkify        bool   // bare URLs become links
	Typographer    bool   // smart quotes and dashes
	DiagramServer  string // PlantUML endpoint (default: plantuml.com SVG)
}

// BuiltinVariants returns fresh copies of the built-in variants.
func BuiltinVariants() []Variant {
	return []Variant{
		{
			Name:           VariantVuePress,
			CopyButton:     true,
			HighlightStyle: "monokai",
			AllowHTML:      true,
			HardWraps:      true,
			Linkify:        true,
			Typographer:    true,
			DiagramServer:  plantuml.DefaultServer,
		},
		{
			Name:           VariantGitHub,
			HighlightStyle: "github",
			AllowHTML:      true,
			HardWraps:      true,
			Linkify:        true,
			Typographer:    true,
			DiagramServer:  plantuml.DefaultServer,
		},
	}
}

// Validate checks that the variant can be built.
func (v *Variant) Validate() error {
	if v == nil {
		return fmt.Errorf("%w: nil", ErrInvalidVariant)
	}
	if len(v.Name) > MaxVariantNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidVariant, MaxVariantNameLength)
	}
	if !variantName.MatchString(v.Name) {
		return fmt.Errorf("%w: name %q (lowercase letters, digits, '-' and '_')", ErrInvalidVariant, v.Name)
	}
	if v.HighlightStyle != "" && !pipeline.ValidHighlightStyle(v.HighlightStyle) {
		return fmt.Errorf("%w: %s: unknown highlight style %q", ErrInvalidVariant, v.Name, v.HighlightStyle)
	}
	if v.DiagramServer != "" {
		u, err := url.Parse(v.DiagramServer)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s: diagram server must be an http(s) URL, got %q", ErrInvalidVariant, v.Name, v.DiagramServer)
		}
	}
	return nil
}

func (v Variant) engineOptions() pipeline.Options {
	return pipeline.Options{
		CopyButton:     v.CopyButton,
		HighlightStyle: v.HighlightStyle,
		AllowHTML:      v.AllowHTML,
		HardWraps:      v.HardWraps,
		Linkify:        v.Linkify,
		Typographer:    v.Typographer,
		DiagramServer:  v.DiagramServer,
	}
}

// ThemeClass returns the class list of the element a rendered fragment is
// placed in.
func ThemeClass(key string) string {
	return "markdown-body " + key + "-theme"
}
