package main

import (
	"fmt"
	"sort"

	"github.com/qblog/go-mdrender"
	"github.com/qblog/go-mdrender/internal/config"
	"github.com/qblog/go-mdrender/internal/yamlutil"
)

// mergeVariants overlays the configured variants on the built-in ones.
// A configured variant named like a built-in starts from the built-in.
func mergeVariants(cfg *config.Config) (map[string]mdrender.Variant, error) {
	out := make(map[string]mdrender.Variant)
	for _, v := range mdrender.BuiltinVariants() {
		out[v.Name] = v
	}

	for _, name := range cfg.VariantNames() {
		vc := cfg.Variants[name]
		v, ok := out[name]
		if !ok {
			v = mdrender.Variant{Name: name}
		}
		setBool(&v.CopyButton, vc.CopyButton)
		setBool(&v.AllowHTML, vc.AllowHTML)
		setBool(&v.HardWraps, vc.HardWraps)
		setBool(&v.Linkify, vc.Linkify)
		setBool(&v.Typographer, vc.Typographer)
		if vc.HighlightStyle != "" {
			v.HighlightStyle = vc.HighlightStyle
		}
		if vc.DiagramServer != "" {
			v.DiagramServer = vc.DiagramServer
		}
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("variants.%s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func sortedNames(variants map[string]mdrender.Variant) []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// variantView is the YAML shape printed by the variants command. It
// matches the config file's variant entries.
type variantView struct {
	CopyButton     bool   `yaml:"copyButton"`
	HighlightStyle string `yaml:"highlightStyle"`
	AllowHTML      bool   `yaml:"allowHTML"`
	HardWraps      bool   `yaml:"hardWraps"`
	Linkify        bool   `yaml:"linkify"`
	Typographer    bool   `yaml:"typographer"`
	DiagramServer  string `yaml:"diagramServer"`
}

type variantsView struct {
	DefaultVariant string                 `yaml:"defaultVariant"`
	Variants       map[string]variantView `yaml:"variants"`
}

// runVariantsCommand prints the effective variants as YAML.
func runVariantsCommand(args []string, env *Environment) error {
	flags, positional, err := parseVariantsFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: variants takes no arguments", ErrUsage)
	}

	s, err := newSession(flags.common, env)
	if err != nil {
		return err
	}

	view := variantsView{
		DefaultVariant: s.factory.DefaultVariant(),
		Variants:       make(map[string]variantView),
	}
	for _, v := range s.factory.Variants() {
		view.Variants[v.Name] = variantView{
			CopyButton:     v.CopyButton,
			HighlightStyle: v.HighlightStyle,
			AllowHTML:      v.AllowHTML,
			HardWraps:      v.HardWraps,
			Linkify:        v.Linkify,
			Typographer:    v.Typographer,
			DiagramServer:  v.DiagramServer,
		}
	}

	data, err := yamlutil.Marshal(view)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}
