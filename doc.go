// Package mdrender renders Markdown to HTML fragments for a blog front end,
// with admonition containers, PlantUML diagrams, heading anchors and
// copy-to-clipboard code blocks.
//
// # Quick Start
//
// The package-level functions use a process-wide Factory with the built-in
// variants:
//
//	html := mdrender.Render("vuepress", "# Hello\n\n:::tip\nWorld\n:::")
//
// Empty input renders EmptyPlaceholder. Unknown variant keys fall back to
// FallbackVariant, which adds no copy controls.
//
// # Variants
//
// A Variant is one renderer configuration. Two are built in:
//
//   - vuepress: code blocks carry a copy control
//   - github: plain code blocks
//
// Both allow raw HTML, turn soft line breaks into <br />, link bare URLs and
// apply typographic quotes. Custom variants are passed to NewFactory:
//
//	f, err := mdrender.NewFactory(
//	    mdrender.WithVariants(mdrender.Variant{Name: "docs", CopyButton: true}),
//	    mdrender.WithDefaultVariant("docs"),
//	    mdrender.WithLogger(logger),
//	)
//
// A Factory builds each variant's Renderer once and hands out the same
// instance afterwards. Renderers are safe for concurrent use.
//
// # Rendering Pipeline
//
//  1. Source preprocessing (line endings, byte order mark)
//  2. goldmark parse with the container block parsers
//  3. goldmark render through per-kind middleware stacks over the stock
//     renderers: diagram fences, heading anchors, then copy controls
//
// # Copy Controls
//
// Rendered code blocks carry a button and a hidden stash holding the
// original source. Hosts wire clicks back through CopyHandler:
//
//	index, _ := mdrender.NewStashIndex(html)
//	h := mdrender.NewCopyHandler(clipboard, index, mdrender.WithIndicator(ui))
//	mdrender.InstallCopyHandler(clicks, h)
package mdrender
