// Package hints holds the one-line suggestions the CLI prints under an error.
// Each For* function returns bare text; Format renders a set of them as
// "\n  hint: a; b" ready to append to the error message.
package hints

import (
	"path/filepath"
	"strings"
)

const prefix = "\n  hint: "

// ForConfigNotFound suggests --config, plus the user config location when
// it was among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-mdrender/") {
			return "use --config /path/to/file.yaml or create " + p
		}
	}
	return "use --config /path/to/file.yaml"
}

// ForOutputDirectory is shown when an HTML file cannot be written.
func ForOutputDirectory() string {
	return "check parent directory exists and is writable"
}

// ForUnknownVariant lists the variants that can be selected.
func ForUnknownVariant(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return "available variants: " + strings.Join(available, ", ")
}

// ForHighlightStyle points at the chroma style gallery.
func ForHighlightStyle() string {
	return "see https://xyproto.github.io/splash/docs/ for style names"
}

// ForDiagramServer shows the expected diagram server shape.
func ForDiagramServer() string {
	return "use an http(s) endpoint ending in /svg/, e.g. https://www.plantuml.com/plantuml/svg/"
}

// ForCopyID suggests listing the ids of a document's copy controls.
func ForCopyID() string {
	return "run 'mdrender copy <file>' without --id to list code block ids"
}

// Format joins the non-empty hints into one suffix, or returns "".
func Format(hints ...string) string {
	var b strings.Builder
	for _, h := range hints {
		if h == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(prefix)
		} else {
			b.WriteString("; ")
		}
		b.WriteString(h)
	}
	return b.String()
}
