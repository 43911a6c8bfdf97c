package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// mediaAttrs lists the attributes holding local references, per element.
var mediaAttrs = map[atom.Atom][]string{
	atom.Img:    {"src"},
	atom.A:      {"href"},
	atom.Source: {"src"},
	atom.Video:  {"src", "poster"},
	atom.Audio:  {"src"},
}

// RewriteRelativePaths relocates the local references of HTML rendered from
// a file in sourceDir so they still resolve once it is written to
// outputDir. Empty or equal directories return the input unchanged.
//
// Rewritten: img[src], a[href], source[src], video[src|poster], audio[src].
// Left alone: URLs, anchors, absolute paths, srcset, and references that
// climb out of sourceDir.
func RewriteRelativePaths(htmlContent, sourceDir, outputDir string) (string, error) {
	if sourceDir == "" || outputDir == "" {
		return htmlContent, nil
	}
	rw, err := newRelocator(sourceDir, outputDir)
	if err != nil {
		return "", err
	}
	if rw.from == rw.to {
		return htmlContent, nil
	}

	nodes, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		rw.apply(n)
	}
	return renderHTML(nodes)
}

// relocator maps references from one directory to another.
type relocator struct {
	from, to string
}

func newRelocator(sourceDir, outputDir string) (*relocator, error) {
	from, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}
	to, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}
	return &relocator{from: from, to: to}, nil
}

// apply rewrites every reference under n, n included.
func (r *relocator) apply(n *html.Node) {
	r.rewrite(n)
	for d := range n.Descendants() {
		r.rewrite(d)
	}
}

func (r *relocator) rewrite(n *html.Node) {
	if n.Type != html.ElementNode {
		return
	}
	keys, ok := mediaAttrs[n.DataAtom]
	if !ok {
		return
	}
	for i := range n.Attr {
		for _, key := range keys {
			if n.Attr[i].Key != key || n.Attr[i].Namespace != "" {
				continue
			}
			if v, ok := r.relocate(n.Attr[i].Val); ok {
				n.Attr[i].Val = v
			}
		}
	}
}

// relocate returns ref as seen from the output directory. A ?query or
// #fragment is carried over unchanged.
func (r *relocator) relocate(ref string) (string, bool) {
	if !isRelativePath(ref) {
		return "", false
	}
	p, suffix := ref, ""
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		p, suffix = ref[:i], ref[i:]
	}

	target := filepath.Join(r.from, filepath.FromSlash(p))
	if !within(target, r.from) {
		return "", false
	}
	rel, err := filepath.Rel(r.to, target)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel) + suffix, true
}

// isRelativePath reports whether ref points at a local file relative to the
// document: not empty, not an anchor, not absolute, not a URL.
func isRelativePath(ref string) bool {
	switch {
	case ref == "", strings.HasPrefix(ref, "#"), strings.HasPrefix(ref, "//"):
		return false
	case filepath.IsAbs(ref), strings.HasPrefix(ref, "/"):
		return false
	}
	u, err := url.Parse(ref)
	return err == nil && u.Scheme == ""
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// parseHTML parses a full document (leading doctype or <html>) or a body
// fragment. A document comes back as a single node; a fragment is parsed in
// body context so rendering it adds no <html><body> wrapper.
func parseHTML(content string) ([]*html.Node, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return []*html.Node{doc}, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(content), body)
}

func renderHTML(nodes []*html.Node) (string, error) {
	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
