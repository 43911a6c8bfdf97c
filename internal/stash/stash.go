// Package stash reads copy controls and their hidden source stashes back
// out of rendered HTML.
package stash

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/qblog/go-mdrender/internal/fence"
)

// ErrParse indicates the markup could not be tokenized.
var ErrParse = errors.New("stash: parse markup")

// Control is one copy button found in the markup.
type Control struct {
	ID   string
	Lang string
}

// Index maps block identifiers to their unescaped source text.
type Index struct {
	stashes  map[string]string
	controls []Control
}

// Parse tokenizes markup and indexes every stash and copy control.
// The tokenizer is used rather than the tree parser so the leading newline
// of a textarea body is kept.
func Parse(r io.Reader) (*Index, error) {
	ix := &Index{stashes: make(map[string]string)}
	z := html.NewTokenizer(r)

	var (
		lang    string
		current string
		body    strings.Builder
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return ix, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrParse, z.Err())

		case html.StartTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Div:
				if hasClass(tok, fence.WrapperClass) {
					lang = attr(tok, "data-lang")
				}
			case atom.Button:
				if hasClass(tok, fence.ButtonClass) {
					ix.controls = append(ix.controls, Control{ID: attr(tok, fence.ButtonIDAttr), Lang: lang})
				}
			case atom.Textarea:
				if hasClass(tok, fence.StashClass) {
					current = attr(tok, "id")
					body.Reset()
				}
			}

		case html.TextToken:
			if current != "" {
				body.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if current != "" && string(name) == "textarea" {
				if _, dup := ix.stashes[current]; !dup {
					ix.stashes[current] = body.String()
				}
				current = ""
			}
		}
	}
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Index, error) {
	return Parse(strings.NewReader(markup))
}

// Lookup returns the stashed source for id. The first stash wins when ids
// repeat.
func (ix *Index) Lookup(id string) (string, bool) {
	s, ok := ix.stashes[id]
	return s, ok
}

// Controls returns the copy controls in document order.
func (ix *Index) Controls() []Control {
	return slices.Clone(ix.controls)
}

// Len returns the number of indexed stashes.
func (ix *Index) Len() int {
	return len(ix.stashes)
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(tok html.Token, class string) bool {
	return slices.Contains(strings.Fields(attr(tok, "class")), class)
}
