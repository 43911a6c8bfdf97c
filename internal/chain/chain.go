// Package chain composes goldmark node render functions into ordered
// middleware stacks, one stack per node kind.
//
// Several extensions can share one extension point (for example the fenced
// code block kind). Each installs a Middleware that receives the handler
// installed before it as next. The last installed middleware is the
// outermost one: it sees the node first and its output wraps whatever it
// delegates to. Installation order is therefore observable in the output.
package chain

import (
	"bufio"
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Priority places the Composer ahead of goldmark's html renderer (1000) and
// goldmark-highlighting (200).
const Priority = 50

// Handler renders one visit of a node.
type Handler = renderer.NodeRendererFunc

// Middleware wraps the previously installed handler of an extension point.
type Middleware func(next Handler) Handler

// Composer collects base handlers and middleware per node kind and registers
// the composed result with goldmark. It is not safe for concurrent
// installation; build it once, then hand it to goldmark.
type Composer struct {
	base  map[ast.NodeKind]Handler
	stack map[ast.NodeKind][]Middleware
	kinds []ast.NodeKind
}

// New creates an empty Composer.
func New() *Composer {
	return &Composer{
		base:  make(map[ast.NodeKind]Handler),
		stack: make(map[ast.NodeKind][]Middleware),
	}
}

// Fallback captures the render functions of stock node renderers as base
// handlers. Renderers passed later override earlier ones for the same kind.
func (c *Composer) Fallback(nodeRenderers ...renderer.NodeRenderer) {
	for _, nr := range nodeRenderers {
		nr.RegisterFuncs(registerFunc(c.SetBase))
	}
}

// SetBase sets the innermost handler for kind.
func (c *Composer) SetBase(kind ast.NodeKind, h Handler) {
	c.track(kind)
	c.base[kind] = h
}

// Install appends mw to the stack of kind. It becomes the outermost handler.
func (c *Composer) Install(kind ast.NodeKind, mw Middleware) {
	c.track(kind)
	c.stack[kind] = append(c.stack[kind], mw)
}

// Handler resolves the composed handler for kind. Kinds without a base
// handler start from passThrough, which renders nothing itself and lets the
// walker visit children.
func (c *Composer) Handler(kind ast.NodeKind) Handler {
	h, ok := c.base[kind]
	if !ok {
		h = passThrough
	}
	for _, mw := range c.stack[kind] {
		h = mw(h)
	}
	return h
}

// Kinds returns every kind the Composer handles, in first-seen order.
func (c *Composer) Kinds() []ast.NodeKind {
	out := make([]ast.NodeKind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// Depth returns how many middleware are installed for kind.
func (c *Composer) Depth(kind ast.NodeKind) int {
	return len(c.stack[kind])
}

// RegisterFuncs implements renderer.NodeRenderer.
func (c *Composer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	for _, kind := range c.kinds {
		reg.Register(kind, c.Handler(kind))
	}
}

func (c *Composer) track(kind ast.NodeKind) {
	if _, seen := c.base[kind]; seen {
		return
	}
	if _, seen := c.stack[kind]; seen {
		return
	}
	c.kinds = append(c.kinds, kind)
}

func passThrough(util.BufWriter, []byte, ast.Node, bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

// registerFunc adapts a function to renderer.NodeRendererFuncRegisterer.
type registerFunc func(ast.NodeKind, Handler)

func (f registerFunc) Register(kind ast.NodeKind, h renderer.NodeRendererFunc) {
	f(kind, h)
}

// Capture runs both visits of a leaf node through h and returns what h
// wrote. Children are not walked, so Capture suits fenced and indented code
// blocks but not containers.
func Capture(h Handler, source []byte, n ast.Node) ([]byte, error) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	status, err := h(w, source, n, true)
	if err != nil {
		return nil, err
	}
	if status != ast.WalkStop {
		if _, err := h(w, source, n, false); err != nil {
			return nil, err
		}
	}

	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
