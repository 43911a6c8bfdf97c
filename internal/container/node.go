// Package container implements admonition blocks:
//
//	:::tip Optional title
//	Body text, parsed as inline Markdown only.
//	:::
//
// Supported types are tip, warning, danger and info. An opener without a
// matching closing line is not a container; its text is left to the
// paragraph parser.
package container

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yuin/goldmark/ast"
)

// Kind is the node kind of a container block.
var Kind = ast.NewNodeKind("Container")

// Type names a container flavor.
type Type string

// Container types.
const (
	Tip     Type = "tip"
	Warning Type = "warning"
	Danger  Type = "danger"
	Info    Type = "info"
)

// Types lists every container type in registration order.
var Types = []Type{Tip, Warning, Danger, Info}

type style struct {
	icon  string
	color string
}

var styles = map[Type]style{
	Tip:     {icon: tipIcon, color: "#42b983"},
	Warning: {icon: warningIcon, color: "#e7c000"},
	Danger:  {icon: dangerIcon, color: "#cc0000"},
	Info:    {icon: infoIcon, color: "#3b82f6"},
}

var upper = cases.Upper(language.Und)

// DefaultTitle is the title used when the opener does not supply one.
func DefaultTitle(t Type) string {
	return upper.String(string(t))
}

// Node is a container block. Its inline children are the parsed body.
type Node struct {
	ast.BaseBlock
	Flavor Type
	Title  string
	Icon   string // SVG markup, trusted
	Color  string
}

var _ ast.Node = (*Node)(nil)

// NewNode returns a container of type t. An empty title falls back to
// DefaultTitle.
func NewNode(t Type, title string) *Node {
	if title == "" {
		title = DefaultTitle(t)
	}
	s := styles[t]
	return &Node{
		Flavor: t,
		Title:  title,
		Icon:   s.icon,
		Color:  s.color,
	}
}

// Kind implements ast.Node.
func (n *Node) Kind() ast.NodeKind {
	return Kind
}

// Dump implements ast.Node.
func (n *Node) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Flavor": string(n.Flavor),
		"Title":  n.Title,
		"Color":  n.Color,
	}, nil)
}
