package shortcode

import (
	gmast "github.com/yuin/goldmark/ast"
)

// Node kinds registered with goldmark.
var (
	KindFigure = gmast.NewNodeKind("Figure")
	KindRef    = gmast.NewNodeKind("Ref")
	KindRelRef = gmast.NewNodeKind("RelRef")
)

// Figure is a parsed {{< figure >}} shortcode.
type Figure struct {
	gmast.BaseInline
	Target string
}

func NewFigure(target string) *Figure { return &Figure{Target: target} }

func (n *Figure) Kind() gmast.NodeKind { return KindFigure }

func (n *Figure) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"Target": n.Target}, nil)
}

type reference struct {
	gmast.BaseInline
	// Title is the link text exactly as written in the source.
	Title  string
	Target string
}

func (n *reference) dump(node gmast.Node, source []byte, level int) {
	gmast.DumpHelper(node, source, level, map[string]string{"Title": n.Title, "Target": n.Target}, nil)
}

// Ref is a Markdown link whose destination is {{< ref >}}.
type Ref struct{ reference }

func NewRef(title, target string) *Ref {
	return &Ref{reference{Title: title, Target: target}}
}

func (n *Ref) Kind() gmast.NodeKind { return KindRef }

func (n *Ref) Dump(source []byte, level int) { n.dump(n, source, level) }

// RelRef is a Markdown link whose destination is {{< relref >}}.
type RelRef struct{ reference }

func NewRelRef(title, target string) *RelRef {
	return &RelRef{reference{Title: title, Target: target}}
}

func (n *RelRef) Kind() gmast.NodeKind { return KindRelRef }

func (n *RelRef) Dump(source []byte, level int) { n.dump(n, source, level) }
