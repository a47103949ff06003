package shortcode

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Runs ahead of goldmark's LinkParser (200) so [t]({{< ref >}}) is not
// split into a failed link and plain text.
const parserPriority = 150

type figureParser struct{}

// NewFigureParser returns an inline parser for {{< figure >}}.
func NewFigureParser() parser.InlineParser { return figureParser{} }

func (figureParser) Trigger() []byte { return []byte{'{'} }

func (figureParser) Parse(_ gmast.Node, block text.Reader, _ parser.Context) gmast.Node {
	line, _ := block.PeekLine()
	target, n, ok := MatchFigure(line)
	if !ok {
		return nil
	}
	block.Advance(n)
	return NewFigure(target)
}

type refParser struct {
	name  string
	build func(title, target string) gmast.Node
}

// NewRefParser returns an inline parser for [title]({{< ref "target" >}}).
func NewRefParser() parser.InlineParser {
	return refParser{name: NameRef, build: func(title, target string) gmast.Node { return NewRef(title, target) }}
}

// NewRelRefParser returns an inline parser for [title]({{< relref "target" >}}).
func NewRelRefParser() parser.InlineParser {
	return refParser{name: NameRelRef, build: func(title, target string) gmast.Node { return NewRelRef(title, target) }}
}

func (refParser) Trigger() []byte { return []byte{'['} }

func (p refParser) Parse(_ gmast.Node, block text.Reader, _ parser.Context) gmast.Node {
	line, _ := block.PeekLine()
	title, target, n, ok := MatchRef(line, p.name)
	if !ok {
		return nil
	}
	block.Advance(n)
	return p.build(title, target)
}

type extension struct{}

// Extension registers the figure, ref and relref inline parsers.
var Extension goldmark.Extender = extension{}

func (extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewFigureParser(), parserPriority),
		util.Prioritized(NewRefParser(), parserPriority),
		util.Prioritized(NewRelRefParser(), parserPriority),
	))
}
