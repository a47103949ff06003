package markdown

import (
	"bytes"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/hugorg/internal/doctree"
	"git.home.luguber.info/inful/hugorg/internal/shortcode"
)

// listIndent is the number of spaces each nesting level adds before a list marker.
const listIndent = 2

// Convert maps a Goldmark AST onto the document tree. source is the buffer
// root was parsed from.
//
// Goldmark node kinds without a mapping fail with *doctree.UnsupportedNodeKindError.
func Convert(root gmast.Node, source []byte) (*doctree.Document, error) {
	if root == nil || root.Kind() != gmast.KindDocument {
		kind := "<nil>"
		if root != nil {
			kind = root.Kind().String()
		}
		return nil, &doctree.UnsupportedNodeKindError{Kind: kind}
	}
	c := &converter{source: source}
	children, err := c.children(root)
	if err != nil {
		return nil, err
	}
	return doctree.NewDocument(children...), nil
}

type converter struct {
	source []byte
	// listDepth counts the list items enclosing the node being converted.
	listDepth int
}

func (c *converter) children(n gmast.Node) ([]doctree.Node, error) {
	var out []doctree.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		nodes, err := c.convert(child)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (c *converter) convert(n gmast.Node) ([]doctree.Node, error) {
	switch node := n.(type) {
	case *gmast.Text:
		return c.text(node), nil
	case *gmast.String:
		return []doctree.Node{doctree.NewRawText(string(node.Value))}, nil
	case *gmast.CodeSpan:
		return one(doctree.NewInlineCode(doctree.NewRawText(c.codeSpan(node)))), nil
	case *gmast.RawHTML:
		return one(doctree.NewHTMLSpan(c.segments(node.Segments))), nil
	case *gmast.AutoLink:
		return one(doctree.NewAutoLink(string(node.URL(c.source)), doctree.NewRawText(string(node.Label(c.source))))), nil
	case *gmast.FencedCodeBlock:
		return one(doctree.NewCodeBlock(string(node.Language(c.source)), c.lines(node.Lines()))), nil
	case *gmast.CodeBlock:
		return one(doctree.NewCodeBlock("", c.lines(node.Lines()))), nil
	case *gmast.HTMLBlock:
		literal := c.lines(node.Lines())
		if node.HasClosure() {
			literal += string(node.ClosureLine.Value(c.source))
		}
		return one(doctree.NewHTMLBlock(literal)), nil
	case *gmast.ThematicBreak:
		return one(doctree.NewThematicBreak()), nil
	case *extast.TaskCheckBox:
		return one(doctree.NewTaskCheckBox(node.IsChecked)), nil
	case *shortcode.Figure:
		return one(doctree.NewFigure(node.Target)), nil
	case *shortcode.Ref:
		return one(doctree.NewCrossReference(node.Title, node.Target)), nil
	case *shortcode.RelRef:
		return one(doctree.NewRelativeCrossReference(node.Title, node.Target)), nil
	case *gmast.ListItem:
		c.listDepth++
		children, err := c.children(node)
		c.listDepth--
		if err != nil {
			return nil, err
		}
		return one(doctree.NewListItem(c.listDepth*listIndent, children...)), nil
	}

	children, err := c.children(n)
	if err != nil {
		return nil, err
	}

	switch node := n.(type) {
	case *gmast.Heading:
		return one(doctree.NewHeading(node.Level, children...)), nil
	case *gmast.Paragraph, *gmast.TextBlock:
		return one(doctree.NewParagraph(children...)), nil
	case *gmast.Blockquote:
		return one(doctree.NewQuote(children...)), nil
	case *gmast.List:
		return one(doctree.NewList(node.IsOrdered(), node.Start, children...)), nil
	case *gmast.Emphasis:
		if node.Level >= 2 {
			return one(doctree.NewStrong(children...)), nil
		}
		return one(doctree.NewEmphasis(children...)), nil
	case *gmast.Link:
		return one(doctree.NewLink(string(node.Destination), string(node.Title), children...)), nil
	case *gmast.Image:
		return one(doctree.NewImage(string(node.Destination), string(node.Title), children...)), nil
	case *extast.Strikethrough:
		return one(doctree.NewStrikethrough(children...)), nil
	case *extast.Table:
		return one(doctree.NewTable(alignments(node.Alignments), children...)), nil
	case *extast.TableHeader:
		return one(doctree.NewTableRow(true, children...)), nil
	case *extast.TableRow:
		return one(doctree.NewTableRow(false, children...)), nil
	case *extast.TableCell:
		return one(doctree.NewTableCell(alignment(node.Alignment), children...)), nil
	default:
		return nil, &doctree.UnsupportedNodeKindError{Kind: n.Kind().String()}
	}
}

// text splits a Text segment into literal runs and backslash escapes, then
// appends the line break Goldmark recorded on it.
func (c *converter) text(n *gmast.Text) []doctree.Node {
	value := n.Segment.Value(c.source)
	var out []doctree.Node
	if n.IsRaw() {
		out = append(out, doctree.NewRawText(string(value)))
	} else {
		out = splitEscapes(value)
	}
	switch {
	case n.HardLineBreak():
		out = append(out, doctree.NewLineBreak(true))
	case n.SoftLineBreak():
		out = append(out, doctree.NewLineBreak(false))
	}
	return out
}

func splitEscapes(value []byte) []doctree.Node {
	var out []doctree.Node
	var plain []byte
	flush := func() {
		if len(plain) > 0 {
			out = append(out, doctree.NewRawText(string(util.ResolveEntityNames(util.ResolveNumericReferences(plain)))))
			plain = nil
		}
	}
	for i := 0; i < len(value); i++ {
		if value[i] == '\\' && i+1 < len(value) && util.IsPunct(value[i+1]) {
			flush()
			out = append(out, doctree.NewEscapeSequence(doctree.NewRawText(string(value[i+1]))))
			i++
			continue
		}
		plain = append(plain, value[i])
	}
	flush()
	return out
}

func (c *converter) codeSpan(n *gmast.CodeSpan) string {
	var b bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(c.source))
		case *gmast.String:
			b.Write(t.Value)
		}
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}

func (c *converter) lines(lines *text.Segments) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.WriteString(strings.Repeat(" ", seg.Padding))
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

func (c *converter) segments(segs *text.Segments) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

func alignments(in []extast.Alignment) []doctree.Alignment {
	out := make([]doctree.Alignment, len(in))
	for i, a := range in {
		out[i] = alignment(a)
	}
	return out
}

func alignment(a extast.Alignment) doctree.Alignment {
	switch a {
	case extast.AlignLeft:
		return doctree.AlignLeft
	case extast.AlignCenter:
		return doctree.AlignCenter
	case extast.AlignRight:
		return doctree.AlignRight
	default:
		return doctree.AlignNone
	}
}

func one(n doctree.Node) []doctree.Node { return []doctree.Node{n} }
