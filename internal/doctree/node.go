package doctree

// Kind names a node kind. The names are stable and used in errors and logs.
type Kind string

const (
	KindDocument      Kind = "Document"
	KindHeading       Kind = "Heading"
	KindParagraph     Kind = "Paragraph"
	KindQuote         Kind = "Quote"
	KindList          Kind = "List"
	KindListItem      Kind = "ListItem"
	KindTable         Kind = "Table"
	KindTableRow      Kind = "TableRow"
	KindTableCell     Kind = "TableCell"
	KindCodeBlock     Kind = "CodeBlock"
	KindThematicBreak Kind = "ThematicBreak"
	KindHTMLBlock     Kind = "HTMLBlock"

	KindRawText                Kind = "RawText"
	KindStrong                 Kind = "Strong"
	KindEmphasis               Kind = "Emphasis"
	KindInlineCode             Kind = "InlineCode"
	KindStrikethrough          Kind = "Strikethrough"
	KindImage                  Kind = "Image"
	KindLink                   Kind = "Link"
	KindAutoLink               Kind = "AutoLink"
	KindEscapeSequence         Kind = "EscapeSequence"
	KindLineBreak              Kind = "LineBreak"
	KindHTMLSpan               Kind = "HTMLSpan"
	KindTaskCheckBox           Kind = "TaskCheckBox"
	KindFigure                 Kind = "Figure"
	KindCrossReference         Kind = "CrossReference"
	KindRelativeCrossReference Kind = "RelativeCrossReference"
)

// Node is a document tree node.
type Node interface {
	Kind() Kind
	Children() []Node
	// IsBlock reports whether the node is block-level.
	IsBlock() bool
	sealed()
}

type container struct {
	children []Node
}

func (c *container) Children() []Node { return c.children }

// Append adds children in order.
func (c *container) Append(children ...Node) {
	c.children = append(c.children, children...)
}

func (*container) sealed() {}

type leaf struct{}

func (leaf) Children() []Node { return nil }
func (leaf) sealed()          {}

type block struct{}

func (block) IsBlock() bool { return true }

type inline struct{}

func (inline) IsBlock() bool { return false }

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Walk visits n and its descendants in document order. Returning false
// from fn skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Find returns every node of type T under root, in document order.
func Find[T Node](root Node) []T {
	var out []T
	Walk(root, func(n Node) bool {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}
