package doctree

// Document is the tree root.
type Document struct {
	container
	block
}

func NewDocument(children ...Node) *Document {
	d := &Document{}
	d.Append(children...)
	return d
}

func (*Document) Kind() Kind { return KindDocument }

// Heading is an ATX or setext heading. Level is 1 to 6.
type Heading struct {
	container
	block
	Level int
}

func NewHeading(level int, children ...Node) *Heading {
	h := &Heading{Level: level}
	h.Append(children...)
	return h
}

func (*Heading) Kind() Kind { return KindHeading }

type Paragraph struct {
	container
	block
}

func NewParagraph(children ...Node) *Paragraph {
	p := &Paragraph{}
	p.Append(children...)
	return p
}

func (*Paragraph) Kind() Kind { return KindParagraph }

type Quote struct {
	container
	block
}

func NewQuote(children ...Node) *Quote {
	q := &Quote{}
	q.Append(children...)
	return q
}

func (*Quote) Kind() Kind { return KindQuote }

// List holds ListItems. Start is the first number of an ordered list.
type List struct {
	container
	block
	Ordered bool
	Start   int
}

func NewList(ordered bool, start int, items ...Node) *List {
	l := &List{Ordered: ordered, Start: start}
	l.Append(items...)
	return l
}

func (*List) Kind() Kind { return KindList }

// ListItem is one list entry. Indent is the number of leading spaces
// before its marker.
type ListItem struct {
	container
	block
	Indent int
}

func NewListItem(indent int, children ...Node) *ListItem {
	li := &ListItem{Indent: indent}
	li.Append(children...)
	return li
}

func (*ListItem) Kind() Kind { return KindListItem }

type Table struct {
	container
	block
	Alignments []Alignment
}

func NewTable(alignments []Alignment, rows ...Node) *Table {
	t := &Table{Alignments: alignments}
	t.Append(rows...)
	return t
}

func (*Table) Kind() Kind { return KindTable }

// TableRow is a table row. Header marks the heading row.
type TableRow struct {
	container
	block
	Header bool
}

func NewTableRow(header bool, cells ...Node) *TableRow {
	r := &TableRow{Header: header}
	r.Append(cells...)
	return r
}

func (*TableRow) Kind() Kind { return KindTableRow }

type TableCell struct {
	container
	block
	Align Alignment
}

func NewTableCell(align Alignment, children ...Node) *TableCell {
	c := &TableCell{Align: align}
	c.Append(children...)
	return c
}

func (*TableCell) Kind() Kind { return KindTableCell }

// CodeBlock is a fenced or indented code block. Language is empty for
// indented blocks and fences without an info string.
type CodeBlock struct {
	leaf
	block
	Language string
	Literal  string
}

func NewCodeBlock(language, literal string) *CodeBlock {
	return &CodeBlock{Language: language, Literal: literal}
}

func (*CodeBlock) Kind() Kind { return KindCodeBlock }

type ThematicBreak struct {
	container
	block
}

func NewThematicBreak() *ThematicBreak { return &ThematicBreak{} }

func (*ThematicBreak) Kind() Kind { return KindThematicBreak }

// HTMLBlock is raw HTML at block level, kept verbatim.
type HTMLBlock struct {
	leaf
	block
	Literal string
}

func NewHTMLBlock(literal string) *HTMLBlock { return &HTMLBlock{Literal: literal} }

func (*HTMLBlock) Kind() Kind { return KindHTMLBlock }
