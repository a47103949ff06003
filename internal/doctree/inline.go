package doctree

// RawText is literal text.
type RawText struct {
	leaf
	inline
	Content string
}

func NewRawText(content string) *RawText { return &RawText{Content: content} }

func (*RawText) Kind() Kind { return KindRawText }

type Strong struct {
	container
	inline
}

func NewStrong(children ...Node) *Strong {
	s := &Strong{}
	s.Append(children...)
	return s
}

func (*Strong) Kind() Kind { return KindStrong }

type Emphasis struct {
	container
	inline
}

func NewEmphasis(children ...Node) *Emphasis {
	e := &Emphasis{}
	e.Append(children...)
	return e
}

func (*Emphasis) Kind() Kind { return KindEmphasis }

type InlineCode struct {
	container
	inline
}

func NewInlineCode(children ...Node) *InlineCode {
	c := &InlineCode{}
	c.Append(children...)
	return c
}

func (*InlineCode) Kind() Kind { return KindInlineCode }

type Strikethrough struct {
	container
	inline
}

func NewStrikethrough(children ...Node) *Strikethrough {
	s := &Strikethrough{}
	s.Append(children...)
	return s
}

func (*Strikethrough) Kind() Kind { return KindStrikethrough }

// Image children are the alt text.
type Image struct {
	container
	inline
	Target string
	Title  string
}

func NewImage(target, title string, alt ...Node) *Image {
	i := &Image{Target: target, Title: title}
	i.Append(alt...)
	return i
}

func (*Image) Kind() Kind { return KindImage }

// Link children are the link text.
type Link struct {
	container
	inline
	Target string
	Title  string
}

func NewLink(target, title string, children ...Node) *Link {
	l := &Link{Target: target, Title: title}
	l.Append(children...)
	return l
}

func (*Link) Kind() Kind { return KindLink }

// AutoLink is a bare or angle-bracketed URL. Its children are the label.
type AutoLink struct {
	container
	inline
	Target string
}

func NewAutoLink(target string, children ...Node) *AutoLink {
	a := &AutoLink{Target: target}
	a.Append(children...)
	return a
}

func (*AutoLink) Kind() Kind { return KindAutoLink }

// EscapeSequence wraps a backslash-escaped character. The backslash itself
// is not part of the tree.
type EscapeSequence struct {
	container
	inline
}

func NewEscapeSequence(children ...Node) *EscapeSequence {
	e := &EscapeSequence{}
	e.Append(children...)
	return e
}

func (*EscapeSequence) Kind() Kind { return KindEscapeSequence }

type LineBreak struct {
	leaf
	inline
	Hard bool
}

func NewLineBreak(hard bool) *LineBreak { return &LineBreak{Hard: hard} }

func (*LineBreak) Kind() Kind { return KindLineBreak }

// HTMLSpan is inline raw HTML, kept verbatim.
type HTMLSpan struct {
	leaf
	inline
	Literal string
}

func NewHTMLSpan(literal string) *HTMLSpan { return &HTMLSpan{Literal: literal} }

func (*HTMLSpan) Kind() Kind { return KindHTMLSpan }

// TaskCheckBox is the [ ] / [x] marker at the start of a task list item.
type TaskCheckBox struct {
	leaf
	inline
	Checked bool
}

func NewTaskCheckBox(checked bool) *TaskCheckBox { return &TaskCheckBox{Checked: checked} }

func (*TaskCheckBox) Kind() Kind { return KindTaskCheckBox }

// Figure is a {{< figure src="..." >}} shortcode.
type Figure struct {
	leaf
	inline
	Target string
}

func NewFigure(target string) *Figure { return &Figure{Target: target} }

func (*Figure) Kind() Kind { return KindFigure }

// CrossReference is a link whose destination is a {{< ref >}} shortcode.
type CrossReference struct {
	leaf
	inline
	Title  string
	Target string
}

func NewCrossReference(title, target string) *CrossReference {
	return &CrossReference{Title: title, Target: target}
}

func (*CrossReference) Kind() Kind { return KindCrossReference }

// RelativeCrossReference is a link whose destination is a {{< relref >}} shortcode.
type RelativeCrossReference struct {
	leaf
	inline
	Title  string
	Target string
}

func NewRelativeCrossReference(title, target string) *RelativeCrossReference {
	return &RelativeCrossReference{Title: title, Target: target}
}

func (*RelativeCrossReference) Kind() Kind { return KindRelativeCrossReference }
