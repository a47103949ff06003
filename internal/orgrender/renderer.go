package orgrender

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/hugorg/internal/doctree"
	"git.home.luguber.info/inful/hugorg/internal/metadata"
)

const blockSeparator = "\n\n"

// Renderer renders document trees for one document's metadata.
type Renderer struct {
	meta      metadata.Metadata
	extraKeys []string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithExtraKeys appends a #+key: value preamble line for each listed
// metadata key that is present, after title, date and author.
func WithExtraKeys(keys ...string) Option {
	return func(r *Renderer) {
		r.extraKeys = append(r.extraKeys, keys...)
	}
}

// New returns a Renderer for meta.
func New(meta metadata.Metadata, opts ...Option) *Renderer {
	r := &Renderer{meta: meta}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the Org text for doc: the preamble followed by the body.
//
// A node kind without a rendering rule fails with *doctree.UnsupportedNodeKindError.
func (r *Renderer) Render(doc *doctree.Document) (string, error) {
	if doc == nil {
		return "", &doctree.UnsupportedNodeKindError{Kind: "<nil>"}
	}
	return r.RenderNode(doc)
}

// RenderNode renders a single node and its descendants. Rendering a
// Document includes the preamble.
func (r *Renderer) RenderNode(n doctree.Node) (string, error) {
	var b strings.Builder
	if err := r.render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) render(b *strings.Builder, n doctree.Node) error {
	switch node := n.(type) {
	case *doctree.Document:
		b.WriteString(r.Preamble())
		return r.renderChildren(b, node)

	case *doctree.Heading:
		content, err := r.inner(node)
		if err != nil {
			return err
		}
		b.WriteString(strings.Repeat("*", clampLevel(node.Level)))
		b.WriteByte(' ')
		b.WriteString(trimNewlines(content))
		b.WriteString(blockSeparator)

	case *doctree.Paragraph:
		content, err := r.inner(node)
		if err != nil {
			return err
		}
		if content = trimNewlines(content); content != "" {
			b.WriteString(escapeHeadlines(content))
			b.WriteString(blockSeparator)
		}

	case *doctree.CodeBlock:
		b.WriteString("#+begin_src")
		if lang := strings.TrimSpace(node.Language); lang != "" {
			b.WriteByte(' ')
			b.WriteString(lang)
		}
		b.WriteByte('\n')
		b.WriteString(escapeBlockLines(terminated(node.Literal)))
		b.WriteString("#+end_src")
		b.WriteString(blockSeparator)

	case *doctree.HTMLBlock:
		b.WriteString("#+begin_export html\n")
		b.WriteString(escapeBlockLines(terminated(node.Literal)))
		b.WriteString("#+end_export")
		b.WriteString(blockSeparator)

	case *doctree.ThematicBreak:
		if err := r.renderChildren(b, node); err != nil {
			return err
		}
		b.WriteString("-----")
		b.WriteString(blockSeparator)

	case *doctree.List:
		for i, child := range node.Children() {
			item, ok := child.(*doctree.ListItem)
			if !ok {
				if err := r.render(b, child); err != nil {
					return err
				}
				continue
			}
			marker := "- "
			if node.Ordered {
				marker = strconv.Itoa(node.Start+i) + ". "
			}
			if err := r.renderListItem(b, item, marker); err != nil {
				return err
			}
		}

	case *doctree.ListItem:
		return r.renderListItem(b, node, "- ")

	case *doctree.Table:
		return r.renderTable(b, node)

	case *doctree.TableRow:
		return r.renderTableRow(b, node)

	case *doctree.Quote, *doctree.TableCell, *doctree.Emphasis, *doctree.Strikethrough, *doctree.EscapeSequence:
		return r.renderChildren(b, node)

	case *doctree.RawText:
		b.WriteString(node.Content)

	case *doctree.Strong:
		return r.wrap(b, node, "*")

	case *doctree.InlineCode:
		return r.wrap(b, node, "=")

	case *doctree.Link:
		return r.renderLink(b, node.Target, node)

	case *doctree.AutoLink:
		return r.renderLink(b, node.Target, node)

	case *doctree.Image:
		writeLink(b, node.Target, "")

	case *doctree.Figure:
		writeLink(b, node.Target, "")

	case *doctree.CrossReference:
		writeLink(b, node.Target, node.Title)

	case *doctree.RelativeCrossReference:
		writeLink(b, node.Target, node.Title)

	case *doctree.LineBreak:
		if node.Hard {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}

	case *doctree.HTMLSpan:
		b.WriteString("@@html:")
		b.WriteString(node.Literal)
		b.WriteString("@@")

	case *doctree.TaskCheckBox:
		if node.Checked {
			b.WriteString("[X] ")
		} else {
			b.WriteString("[ ] ")
		}

	case nil:
		return &doctree.UnsupportedNodeKindError{Kind: "<nil>"}

	default:
		return &doctree.UnsupportedNodeKindError{Kind: string(n.Kind())}
	}
	return nil
}

func (r *Renderer) renderChildren(b *strings.Builder, n doctree.Node) error {
	for _, child := range n.Children() {
		if err := r.render(b, child); err != nil {
			return err
		}
	}
	return nil
}

// inner renders n's children into a fresh string.
func (r *Renderer) inner(n doctree.Node) (string, error) {
	var b strings.Builder
	if err := r.renderChildren(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) wrap(b *strings.Builder, n doctree.Node, delim string) error {
	content, err := r.inner(n)
	if err != nil {
		return err
	}
	b.WriteString(delim)
	b.WriteString(content)
	b.WriteString(delim)
	return nil
}

// renderListItem writes the marker followed by the item's first block.
// Later blocks and wrapped lines are indented past the marker so Org keeps
// them inside the item. Nested lists carry their own indent.
func (r *Renderer) renderListItem(b *strings.Builder, item *doctree.ListItem, marker string) error {
	indent := max(item.Indent, 0)
	pad := strings.Repeat(" ", indent+len(marker))
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString(marker)

	written := false
	for _, child := range item.Children() {
		var cb strings.Builder
		if err := r.render(&cb, child); err != nil {
			return err
		}
		content := cb.String()
		if content == "" {
			continue
		}
		if _, nested := child.(*doctree.List); nested {
			if !written {
				b.WriteByte('\n')
			}
			b.WriteString(content)
		} else {
			b.WriteString(indentLines(content, pad, !written))
		}
		written = true
	}
	if !written {
		b.WriteByte('\n')
	}
	return nil
}

// indentLines prefixes every non-blank line of s with pad, leaving the
// first line alone when skipFirst is set.
func indentLines(s, pad string, skipFirst bool) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for i, line := range lines {
		if (i > 0 || !skipFirst) && strings.TrimSpace(line) != "" {
			b.WriteString(pad)
		}
		b.WriteString(line)
	}
	return b.String()
}

func (r *Renderer) renderLink(b *strings.Builder, target string, n doctree.Node) error {
	title, err := r.inner(n)
	if err != nil {
		return err
	}
	writeLink(b, target, title)
	return nil
}

// writeLink writes [[target][title]], or [[target]] when title is empty.
func writeLink(b *strings.Builder, target, title string) {
	b.WriteString("[[")
	b.WriteString(target)
	if title != "" {
		b.WriteString("][")
		b.WriteString(title)
	}
	b.WriteString("]]")
}

func clampLevel(level int) int {
	return min(max(level, 1), 6)
}

func trimNewlines(s string) string {
	return strings.TrimRight(s, "\n")
}

// terminated returns s with a trailing newline unless s is empty.
func terminated(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// escapeBlockLines comma-quotes lines inside a block that Org would
// otherwise read as a headline or a #+ keyword such as #+end_src.
func escapeBlockLines(s string) string {
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		lead := len(line) - len(strings.TrimLeft(line, " \t"))
		body := strings.TrimLeft(line[lead:], ",")
		if strings.HasPrefix(body, "*") || strings.HasPrefix(body, "#+") {
			lines[i] = line[:lead] + "," + line[lead:]
		}
	}
	return strings.Join(lines, "")
}

// escapeHeadlines replaces the first star of any paragraph line that Org
// would parse as a headline.
func escapeHeadlines(s string) string {
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		if isHeadline(line) {
			lines[i] = `\ast{}` + line[1:]
		}
	}
	return strings.Join(lines, "")
}

func isHeadline(line string) bool {
	rest := strings.TrimLeft(line, "*")
	if len(rest) == len(line) {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n'
}
