package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/hugorg/internal/doctree"
)

func mustParse(t *testing.T, src string) *doctree.Document {
	t.Helper()
	doc, err := Parse([]byte(src), Options{})
	require.NoError(t, err)
	return doc
}

// plainText concatenates every RawText under n.
func plainText(n doctree.Node) string {
	var b strings.Builder
	for _, rt := range doctree.Find[*doctree.RawText](n) {
		b.WriteString(rt.Content)
	}
	return b.String()
}

func TestParse_HeadingAndParagraph(t *testing.T) {
	doc := mustParse(t, "# Post\n\nHello\n")

	children := doc.Children()
	require.Len(t, children, 2)
	h, ok := children[0].(*doctree.Heading)
	require.True(t, ok)
	require.Equal(t, 1, h.Level)
	require.Equal(t, "Post", plainText(h))
	p, ok := children[1].(*doctree.Paragraph)
	require.True(t, ok)
	require.Equal(t, "Hello", plainText(p))
}

func TestParse_Shortcodes(t *testing.T) {
	doc := mustParse(t, "{{< figure src=\"/img/a.png\" >}}\n\nSee [Home]({{< ref \"/index\" >}}) and [Up]({{< relref \"../up.md\" >}}).\n")

	figs := doctree.Find[*doctree.Figure](doc)
	require.Len(t, figs, 1)
	require.Equal(t, "/img/a.png", figs[0].Target)

	refs := doctree.Find[*doctree.CrossReference](doc)
	require.Len(t, refs, 1)
	require.Equal(t, "Home", refs[0].Title)
	require.Equal(t, "/index", refs[0].Target)

	rels := doctree.Find[*doctree.RelativeCrossReference](doc)
	require.Len(t, rels, 1)
	require.Equal(t, "Up", rels[0].Title)
	require.Equal(t, "../up.md", rels[0].Target)
}

func TestParse_MalformedFigureFallsBackToText(t *testing.T) {
	doc := mustParse(t, "{{< figure >}}\n")

	require.Empty(t, doctree.Find[*doctree.Figure](doc))
	require.Len(t, doc.Children(), 1)
	require.IsType(t, &doctree.Paragraph{}, doc.Children()[0])
	require.Equal(t, "{{< figure >}}", plainText(doc))
}

func TestParse_FencedCodeBlock(t *testing.T) {
	doc := mustParse(t, "```python\nprint(1)\n```\n")

	blocks := doctree.Find[*doctree.CodeBlock](doc)
	require.Len(t, blocks, 1)
	require.Equal(t, "python", blocks[0].Language)
	require.Equal(t, "print(1)\n", blocks[0].Literal)
}

func TestParse_IndentedCodeBlock(t *testing.T) {
	doc := mustParse(t, "    x := 1\n")

	blocks := doctree.Find[*doctree.CodeBlock](doc)
	require.Len(t, blocks, 1)
	require.Empty(t, blocks[0].Language)
	require.Equal(t, "x := 1\n", blocks[0].Literal)
}

func TestParse_EmphasisAndStrong(t *testing.T) {
	doc := mustParse(t, "*soft* and **loud**\n")

	em := doctree.Find[*doctree.Emphasis](doc)
	require.Len(t, em, 1)
	require.Equal(t, "soft", plainText(em[0]))
	strong := doctree.Find[*doctree.Strong](doc)
	require.Len(t, strong, 1)
	require.Equal(t, "loud", plainText(strong[0]))
}

func TestParse_InlineCodeKeepsBackslashes(t *testing.T) {
	doc := mustParse(t, "run `a\\*b`\n")

	codes := doctree.Find[*doctree.InlineCode](doc)
	require.Len(t, codes, 1)
	require.Equal(t, `a\*b`, plainText(codes[0]))
	require.Empty(t, doctree.Find[*doctree.EscapeSequence](doc))
}

func TestParse_NestedListIndent(t *testing.T) {
	doc := mustParse(t, "- a\n  - b\n- c\n")

	items := doctree.Find[*doctree.ListItem](doc)
	require.Len(t, items, 3)
	require.Equal(t, 0, items[0].Indent)
	require.Equal(t, 2, items[1].Indent)
	require.Equal(t, 0, items[2].Indent)

	lists := doctree.Find[*doctree.List](doc)
	require.False(t, lists[0].Ordered)
}

func TestParse_OrderedList(t *testing.T) {
	doc := mustParse(t, "3. three\n4. four\n")

	lists := doctree.Find[*doctree.List](doc)
	require.Len(t, lists, 1)
	require.True(t, lists[0].Ordered)
	require.Equal(t, 3, lists[0].Start)
}

func TestParse_EscapeSequence(t *testing.T) {
	doc := mustParse(t, "a \\* b\n")

	escapes := doctree.Find[*doctree.EscapeSequence](doc)
	require.Len(t, escapes, 1)
	require.Equal(t, "*", plainText(escapes[0]))
	require.Equal(t, "a * b", plainText(doc))
}

func TestParse_EntityReferences(t *testing.T) {
	doc := mustParse(t, "fish &amp; chips &#35;1\n")

	require.Equal(t, "fish & chips #1", plainText(doc))
}

func TestParse_LineBreaks(t *testing.T) {
	soft := doctree.Find[*doctree.LineBreak](mustParse(t, "a\nb\n"))
	require.Len(t, soft, 1)
	require.False(t, soft[0].Hard)

	hard := doctree.Find[*doctree.LineBreak](mustParse(t, "a\\\nb\n"))
	require.Len(t, hard, 1)
	require.True(t, hard[0].Hard)
}

func TestParse_LinksAndImages(t *testing.T) {
	doc := mustParse(t, "[Go](https://go.dev \"The Go site\") ![Logo](/img/logo.png) <https://example.com>\n")

	links := doctree.Find[*doctree.Link](doc)
	require.Len(t, links, 1)
	require.Equal(t, "https://go.dev", links[0].Target)
	require.Equal(t, "The Go site", links[0].Title)
	require.Equal(t, "Go", plainText(links[0]))

	images := doctree.Find[*doctree.Image](doc)
	require.Len(t, images, 1)
	require.Equal(t, "/img/logo.png", images[0].Target)
	require.Equal(t, "Logo", plainText(images[0]))

	autos := doctree.Find[*doctree.AutoLink](doc)
	require.Len(t, autos, 1)
	require.Equal(t, "https://example.com", autos[0].Target)
}

func TestParse_Table(t *testing.T) {
	doc := mustParse(t, "| a | b |\n|---|:-:|\n| 1 | 2 |\n")

	tables := doctree.Find[*doctree.Table](doc)
	require.Len(t, tables, 1)
	require.Equal(t, []doctree.Alignment{doctree.AlignNone, doctree.AlignCenter}, tables[0].Alignments)

	rows := doctree.Find[*doctree.TableRow](doc)
	require.Len(t, rows, 2)
	require.True(t, rows[0].Header)
	require.False(t, rows[1].Header)
	require.Len(t, rows[1].Children(), 2)
	require.Equal(t, "2", plainText(rows[1].Children()[1]))
}

func TestParse_TableIgnoredWithoutGFM(t *testing.T) {
	doc, err := Parse([]byte("| a | b |\n|---|---|\n"), Options{DisableGFM: true})
	require.NoError(t, err)

	require.Empty(t, doctree.Find[*doctree.Table](doc))
}

func TestParse_Strikethrough(t *testing.T) {
	doc := mustParse(t, "~~gone~~\n")

	s := doctree.Find[*doctree.Strikethrough](doc)
	require.Len(t, s, 1)
	require.Equal(t, "gone", plainText(s[0]))
}

func TestParse_TaskList(t *testing.T) {
	doc := mustParse(t, "- [x] done\n- [ ] todo\n")

	boxes := doctree.Find[*doctree.TaskCheckBox](doc)
	require.Len(t, boxes, 2)
	require.True(t, boxes[0].Checked)
	require.False(t, boxes[1].Checked)
}

func TestParse_HTML(t *testing.T) {
	doc := mustParse(t, "<div>\nhi\n</div>\n\npress <kbd>q</kbd>\n")

	blocks := doctree.Find[*doctree.HTMLBlock](doc)
	require.Len(t, blocks, 1)
	require.Equal(t, "<div>\nhi\n</div>\n", blocks[0].Literal)

	spans := doctree.Find[*doctree.HTMLSpan](doc)
	require.Len(t, spans, 2)
	require.Equal(t, "<kbd>", spans[0].Literal)
}

func TestParse_ThematicBreakAndQuote(t *testing.T) {
	doc := mustParse(t, "> quoted\n\n---\n")

	require.Len(t, doctree.Find[*doctree.Quote](doc), 1)
	require.Len(t, doctree.Find[*doctree.ThematicBreak](doc), 1)
}

var kindTestNode = gmast.NewNodeKind("TestNode")

type testNode struct{ gmast.BaseInline }

func (n *testNode) Kind() gmast.NodeKind          { return kindTestNode }
func (n *testNode) Dump(source []byte, level int) { gmast.DumpHelper(n, source, level, nil, nil) }

func TestConvert_UnsupportedNodeKind(t *testing.T) {
	root := gmast.NewDocument()
	para := gmast.NewParagraph()
	para.AppendChild(para, &testNode{})
	root.AppendChild(root, para)

	_, err := Convert(root, nil)

	require.ErrorIs(t, err, doctree.ErrUnsupportedNodeKind)
	var kindErr *doctree.UnsupportedNodeKindError
	require.ErrorAs(t, err, &kindErr)
	require.Equal(t, "TestNode", kindErr.Kind)
}

func TestConvert_RejectsNonDocumentRoot(t *testing.T) {
	_, err := Convert(gmast.NewParagraph(), nil)
	require.ErrorIs(t, err, doctree.ErrUnsupportedNodeKind)

	_, err = Convert(nil, nil)
	require.ErrorIs(t, err, doctree.ErrUnsupportedNodeKind)
}
