package shortcode

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func parse(t *testing.T, src string) gmast.Node {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(Extension))
	return md.Parser().Parse(text.NewReader([]byte(src)))
}

func collect(root gmast.Node) []gmast.Node {
	var out []gmast.Node
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.Kind() {
		case KindFigure, KindRef, KindRelRef:
			out = append(out, n)
		}
		return gmast.WalkContinue, nil
	})
	return out
}

func TestExtension_ParsesAllThreeShortcodes(t *testing.T) {
	src := "Look {{< figure src=\"/img/a.png\" >}} and [Home]({{< ref \"/index\" >}}) or [Next]({{< relref \"next.md\" >}}).\n"

	nodes := collect(parse(t, src))

	require.Len(t, nodes, 3)
	fig, ok := nodes[0].(*Figure)
	require.True(t, ok)
	require.Equal(t, "/img/a.png", fig.Target)

	ref, ok := nodes[1].(*Ref)
	require.True(t, ok)
	require.Equal(t, "Home", ref.Title)
	require.Equal(t, "/index", ref.Target)

	rel, ok := nodes[2].(*RelRef)
	require.True(t, ok)
	require.Equal(t, "Next", rel.Title)
	require.Equal(t, "next.md", rel.Target)
}

func TestExtension_MalformedFigureFallsBack(t *testing.T) {
	root := parse(t, "{{< figure >}}\n")

	require.Empty(t, collect(root))
	para := root.FirstChild()
	require.NotNil(t, para)
	require.Equal(t, gmast.KindParagraph, para.Kind())
}

func TestExtension_PlainLinksStayLinks(t *testing.T) {
	root := parse(t, "[Home](/index)\n")

	require.Empty(t, collect(root))
	link := root.FirstChild().FirstChild()
	require.Equal(t, gmast.KindLink, link.Kind())
	require.Equal(t, "/index", string(link.(*gmast.Link).Destination))
}
