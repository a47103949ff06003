package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/hugorg/internal/doctree"
	"git.home.luguber.info/inful/hugorg/internal/shortcode"
)

// Options controls how a Markdown body is parsed.
type Options struct {
	// DisableGFM turns off tables, strikethrough, linkify and task lists,
	// leaving plain CommonMark plus the Hugo shortcodes.
	DisableGFM bool
}

func newMarkdown(opts Options) goldmark.Markdown {
	exts := []goldmark.Extender{shortcode.Extension}
	if !opts.DisableGFM {
		exts = append(exts, extension.Table, extension.Strikethrough, extension.Linkify, extension.TaskList)
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte, opts Options) (gmast.Node, error) {
	md := newMarkdown(opts)
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(parser.NewContext()))
	return root, nil
}

// Parse parses a Markdown body and converts it into a document tree.
func Parse(body []byte, opts Options) (*doctree.Document, error) {
	root, err := ParseBody(body, opts)
	if err != nil {
		return nil, err
	}
	return Convert(root, body)
}
