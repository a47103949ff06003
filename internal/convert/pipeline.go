package convert

import (
	"git.home.luguber.info/inful/hugorg/internal/docmodel"
	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
	"git.home.luguber.info/inful/hugorg/internal/markdown"
	"git.home.luguber.info/inful/hugorg/internal/orgrender"
)

// RenderOptions are the settings that shape a document's Org output.
type RenderOptions struct {
	Markdown  markdown.Options
	ExtraKeys []string
}

// Render converts one parsed document to Org text.
func Render(doc *docmodel.ParsedDoc, opts RenderOptions) (string, error) {
	tree, err := markdown.Parse(doc.Body(), opts.Markdown)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to convert markdown").Build()
	}
	out, err := orgrender.New(doc.Metadata(), orgrender.WithExtraKeys(opts.ExtraKeys...)).Render(tree)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to render org").Build()
	}
	return out, nil
}

// RenderBytes parses raw file content and converts it to Org text.
func RenderBytes(content []byte, opts RenderOptions) (string, error) {
	doc, err := docmodel.Parse(content)
	if err != nil {
		return "", err
	}
	return Render(doc, opts)
}
