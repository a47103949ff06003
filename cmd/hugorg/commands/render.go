package commands

import (
	"io"
	"os"

	"git.home.luguber.info/inful/hugorg/internal/config"
	"git.home.luguber.info/inful/hugorg/internal/convert"
	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
	"git.home.luguber.info/inful/hugorg/internal/markdown"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File      string   `arg:"" help:"Markdown file to render, or - for stdin"`
	ExtraKeys []string `name:"extra-key" help:"Additional front matter key to emit as a #+ directive (repeatable)"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	return r.render(cfg, os.Stdin, g.Stdout)
}

func (r *RenderCmd) render(cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	var content []byte
	var err error
	if r.File == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		// #nosec G304 -- the file is named by the operator.
		content, err = os.ReadFile(r.File)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read input").
			WithContext("path", r.File).
			Build()
	}

	out, err := convert.RenderBytes(content, convert.RenderOptions{
		Markdown:  markdown.Options{DisableGFM: cfg.Markdown.DisableGFM},
		ExtraKeys: append(append([]string(nil), cfg.Preamble.ExtraKeys...), r.ExtraKeys...),
	})
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return classified.WithContext("path", r.File)
		}
		return err
	}
	if _, err := io.WriteString(stdout, out); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").Build()
	}
	return nil
}
