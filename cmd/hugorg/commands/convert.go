package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/hugorg/internal/convert"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	RunFlags `embed:""`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadRunConfig(root, &c.RunFlags)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []convert.Option{convert.WithLogger(g.Logger)}
	if store != nil {
		opts = append(opts, convert.WithStore(store))
	}
	summary, err := convert.NewRunner(*cfg, opts...).Run(g.Context)
	if summary != nil {
		printSummary(g.Stdout, summary)
	}
	if err != nil {
		return err
	}
	return summary.Err()
}

func printSummary(w io.Writer, s *convert.Summary) {
	_, _ = fmt.Fprintf(w, "Converted %d, unchanged %d, skipped %d, failed %d\n",
		s.Count(convert.StatusConverted),
		s.Count(convert.StatusUnchanged),
		s.Count(convert.StatusSkipped),
		s.Count(convert.StatusFailed))
	for _, f := range s.Failures() {
		_, _ = fmt.Fprintf(w, "  %s: %v\n", f.Source, f.Err)
	}
}
