package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/hugorg/cmd/hugorg/commands"
	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
	"git.home.luguber.info/inful/hugorg/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("hugorg"),
		kong.Description("Convert Hugo Markdown content into Org mode files."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := parser.Run(&commands.Global{Context: ctx, Logger: slog.Default(), Stdout: os.Stdout}, &cli)
	cancel()

	os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(err))
}
