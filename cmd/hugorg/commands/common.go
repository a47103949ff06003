// Package commands implements the hugorg command-line interface.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/hugorg/internal/config"
	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
	"git.home.luguber.info/inful/hugorg/internal/state"
)

// Global carries process-wide dependencies into commands.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
	Stdout  io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ./hugorg.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" help:"Convert every Markdown file under the source directory"`
	Render  RenderCmd  `cmd:"" help:"Render a single Markdown file to stdout"`
	Watch   WatchCmd   `cmd:"" help:"Convert, then re-convert files as they change"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// RunFlags override configuration values for commands that convert a tree.
type RunFlags struct {
	Source           string `arg:"" optional:"" help:"Source directory (overrides config source)" type:"path"`
	Dest             string `short:"o" help:"Destination directory (overrides config dest)" type:"path"`
	NoClobber        bool   `name:"no-clobber" help:"Keep existing output files"`
	Workers          int    `short:"j" help:"Number of documents converted in parallel"`
	Incremental      bool   `short:"i" help:"Skip documents unchanged since the last conversion"`
	Suffix           string `help:"Output file suffix (default .org)"`
	ReplaceExtension bool   `name:"replace-extension" help:"Replace .md with the suffix instead of appending it"`
	StatePath        string `name:"state" help:"State database path for incremental runs" type:"path"`
}

func (f *RunFlags) apply(cfg *config.Config) {
	if f.Source != "" {
		cfg.Source = f.Source
	}
	if f.Dest != "" {
		cfg.Dest = f.Dest
	}
	if f.NoClobber {
		cfg.Clobber = false
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.Incremental {
		cfg.Incremental = true
	}
	if f.Suffix != "" {
		cfg.Output.Suffix = f.Suffix
	}
	if f.ReplaceExtension {
		cfg.Output.ReplaceExtension = true
	}
	if f.StatePath != "" {
		cfg.State.Path = f.StatePath
	}
}

// loadRunConfig loads the configuration file, applies flags and validates
// the result for a tree conversion.
func loadRunConfig(root *CLI, flags *RunFlags) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the state store when incremental conversion is enabled.
// The returned close function is always safe to call.
func openStore(cfg *config.Config) (state.Store, func(), error) {
	if !cfg.Incremental {
		return nil, func() {}, nil
	}
	store, err := state.NewSQLiteStore(cfg.State.Path)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryState, "failed to open state store").
			Fatal().
			WithContext("path", cfg.State.Path).
			Build()
	}
	return store, func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close state store", "error", err)
		}
	}, nil
}

func durationOr(flag, fallback time.Duration) time.Duration {
	if flag > 0 {
		return flag
	}
	return fallback
}
