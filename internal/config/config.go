// Package config loads the hugorg configuration file.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/hugorg/internal/foundation/errors"
)

// DefaultFileName is the configuration file looked up when no path is given.
const DefaultFileName = "hugorg.yaml"

// Config is the complete hugorg configuration.
type Config struct {
	Source      string         `yaml:"source"`
	Dest        string         `yaml:"dest"`
	Clobber     bool           `yaml:"clobber"`
	Workers     int            `yaml:"workers"`
	Incremental bool           `yaml:"incremental"`
	Output      OutputConfig   `yaml:"output"`
	Markdown    MarkdownConfig `yaml:"markdown"`
	Preamble    PreambleConfig `yaml:"preamble"`
	State       StateConfig    `yaml:"state"`
	Watch       WatchConfig    `yaml:"watch"`
	Metrics     MetricsConfig  `yaml:"metrics"`
	Retry       RetryConfig    `yaml:"retry"`
}

// OutputConfig controls output file naming.
type OutputConfig struct {
	Suffix           string `yaml:"suffix"`            // Appended to the source file name
	ReplaceExtension bool   `yaml:"replace_extension"` // Drop ".md" before appending Suffix
}

// MarkdownConfig controls the Markdown dialect.
type MarkdownConfig struct {
	DisableGFM bool `yaml:"disable_gfm"` // Plain CommonMark: no tables, strikethrough, autolinks or task lists
}

// PreambleConfig controls the Org directive lines.
type PreambleConfig struct {
	ExtraKeys []string `yaml:"extra_keys"` // Front matter keys emitted after title, date and author
}

// StateConfig configures the incremental state store.
type StateConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	ResyncInterval time.Duration `yaml:"resync_interval"` // Zero disables periodic full conversion
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the endpoint
}

// RetryConfig sets the backoff for retrying output writes and state updates.
type RetryConfig struct {
	Mode         string        `yaml:"mode"` // fixed|linear|exponential
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	MaxRetries   int           `yaml:"max_retries"`
}

// Default returns the configuration used when no file sets a value.
func Default() Config {
	return Config{
		Clobber: true,
		Workers: runtime.GOMAXPROCS(0),
		Output:  OutputConfig{Suffix: ".org"},
		State:   StateConfig{Path: ".hugorg/state.db"},
		Watch:   WatchConfig{Debounce: 300 * time.Millisecond},
		Retry:   RetryConfig{Mode: "linear", InitialDelay: 50 * time.Millisecond, MaxDelay: time.Second, MaxRetries: 2},
	}
}

// Load reads the configuration at path on top of Default.
//
// Variables from .env and .env.local are loaded first and ${VAR} references
// in the file are expanded. An empty path loads DefaultFileName when it
// exists and otherwise returns the defaults.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFileName); err != nil {
			cfg.normalize()
			return &cfg, nil
		}
		path = DefaultFileName
	}

	// #nosec G304 -- the configuration path is chosen by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	if err := decode([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
			Fatal().
			UserAction().
			WithContext("path", path).
			Build()
	}

	cfg.normalize()
	if err := cfg.validateSettings(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decode unmarshals data into cfg, rejecting unknown keys.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// WriteExample writes the default configuration to path.
func WriteExample(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	cfg := Default()
	cfg.Source = "content"
	cfg.Dest = "org"
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example config").Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
