package config

import (
	"os"
	"strings"

	ferrors "git.home.luguber.info/inful/hugorg/internal/foundation/errors"
)

// normalize trims values and fills settings that have derived defaults.
func (c *Config) normalize() {
	c.Source = strings.TrimSpace(c.Source)
	c.Dest = strings.TrimSpace(c.Dest)
	c.Output.Suffix = strings.TrimSpace(c.Output.Suffix)
	c.State.Path = strings.TrimSpace(c.State.Path)
	c.Metrics.Addr = strings.TrimSpace(c.Metrics.Addr)
	c.Retry.Mode = strings.ToLower(strings.TrimSpace(c.Retry.Mode))
	if c.Workers <= 0 {
		c.Workers = Default().Workers
	}

	keys := c.Preamble.ExtraKeys[:0]
	for _, k := range c.Preamble.ExtraKeys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keys = append(keys, k)
		}
	}
	c.Preamble.ExtraKeys = keys
}

// Validate checks that the configuration is complete enough to run a
// conversion. It is called after command-line overrides are applied.
func (c *Config) Validate() error {
	c.normalize()
	if err := c.validateSettings(); err != nil {
		return err
	}
	return c.validatePaths()
}

func (c *Config) validateSettings() error {
	if c.Output.Suffix == "" {
		return invalid("output.suffix must not be empty", c.Output.Suffix)
	}
	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return invalid("output.suffix must not contain path separators", c.Output.Suffix)
	}
	if strings.HasSuffix(strings.ToLower(c.Output.Suffix), ".md") {
		return invalid("output.suffix must not produce Markdown files", c.Output.Suffix)
	}
	if c.Watch.Debounce < 0 {
		return invalid("watch.debounce must not be negative", c.Watch.Debounce)
	}
	if c.Watch.ResyncInterval < 0 {
		return invalid("watch.resync_interval must not be negative", c.Watch.ResyncInterval)
	}
	switch c.Retry.Mode {
	case "fixed", "linear", "exponential":
	default:
		return invalid("retry.mode must be fixed, linear or exponential", c.Retry.Mode)
	}
	if c.Retry.MaxRetries < 0 {
		return invalid("retry.max_retries must not be negative", c.Retry.MaxRetries)
	}
	if c.Incremental && c.State.Path == "" {
		return invalid("state.path is required when incremental is enabled", c.State.Path)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Source == "" {
		return invalid("source directory is required", c.Source)
	}
	if c.Dest == "" {
		return invalid("dest directory is required", c.Dest)
	}
	info, err := os.Stat(c.Source)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "source directory is not accessible").
			Fatal().
			UserAction().
			WithContext("path", c.Source).
			Build()
	}
	if !info.IsDir() {
		return invalid("source must be a directory", c.Source)
	}
	return nil
}

func invalid(message string, value any) error {
	return ferrors.ValidationError(message).WithContext("value", value).Build()
}
