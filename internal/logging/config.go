package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Env names the environment variables that override the [logging] table.
// Empty names are not consulted.
type Env struct {
	Level  string
	Format string
	Source string
}

// Config is the [logging] table of the service configuration.
type Config struct {
	// Level is debug, info, warn or error. Matching ignores case and
	// "warning" is accepted for warn. Default: info
	Level Level `toml:"level"`
	// Format is text or json. Default: text
	Format Format `toml:"format"`
	// Source adds the calling file and line to every record.
	Source bool `toml:"source"`
}

// Finalize normalizes the level and format names, fills in the defaults
// and applies env on top. A nil env skips the environment.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if err := c.loadEnv(env); err != nil {
		return err
	}
	c.Level = c.Level.normalize()
	c.Format = Format(strings.ToLower(string(c.Format)))
	return c.validate()
}

// Merge copies the settings an overlay file sets. Source can only be
// switched on by an overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Source {
		c.Source = true
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv(env *Env) error {
	if env == nil {
		return nil
	}
	if v := lookup(env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := lookup(env.Format); v != "" {
		c.Format = Format(v)
	}
	if v := lookup(env.Source); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env.Source, err)
		}
		c.Source = b
	}
	return nil
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(name))
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}
