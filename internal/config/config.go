// Package config loads refitui settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// ErrInvalid is wrapped by every validation and decoding failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	minTabWidth = 1
	maxTabWidth = 16
)

// Config holds the viewer settings. Zero values are never used directly;
// start from Default.
type Config struct {
	TabWidth  int    `toml:"tab_width"`
	StatusBar bool   `toml:"status_bar"`
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabWidth:  4,
		StatusBar: true,
		LogLevel:  "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.TabWidth < minTabWidth || c.TabWidth > maxTabWidth {
		return fmt.Errorf("%w: tab_width %d out of range %d..%d", ErrInvalid, c.TabWidth, minTabWidth, maxTabWidth)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	return nil
}
