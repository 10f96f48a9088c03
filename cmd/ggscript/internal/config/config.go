package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the optional configuration file looked up in the working
// directory.
const FileName = "ggscript.yaml"

// Config represents the optional ggscript.yaml configuration.
type Config struct {
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
	Backend  string `yaml:"backend,omitempty"`
	Format   string `yaml:"format,omitempty"`
	Output   string `yaml:"output,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when neither the file nor the
// flags set a value.
func Default() Config {
	return Config{
		Width:    800,
		Height:   600,
		Backend:  "raster",
		Format:   "argb8888",
		Output:   "demo.png",
		LogLevel: "warn",
	}
}

// LoadOptional reads ggscript.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	if over.Width != 0 {
		base.Width = over.Width
	}
	if over.Height != 0 {
		base.Height = over.Height
	}
	if s := strings.TrimSpace(over.Backend); s != "" {
		base.Backend = s
	}
	if s := strings.TrimSpace(over.Format); s != "" {
		base.Format = s
	}
	if s := strings.TrimSpace(over.Output); s != "" {
		base.Output = s
	}
	if s := strings.TrimSpace(over.LogLevel); s != "" {
		base.LogLevel = s
	}
	return base
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return l, nil
}
