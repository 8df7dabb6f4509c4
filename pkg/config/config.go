// Package config loads ralph-bf settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raymyers/ralph-bf/pkg/ir"
)

// DefaultFile is read from the working directory when no path is given
const DefaultFile = ".ralph-bf.yaml"

// Config holds the settings a run may change
type Config struct {
	TapeSize int    `yaml:"tape_size"`
	Backend  string `yaml:"backend"`
	LogLevel string `yaml:"log_level"`
	DumpIR   bool   `yaml:"dump_ir"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		TapeSize: ir.MinTapeSize,
		Backend:  "interp",
		LogLevel: "warn",
	}
}

// Load reads path over the defaults. If path is empty, DefaultFile is used
// when present and silently skipped otherwise; an explicit path must exist.
// The result is not validated, so flags can still override a bad value.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg. Unknown keys are rejected; values are
// checked by Validate once flag overrides have been applied.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// Validate checks the settings
func (c Config) Validate() error {
	if c.TapeSize < ir.MinTapeSize {
		return fmt.Errorf("tape_size %d is below the minimum of %d", c.TapeSize, ir.MinTapeSize)
	}
	if c.Backend == "" {
		return errors.New("backend must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level converts LogLevel to a slog level
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log_level %q", c.LogLevel)
}
