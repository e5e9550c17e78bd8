// Package config holds the interpreter's process constants and the
// optional lisp.yaml run-control file.
//
// The file tunes the interactive surface only (prompt, history,
// colors, recursion bound); language semantics are not configurable.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the run-control file looked up in the working directory
// and then in the user's home directory.
const FileName = "lisp.yaml"

// Color modes accepted by Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the top-level lisp.yaml configuration.
type Config struct {
	// Prompt is the REPL prompt string. Defaults to "> ".
	Prompt string `yaml:"prompt,omitempty"`

	// HistoryFile is the path of the REPL history file. Relative
	// paths resolve against the user's home directory. Defaults to
	// ~/.lisp_history.
	HistoryFile string `yaml:"history_file,omitempty"`

	// Color controls ANSI output: "auto" (default, on when stdout is
	// a terminal), "always", or "never". NO_COLOR overrides all modes.
	Color string `yaml:"color,omitempty"`

	// MaxDepth bounds evaluator recursion. Defaults to 10000.
	MaxDepth int `yaml:"max_depth,omitempty"`
}

// Default returns the configuration used when no lisp.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Discover loads lisp.yaml from the working directory or the home
// directory, falling back to defaults when neither exists.
func Discover() (*Config, error) {
	if cfg, err := Load(FileName); err == nil {
		return cfg, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	home, err := os.UserHomeDir()
	if err == nil {
		if cfg, err := Load(filepath.Join(home, FileName)); err == nil {
			return cfg, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return Default(), nil
}

// Load reads and parses a lisp.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses lisp.yaml content from bytes. The path argument is
// used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: invalid color mode %q (want auto, always or never)", path, c.Color)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%s: max_depth must be positive, got %d", path, c.MaxDepth)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.HistoryFile == "" {
		c.HistoryFile = HistoryFileName
	}
	if !filepath.IsAbs(c.HistoryFile) {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryFile = filepath.Join(home, c.HistoryFile)
		}
	}
}
