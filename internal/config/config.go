// Package config loads the lineguard CLI configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/theme"
)

const (
	DefaultTheme    = "github-dark"
	DefaultLogLevel = "info"
)

// Config holds the persisted CLI settings. Command-line flags override it.
type Config struct {
	Theme     string `toml:"theme"`
	ThemesDir string `toml:"themes_dir,omitempty"`
	LogLevel  string `toml:"log_level"`
	Editor    Editor `toml:"editor"`
}

// Editor mirrors the editor options that make sense to persist.
type Editor struct {
	TabSize              int  `toml:"tab_size"`
	LineHeight           int  `toml:"line_height"`
	WordWrap             bool `toml:"word_wrap"`
	PaddingTop           int  `toml:"padding_top"`
	PaddingBottom        int  `toml:"padding_bottom"`
	ScrollBeyondLastLine bool `toml:"scroll_beyond_last_line"`
	HideLineNumbers      bool `toml:"hide_line_numbers"`
}

func Default() *Config {
	return &Config{
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
		Editor: Editor{
			TabSize:    2,
			LineHeight: 1,
		},
	}
}

// Dir returns ~/.config/lineguard.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lineguard"), nil
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at the default location. A missing home
// directory or file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.fill()
	return cfg, nil
}

func (c *Config) fill() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Marshal encodes c as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Save writes c to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Options returns the editor options described by c.
func (c *Config) Options() editor.Options {
	return editor.Options{
		TabSize:              c.Editor.TabSize,
		LineHeight:           c.Editor.LineHeight,
		WordWrap:             c.Editor.WordWrap,
		Padding:              editor.Padding{Top: c.Editor.PaddingTop, Bottom: c.Editor.PaddingBottom},
		ScrollBeyondLastLine: c.Editor.ScrollBeyondLastLine,
		HideLineNumbers:      c.Editor.HideLineNumbers,
	}
}

// ThemeLoader returns the built-in themes followed by the ones in ThemesDir,
// if set. Later entries with the same name replace earlier ones.
func (c *Config) ThemeLoader() theme.Loader {
	if c.ThemesDir == "" {
		return theme.BuiltinLoader()
	}
	return theme.Chain(theme.BuiltinLoader(), theme.DirLoader(c.ThemesDir))
}
