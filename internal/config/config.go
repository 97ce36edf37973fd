// Package config loads and saves the on-disk preferences file shared by
// scm-record and scm-diff-editor.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ColorMode controls when ANSI color is emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds user preferences, persisted as TOML.
type Config struct {
	Theme     string    `toml:"theme"`
	TabWidth  int       `toml:"tab_width"`
	SplitDiff bool      `toml:"split_diff"`
	ReadOnly  bool      `toml:"read_only"`
	Color     ColorMode `toml:"color"`
	LogPath   string    `toml:"log_path"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Theme:    "dark",
		TabWidth: 8,
		Color:    ColorAuto,
	}
}

// Load reads config from ~/.config/scm-record/config.toml. Returns
// defaults if the file doesn't exist or can't be parsed.
func Load() Config {
	path, err := configPath()
	if err != nil {
		return Default()
	}
	return LoadFrom(path)
}

// LoadFrom reads config from the given path. Returns defaults on error.
func LoadFrom(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_ = toml.Unmarshal(data, &cfg)
	return cfg
}

// Save writes config to ~/.config/scm-record/config.toml.
func Save(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes config to the given path, creating parent dirs as needed.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "scm-record", "config.toml"), nil
}
