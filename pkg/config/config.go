// Package config resolves and decodes tstorie.toml, the optional
// project configuration file naming the document path, target FPS,
// audio toggle, and default theme background; it has no backend
// choice. The contents
// of the theme/document it points at are decoded elsewhere.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ThemeConfig is the subset of theme data this module's ambient stack
// is responsible for plumbing through; the actual theme/style loading
// system is an external collaborator.
type ThemeConfig struct {
	BgR uint8 `toml:"bg_r"`
	BgG uint8 `toml:"bg_g"`
	BgB uint8 `toml:"bg_b"`
}

// Config is the decoded shape of tstorie.toml.
type Config struct {
	Document  string      `toml:"document"`
	TargetFPS int         `toml:"target_fps"`
	AudioOn   bool        `toml:"audio_on"`
	Theme     ThemeConfig `toml:"theme"`
}

// Default returns the configuration used when no tstorie.toml is found.
func Default() Config {
	return Config{TargetFPS: 60}
}

// Load decodes path into a Config. Decoding failure is a
// construction-time error surfaced to the caller, never a panic.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Find searches for tstorie.toml starting at dir and walking up to
// parent directories, nearest file wins. Returns
// ("", Default(), nil) if none is found; absence is not an error.
func Find(dir string) (string, Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", Config{}, err
	}
	for {
		path := filepath.Join(dir, "tstorie.toml")
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return "", Config{}, err
			}
			return path, cfg, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", Default(), nil
		}
		dir = parent
	}
}
