// Package config loads the optional application config file. Every setting
// has a working default; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/arantir/favorcalc/internal/favor"
)

// Config holds application settings read from favorcalc.toml.
type Config struct {
	// Database overrides the profile database path.
	Database string `toml:"database"`

	// LevelTable and GiftCatalog override the embedded CSV data sources.
	LevelTable  string `toml:"level_table"`
	GiftCatalog string `toml:"gift_catalog"`

	// LinkedGiftID and LinkedExp are the linked-mode override constants.
	LinkedGiftID int `toml:"linked_gift_id"`
	LinkedExp    int `toml:"linked_exp"`

	// DebounceMs is the recompute quiet window in milliseconds.
	DebounceMs int `toml:"debounce_ms"`
}

// Default returns the stock configuration.
func Default() Config {
	fc := favor.DefaultConfig()
	return Config{
		LinkedGiftID: fc.LinkedGiftID,
		LinkedExp:    fc.LinkedExp,
		DebounceMs:   int(favor.DefaultDebounceWindow.Milliseconds()),
	}
}

// Favor returns the engine configuration portion.
func (c Config) Favor() favor.Config {
	return favor.Config{
		LinkedGiftID: c.LinkedGiftID,
		LinkedExp:    c.LinkedExp,
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. An empty path means the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath resolves the config file location:
// $XDG_CONFIG_HOME/favorcalc/favorcalc.toml, with ~/.config as the fallback
// base.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "favorcalc", "favorcalc.toml"), nil
}
