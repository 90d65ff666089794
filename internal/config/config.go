// Package config persists app preferences (window geometry, tile atlas
// location, zoom bounds). Faction data is deliberately NOT stored here:
// the directory state lives in memory only and JSON import/export is its
// sole persistence path.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Config struct {
	TilesDir string `json:"tiles_dir"`
	WindowW  int    `json:"window_w"`
	WindowH  int    `json:"window_h"`
	MinZoom  int    `json:"min_zoom"`
	MaxZoom  int    `json:"max_zoom"`
}

// legacyStateFile is the faction dump older builds wrote next to the config.
// It is removed at startup without being read, so stale directory state can
// never resurface and override a fresh import.
const legacyStateFile = "factions_v4.json"

func defaults() *Config {
	return &Config{
		TilesDir: filepath.Join("tiles", "atlas"),
		WindowW:  1280,
		WindowH:  800,
		MinZoom:  0,
		MaxZoom:  7,
	}
}

// Dir returns the per-user config directory, creating it if needed.
func Dir() string {
	base, _ := os.UserConfigDir()
	dir := filepath.Join(base, "factionmap")
	os.MkdirAll(dir, 0755)
	return dir
}

func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads the config file, falling back to defaults on any error.
func Load() *Config {
	return loadFrom(Path())
}

func loadFrom(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults()
	}

	// Fill fields older config files do not carry.
	def := defaults()
	if cfg.TilesDir == "" {
		cfg.TilesDir = def.TilesDir
	}
	if cfg.WindowW <= 0 {
		cfg.WindowW = def.WindowW
	}
	if cfg.WindowH <= 0 {
		cfg.WindowH = def.WindowH
	}
	if cfg.MaxZoom <= 0 {
		cfg.MaxZoom = def.MaxZoom
	}
	return &cfg
}

func (c *Config) Save() error {
	return c.saveTo(Path())
}

func (c *Config) saveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CleanupLegacyState deletes the legacy faction dump if present and reports
// whether anything was removed.
func CleanupLegacyState() bool {
	return cleanupLegacyIn(Dir())
}

func cleanupLegacyIn(dir string) bool {
	return os.Remove(filepath.Join(dir, legacyStateFile)) == nil
}
