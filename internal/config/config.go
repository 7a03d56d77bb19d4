// Package config loads the small TOML configuration file shared by
// cmd/dicectl and cmd/diced, following the same BurntSushi/toml-decode-a-
// struct approach internal/tqw uses for world data.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the settings either front end may read from a config file,
// layered under whatever flags the command line supplies.
type Config struct {
	// Seed pins the RNG for reproducible sessions. Zero means "use
	// process entropy", not "seed with zero" — callers wanting an
	// explicit zero seed should pass it via a flag instead.
	Seed int64 `toml:"seed"`

	// AliasFile is a path to a TOML alias table (internal/alias.Load),
	// relative to the config file's own directory if not absolute.
	AliasFile string `toml:"alias_file"`

	// HistoryCapacity bounds the in-process roll log (internal/history).
	// Zero means use internal/history.DefaultCapacity.
	HistoryCapacity int `toml:"history_capacity"`

	// HTTPAddr is the listen address for cmd/diced. Ignored by dicectl.
	HTTPAddr string `toml:"http_addr"`

	// HTTPTimeout bounds how long a single /roll request may take to
	// serve. Ignored by dicectl.
	HTTPTimeout time.Duration `toml:"http_timeout"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		HTTPAddr:    ":8080",
		HTTPTimeout: 5 * time.Second,
	}
}

// Load reads and decodes a TOML config file at path, starting from
// Default() so unset fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config file: %w", err)
	}
	if cfg.AliasFile != "" && !filepath.IsAbs(cfg.AliasFile) {
		cfg.AliasFile = filepath.Join(filepath.Dir(path), cfg.AliasFile)
	}
	return cfg, nil
}
