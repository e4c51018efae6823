// Package config provides unified configuration loading for mesaplot.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project config file looked up next to the data.
const ConfigFileName = ".mesaplot.yaml"

// Config contains all mesaplot configuration settings.
type Config struct {
	// Plots contains settings for rendered output.
	Plots PlotsConfig `json:"plots" yaml:"plots"`

	// Photometry contains settings for photometric system selection.
	Photometry PhotometryConfig `json:"photometry" yaml:"photometry"`

	// Catalog contains settings for the sqlite run catalog.
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// PlotsConfig configures where and how plots are written.
type PlotsConfig struct {
	// Dir is the output directory for PNG and GIF files.
	Dir string `json:"dir" yaml:"dir"`

	// Width and Height set the pixel size of rendered charts.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// GIFFrames is the number of frames in track animations.
	GIFFrames int `json:"gif_frames" yaml:"gif_frames"`

	// GIFDelay is the inter-frame delay in hundredths of a second.
	GIFDelay int `json:"gif_delay" yaml:"gif_delay"`
}

// PhotometryConfig configures photometric system selection.
type PhotometryConfig struct {
	// System forces a named system ("gaia", "johnson", "2mass", "sdss")
	// instead of priority auto-detection. Falls back to auto-detection
	// with a warning when the forced system's bands are missing.
	System string `json:"system,omitempty" yaml:"system,omitempty"`
}

// CatalogConfig configures the sqlite run catalog.
type CatalogConfig struct {
	// Path is the catalog database file, relative to the working directory.
	Path string `json:"path" yaml:"path"`
}

// LoggingConfig configures mesaplot's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "trace", "debug", "info" (default),
	// "warn", or "error".
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Plots: PlotsConfig{
			Dir:       "plots",
			Width:     1280,
			Height:    960,
			GIFFrames: 30,
			GIFDelay:  10,
		},
		Catalog: CatalogConfig{
			Path: filepath.Join(".mesaplot", "catalog.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration starting from defaults, then the config file in
// dir (if present), then environment variable overrides.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Plots.Width <= 0 || c.Plots.Height <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", c.Plots.Width, c.Plots.Height)
	}

	if c.Plots.GIFFrames < 2 {
		return fmt.Errorf("gif_frames must be at least 2, got %d", c.Plots.GIFFrames)
	}

	if c.Plots.GIFDelay < 1 {
		return fmt.Errorf("gif_delay must be at least 1, got %d", c.Plots.GIFDelay)
	}

	validSystems := map[string]bool{"": true, "gaia": true, "johnson": true, "2mass": true, "sdss": true}
	if !validSystems[strings.ToLower(c.Photometry.System)] {
		return fmt.Errorf("invalid photometric system: %s (valid: gaia, johnson, 2mass, sdss, or empty for auto)", c.Photometry.System)
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MESAPLOT_PLOTS_DIR"); v != "" {
		cfg.Plots.Dir = v
	}

	if v := os.Getenv("MESAPLOT_SYSTEM"); v != "" {
		cfg.Photometry.System = v
	}

	if v := os.Getenv("MESAPLOT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
