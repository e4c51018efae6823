package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Plots.Dir != "plots" {
		t.Errorf("expected Plots.Dir 'plots', got '%s'", cfg.Plots.Dir)
	}
	if cfg.Plots.Width != 1280 || cfg.Plots.Height != 960 {
		t.Errorf("expected 1280x960, got %dx%d", cfg.Plots.Width, cfg.Plots.Height)
	}
	if cfg.Plots.GIFFrames != 30 {
		t.Errorf("expected GIFFrames 30, got %d", cfg.Plots.GIFFrames)
	}
	if cfg.Photometry.System != "" {
		t.Errorf("expected empty System, got '%s'", cfg.Photometry.System)
	}
	if cfg.Catalog.Path != filepath.Join(".mesaplot", "catalog.db") {
		t.Errorf("unexpected Catalog.Path '%s'", cfg.Catalog.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	configContent := `
plots:
  dir: figures
  width: 800
  height: 600

photometry:
  system: johnson

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Plots.Dir != "figures" {
		t.Errorf("Plots.Dir = %s, want figures", cfg.Plots.Dir)
	}
	if cfg.Plots.Width != 800 || cfg.Plots.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Plots.Width, cfg.Plots.Height)
	}
	if cfg.Photometry.System != "johnson" {
		t.Errorf("Photometry.System = %s, want johnson", cfg.Photometry.System)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}

	// Untouched sections keep their defaults.
	if cfg.Plots.GIFFrames != 30 {
		t.Errorf("GIFFrames = %d, want default 30", cfg.Plots.GIFFrames)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Plots.Dir != "plots" {
		t.Errorf("Plots.Dir = %s, want default 'plots'", cfg.Plots.Dir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MESAPLOT_PLOTS_DIR", "out")
	t.Setenv("MESAPLOT_SYSTEM", "gaia")
	t.Setenv("MESAPLOT_LOG_LEVEL", "trace")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Plots.Dir != "out" {
		t.Errorf("Plots.Dir = %s, want out", cfg.Plots.Dir)
	}
	if cfg.Photometry.System != "gaia" {
		t.Errorf("Photometry.System = %s, want gaia", cfg.Photometry.System)
	}
	if cfg.Logging.Level != "trace" {
		t.Errorf("Logging.Level = %s, want trace", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:        "zero width",
			mutate:      func(c *Config) { c.Plots.Width = 0 },
			errContains: "plot size",
		},
		{
			name:        "one gif frame",
			mutate:      func(c *Config) { c.Plots.GIFFrames = 1 },
			errContains: "gif_frames",
		},
		{
			name:        "zero gif delay",
			mutate:      func(c *Config) { c.Plots.GIFDelay = 0 },
			errContains: "gif_delay",
		},
		{
			name:        "bogus system",
			mutate:      func(c *Config) { c.Photometry.System = "hipparcos" },
			errContains: "photometric system",
		},
		{
			name:   "system is case-insensitive",
			mutate: func(c *Config) { c.Photometry.System = "GAIA" },
		},
		{
			name:        "bogus log level",
			mutate:      func(c *Config) { c.Logging.Level = "verbose" },
			errContains: "log level",
		},
		{
			name:   "warn level",
			mutate: func(c *Config) { c.Logging.Level = "warn" },
		},
		{
			name:   "error level",
			mutate: func(c *Config) { c.Logging.Level = "error" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("plots: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() with invalid YAML should fail")
	}
}
