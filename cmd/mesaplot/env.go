package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/config"
	"github.com/mesa-tools/mesaplot/internal/logging"
	"github.com/mesa-tools/mesaplot/internal/mesa"
	"github.com/mesa-tools/mesaplot/internal/photometry"
	"github.com/mesa-tools/mesaplot/internal/plot"
	"github.com/mesa-tools/mesaplot/internal/runs"
)

const configFileHint = config.ConfigFileName

// env bundles the loaded configuration, logger and renderer every plotting
// command needs. Build one per command invocation with newEnv and close it
// when done so the plot manifest is flushed.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *plot.Renderer
	system   string // forced photometric system name, or ""
}

func newEnv(cmd *cobra.Command) (*env, error) {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Plots.Dir = out
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	system, _ := cmd.Flags().GetString("system")
	if system == "" {
		system = cfg.Photometry.System
	}

	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	renderer := plot.NewRenderer(cfg.Plots.Dir, cfg.Plots.Width, cfg.Plots.Height, logger)
	renderer.Manifest = logging.NewPlotLogger(cfg.Plots.Dir)

	return &env{
		cfg:      cfg,
		logger:   logger,
		renderer: renderer,
		system:   system,
	}, nil
}

func (e *env) close() {
	e.renderer.Manifest.Close()
}

// pickSystem resolves the photometric system for a table, honoring a
// forced system name when one is configured.
func (e *env) pickSystem(d *mesa.Data) (*photometry.System, bool) {
	filters := d.FilterColumns()
	if e.system != "" {
		if sys, ok := photometry.ByName(e.system, filters); ok {
			return sys, true
		}
		e.logger.Warn("forced photometric system not available, auto-detecting",
			"system", e.system, "filters", filters)
	}
	return photometry.Detect(filters)
}

// singleRun loads the history for a single run. The LOGS directory comes
// from --logs or the conventional locations relative to the working
// directory. A missing directory or file warns and reports false rather
// than failing, so commands can return nil.
func (e *env) singleRun(cmd *cobra.Command) (*mesa.Data, bool) {
	logsDir, _ := cmd.Flags().GetString("logs")
	if logsDir == "" {
		var ok bool
		logsDir, ok = runs.LocateLogs(".")
		if !ok {
			e.logger.Warn("no LOGS directory found; pass --logs")
			return nil, false
		}
	}

	history := filepath.Join(logsDir, "history.data")
	d, err := mesa.Load(history)
	if err != nil {
		e.logger.Warn("failed to read history", "error", err)
		return nil, false
	}
	return d, true
}

// logsDirOf returns the LOGS directory for profile lookups, mirroring
// singleRun's resolution.
func (e *env) logsDirOf(cmd *cobra.Command) (string, bool) {
	logsDir, _ := cmd.Flags().GetString("logs")
	if logsDir != "" {
		return logsDir, true
	}
	return runs.LocateLogs(".")
}

// batch discovers and loads every run of a batch. Runs that fail to load
// are skipped with a warning. Reports false when there is no usable runs
// directory or no run loads.
func (e *env) batch(cmd *cobra.Command) ([]*runs.Loaded, bool) {
	runsDir, _ := cmd.Flags().GetString("runs")
	if runsDir == "" {
		var ok bool
		runsDir, ok = runs.LocateRuns(".")
		if !ok {
			e.logger.Warn("no runs directory found; pass --runs")
			return nil, false
		}
	}

	found, bad, err := runs.DiscoverBatch(runsDir)
	if err != nil {
		e.logger.Warn("failed to scan runs directory", "error", err)
		return nil, false
	}
	for _, name := range bad {
		e.logger.Warn("skipping run with unparseable name", "run", name)
	}

	var loaded []*runs.Loaded
	for _, r := range found {
		lr, err := runs.Load(r)
		if err != nil {
			e.logger.Warn("skipping run", "run", r.Name, "error", err)
			continue
		}
		loaded = append(loaded, lr)
	}
	if len(loaded) == 0 {
		e.logger.Warn("no readable runs found", "dir", runsDir)
		return nil, false
	}
	return loaded, true
}

// savePNG renders fig and logs failures as warnings so one bad figure does
// not abort a multi-plot command.
func (e *env) savePNG(name, kind, system string, fig plot.Figure) {
	if _, err := e.renderer.SavePNG(name, kind, system, fig); err != nil {
		e.logger.Warn("failed to render plot", "plot", name, "error", err)
	}
}
