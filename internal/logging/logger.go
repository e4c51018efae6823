// Package logging provides leveled logging and the plot manifest for
// mesaplot. It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A PlotLogger for a structured JSONL manifest of rendered artifacts
//     (<plots dir>/manifest.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug for full content logging.
// At this level, per-row parsing detail and series extents are included.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "trace", "debug", "info", "warn", "error"
// (case-insensitive). Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// PlotLogger appends one JSONL line per rendered plot to manifest.jsonl in
// the plots directory. It is safe for concurrent use. A nil PlotLogger is
// safe to use; all methods are no-ops on nil receiver.
type PlotLogger struct {
	mu     sync.Mutex
	dir    string
	file   *os.File
	opened bool
}

// NewPlotLogger creates a plot logger for dir/manifest.jsonl. Nothing is
// created on disk until the first Saved call, so commands that render no
// plots leave no plots directory behind.
func NewPlotLogger(dir string) *PlotLogger {
	return &PlotLogger{dir: dir}
}

// open creates the plots directory and manifest file. Called with mu held.
// A failed attempt is not retried; the logger stays silent after it.
func (pl *PlotLogger) open() bool {
	if pl.opened {
		return pl.file != nil
	}
	pl.opened = true

	if err := os.MkdirAll(pl.dir, 0755); err != nil {
		return false
	}
	f, err := os.OpenFile(filepath.Join(pl.dir, "manifest.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false
	}
	pl.file = f
	return true
}

// Saved records one rendered artifact. A "time" field is added
// automatically. Safe to call on nil receiver.
func (pl *PlotLogger) Saved(path, kind, system string, points int) {
	if pl == nil {
		return
	}

	pl.mu.Lock()
	defer pl.mu.Unlock()
	if !pl.open() {
		return
	}

	entry := map[string]any{
		"path":   path,
		"kind":   kind,
		"points": points,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if system != "" {
		entry["system"] = system
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = pl.file.Write(data)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (pl *PlotLogger) Close() {
	if pl == nil || pl.file == nil {
		return
	}

	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.file.Close()
	pl.file = nil
}
