// Package runs locates MESA output directories and collects per-run data
// for the batch comparison plots. A batch lives under a runs directory as
// inlist_M<mass>_Z<z>_<scheme>_fov<f> subdirectories, each holding a
// LOGS/history.data.
package runs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LocateLogs finds the LOGS directory for a single run, checking the
// conventional locations relative to start in order: LOGS, ../LOGS,
// ../../LOGS, then any LOGS_M* directory.
func LocateLogs(start string) (string, bool) {
	for _, rel := range []string{"LOGS", filepath.Join("..", "LOGS"), filepath.Join("..", "..", "LOGS")} {
		p := filepath.Join(start, rel)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, true
		}
	}
	matches, _ := filepath.Glob(filepath.Join(start, "LOGS_M*"))
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			return m, true
		}
	}
	return "", false
}

// LocateRuns finds the batch runs directory relative to start: ../runs
// first, then runs.
func LocateRuns(start string) (string, bool) {
	for _, rel := range []string{filepath.Join("..", "runs"), "runs"} {
		p := filepath.Join(start, rel)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Params are the model parameters encoded in a batch run directory name.
type Params struct {
	Mass        float64
	Metallicity float64
	Scheme      string
	Fov         float64
}

// DefaultMetallicity is assumed when the directory name omits a Z part.
const DefaultMetallicity = 0.014

// ParseRunName decodes an inlist_M* directory name, e.g.
// "inlist_M4.0_Z0.014_exp_fov0.01" or "inlist_M2.5_Z0.014_noovs".
func ParseRunName(name string) (Params, error) {
	if !strings.HasPrefix(name, "inlist_M") {
		return Params{}, fmt.Errorf("run name %q does not start with inlist_M", name)
	}
	parts := strings.Split(strings.TrimPrefix(name, "inlist_M"), "_")
	if len(parts) == 0 || parts[0] == "" {
		return Params{}, fmt.Errorf("run name %q has no mass part", name)
	}

	mass, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Params{}, fmt.Errorf("run name %q: bad mass %q: %w", name, parts[0], err)
	}

	p := Params{Mass: mass, Metallicity: DefaultMetallicity}

	if len(parts) > 1 && strings.HasPrefix(parts[1], "Z") {
		if z, err := strconv.ParseFloat(parts[1][1:], 64); err == nil {
			p.Metallicity = z
		}
	}

	if strings.Contains(name, "noovs") {
		p.Scheme = "none"
		return p, nil
	}

	p.Scheme = "unknown"
	if len(parts) > 2 {
		p.Scheme = parts[2]
	}
	if len(parts) > 3 && strings.HasPrefix(parts[3], "fov") {
		if fov, err := strconv.ParseFloat(parts[3][3:], 64); err == nil {
			p.Fov = fov
		}
	}
	return p, nil
}

// Run is one discovered batch run.
type Run struct {
	Name    string
	Dir     string
	LogsDir string
	History string
	Params  Params
}

// DiscoverBatch lists the inlist_M* run directories under runsDir that hold
// a LOGS/history.data, sorted by name. Directories with unparseable names
// are returned in bad rather than silently dropped, so callers can warn.
func DiscoverBatch(runsDir string) (found []Run, bad []string, err error) {
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "inlist_M") {
			continue
		}
		history := filepath.Join(runsDir, e.Name(), "LOGS", "history.data")
		if _, err := os.Stat(history); err != nil {
			continue
		}
		params, err := ParseRunName(e.Name())
		if err != nil {
			bad = append(bad, e.Name())
			continue
		}
		found = append(found, Run{
			Name:    e.Name(),
			Dir:     filepath.Join(runsDir, e.Name()),
			LogsDir: filepath.Join(runsDir, e.Name(), "LOGS"),
			History: history,
			Params:  params,
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, bad, nil
}
