package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPhysicsSingleRun(t *testing.T) {
	logs := writeRunTree(t, t.TempDir(), 4.0)
	out := t.TempDir()

	_, err := execute(t, "physics", "--logs", logs, "--out", out)
	if err != nil {
		t.Fatalf("physics error = %v", err)
	}

	// One color and one magnitude panel per structural quantity.
	for _, name := range []string{
		"physics_color_vs_log_center_t.png",
		"physics_mag_vs_log_center_t.png",
		"physics_color_vs_log_l.png",
		"physics_mag_vs_log_r.png",
		"physics_color_vs_log_abs_mdot.png",
	} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestPhysicsMassLossFloor(t *testing.T) {
	// Every mass-loss value below the floor: the mdot panels are skipped.
	logs := filepath.Join(t.TempDir(), "LOGS")
	cols := []string{"model_number", "log_center_T", "log_abs_mdot", "Flux_bol", "Gbp", "G", "Grp"}
	rows := [][]float64{
		{1, 7.8, -14, 1.0, 1.5, 1.3, 1.2},
		{2, 7.9, -13, 1.0, 1.4, 1.2, 1.1},
	}
	writeTable(t, filepath.Join(logs, "history.data"),
		[]string{"initial_mass"}, []string{"4.0"}, cols, rows)
	out := t.TempDir()

	_, err := execute(t, "physics", "--logs", logs, "--out", out)
	if err != nil {
		t.Fatalf("physics error = %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(out, "physics_color_vs_log_abs_mdot.png")); statErr == nil {
		t.Error("mdot panel should be skipped when every rate is below the floor")
	}
	if _, err := os.Stat(filepath.Join(out, "physics_color_vs_log_center_t.png")); err != nil {
		t.Errorf("central temperature panel missing: %v", err)
	}
}

func TestPhysicsBatchMassScaling(t *testing.T) {
	runsDir := writeBatchTree(t, []float64{2.0, 4.0, 8.0}, []string{"exp", "exp", "exp"})
	out := t.TempDir()

	_, err := execute(t, "physics", "--all", "--runs", runsDir, "--out", out)
	if err != nil {
		t.Fatalf("physics --all error = %v", err)
	}
	for _, name := range []string{"all_mass_vs_color.png", "all_mass_vs_mag.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}
