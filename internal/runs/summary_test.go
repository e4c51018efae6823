package runs

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesa-tools/mesaplot/internal/mesa"
)

// batchHistoryFixture carries GAIA filters plus the physics columns the
// summaries read.
const batchHistoryFixture = `1 2
version_number initial_mass
"15140" 4.0

1 2 3 4 5 6 7 8 9
model_number star_age log_L log_Teff mass_conv_core star_mass Flux_bol Gbp Grp
1 1.0E+06 2.0 4.10 0.8 4.0 1.0 1.50 1.30
2 2.0E+06 2.1 4.11 0.9 4.0 1.1 1.45 1.28
3 3.0E+06 2.2 4.12 1.0 4.0 1.2 1.40 1.26
`

// johnsonHistoryFixture carries only B and V filters.
const johnsonHistoryFixture = `1
version_number
"15140"

1 2 3 4 5
model_number star_age Flux_bol B V
1 1.0E+06 1.0 1.20 1.00
2 2.0E+06 1.1 1.10 0.95
`

func writeRun(t *testing.T, runsDir, name, fixture string) Run {
	t.Helper()
	logs := filepath.Join(runsDir, name, "LOGS")
	if err := os.MkdirAll(logs, 0755); err != nil {
		t.Fatal(err)
	}
	history := filepath.Join(logs, "history.data")
	if err := os.WriteFile(history, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}
	params, err := ParseRunName(name)
	if err != nil {
		t.Fatalf("bad test run name %q: %v", name, err)
	}
	return Run{Name: name, Dir: filepath.Join(runsDir, name), LogsDir: logs, History: history, Params: params}
}

func TestLoadAndSummarize(t *testing.T) {
	runsDir := t.TempDir()
	run := writeRun(t, runsDir, "inlist_M4.0_Z0.014_exp_fov0.01", batchHistoryFixture)

	lr, err := Load(run)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// Gbp and Grp alone are not a complete GAIA triplet; the custom
	// fallback pairs them in table order.
	if lr.System.Name != "Custom" {
		t.Errorf("System = %s, want Custom (Gbp, Grp without G)", lr.System.Name)
	}

	s, err := Summarize(lr)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if s.Name != run.Name {
		t.Errorf("Name = %s, want %s", s.Name, run.Name)
	}
	if math.Abs(s.Mass-4.0) > 1e-9 {
		t.Errorf("Mass = %v, want 4.0", s.Mass)
	}
	if math.Abs(s.Color-(1.40-1.26)) > 1e-9 {
		t.Errorf("Color = %v, want final Gbp-Grp = 0.14", s.Color)
	}
	if math.Abs(s.Magnitude-1.40) > 1e-9 {
		t.Errorf("Magnitude = %v, want final Gbp = 1.40", s.Magnitude)
	}
	if math.Abs(s.LogL-2.2) > 1e-9 || math.Abs(s.LogTeff-4.12) > 1e-9 {
		t.Errorf("LogL, LogTeff = %v, %v, want 2.2, 4.12", s.LogL, s.LogTeff)
	}
	if math.Abs(s.AgeYears-3e6) > 1 {
		t.Errorf("AgeYears = %v, want 3e6", s.AgeYears)
	}
	if math.Abs(s.CoreMass-1.0) > 1e-9 {
		t.Errorf("CoreMass = %v, want 1.0 (mass_conv_core)", s.CoreMass)
	}
	if s.Models != 3 {
		t.Errorf("Models = %d, want 3", s.Models)
	}
}

func TestLoadNoFilters(t *testing.T) {
	runsDir := t.TempDir()
	fixture := `1
version_number
"15140"

1 2
model_number log_L
1 2.0
`
	run := writeRun(t, runsDir, "inlist_M4.0", batchHistoryFixture)
	if err := os.WriteFile(run.History, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(run); err == nil {
		t.Error("Load() without filter columns should fail")
	}
}

func TestCoreMass(t *testing.T) {
	t.Run("conv_mx1_top scaled by star_mass", func(t *testing.T) {
		fixture := `1
version_number
"15140"

1 2 3
model_number conv_mx1_top star_mass
1 0.25 4.0
2 0.20 4.0
`
		path := filepath.Join(t.TempDir(), "history.data")
		if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
			t.Fatal(err)
		}
		d, err := mesa.Load(path)
		if err != nil {
			t.Fatal(err)
		}

		core, label, ok := CoreMass(d)
		if !ok || label != "conv_mx1_top" {
			t.Fatalf("CoreMass() label = %s, %v, want conv_mx1_top", label, ok)
		}
		if math.Abs(core[0]-1.0) > 1e-9 || math.Abs(core[1]-0.8) > 1e-9 {
			t.Errorf("core = %v, want [1.0 0.8]", core)
		}
	})

	t.Run("he_core_mass preferred", func(t *testing.T) {
		fixture := `1
version_number
"15140"

1 2 3
model_number he_core_mass mass_conv_core
1 0.5 0.7
`
		path := filepath.Join(t.TempDir(), "history.data")
		if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
			t.Fatal(err)
		}
		d, err := mesa.Load(path)
		if err != nil {
			t.Fatal(err)
		}

		_, label, ok := CoreMass(d)
		if !ok || label != "he_core_mass" {
			t.Errorf("CoreMass() label = %s, want he_core_mass", label)
		}
	})

	t.Run("no core columns", func(t *testing.T) {
		fixture := `1
version_number
"15140"

1 2
model_number log_L
1 2.0
`
		path := filepath.Join(t.TempDir(), "history.data")
		if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
			t.Fatal(err)
		}
		d, err := mesa.Load(path)
		if err != nil {
			t.Fatal(err)
		}

		if _, _, ok := CoreMass(d); ok {
			t.Error("CoreMass() should report no core columns")
		}
	})
}

func TestCommonSystem(t *testing.T) {
	runsDir := t.TempDir()

	var loaded []*Loaded
	for _, name := range []string{"inlist_M2.0", "inlist_M3.0", "inlist_M4.0"} {
		run := writeRun(t, runsDir, name, batchHistoryFixture)
		lr, err := Load(run)
		if err != nil {
			t.Fatal(err)
		}
		loaded = append(loaded, lr)
	}
	// One run with a Johnson-only history.
	run := writeRun(t, runsDir, "inlist_M5.0", johnsonHistoryFixture)
	lr, err := Load(run)
	if err != nil {
		t.Fatal(err)
	}
	if lr.System.Name != "Johnson" {
		t.Fatalf("System = %s, want Johnson", lr.System.Name)
	}
	loaded = append(loaded, lr)

	name, filtered := CommonSystem(loaded)
	if name != "Custom" {
		t.Errorf("CommonSystem() = %s, want Custom (3 of 4 runs)", name)
	}
	if len(filtered) != 3 {
		t.Errorf("filtered = %d runs, want 3", len(filtered))
	}

	if name, filtered := CommonSystem(nil); name != "" || filtered != nil {
		t.Errorf("CommonSystem(nil) = %q, %v, want empty", name, filtered)
	}
}

func TestAgeMyr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.data")
	if err := os.WriteFile(path, []byte(batchHistoryFixture), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := mesa.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	age, label := AgeMyr(d)
	if label != "Age (Myr)" {
		t.Errorf("label = %s, want Age (Myr)", label)
	}
	if math.Abs(age[0]-1.0) > 1e-9 {
		t.Errorf("age[0] = %v, want 1.0 Myr", age[0])
	}
}
