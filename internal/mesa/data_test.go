package mesa

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTable writes a MESA-format table for tests and returns its path.
func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

const historyFixture = `                               1                2                3
                  version_number     initial_mass        initial_z
                         "15140"     4.0000000000D+00      1.4000E-02

                               1                2                3                4                5                6
                    model_number         star_age            log_L         Flux_bol                B                V
                               1     1.0000000000D+05       2.50000E+00       1.0E+00       1.2000E+00       1.0000E+00
                               2     2.0000000000D+05       2.60000E+00       1.1E+00       1.1000E+00       9.5000E-01
                               3     3.0000000000D+05       2.70000E+00       1.2E+00       1.0000E+00       9.0000E-01
`

func TestLoadHistory(t *testing.T) {
	path := writeTable(t, t.TempDir(), "history.data", historyFixture)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}

	wantNames := []string{"model_number", "star_age", "log_L", "Flux_bol", "B", "V"}
	got := d.Names()
	if len(got) != len(wantNames) {
		t.Fatalf("Names() = %v, want %v", got, wantNames)
	}
	for i := range wantNames {
		if got[i] != wantNames[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], wantNames[i])
		}
	}

	age, ok := d.Column("star_age")
	if !ok {
		t.Fatal("Column(star_age) not found")
	}
	if math.Abs(age[0]-1e5) > 1e-9 {
		t.Errorf("star_age[0] = %v, want 1e5 (D exponent must parse)", age[0])
	}

	if d.Has("nonexistent") {
		t.Error("Has(nonexistent) = true, want false")
	}

	final, ok := d.Final("log_L")
	if !ok || math.Abs(final-2.7) > 1e-9 {
		t.Errorf("Final(log_L) = %v, %v, want 2.7, true", final, ok)
	}
}

func TestLoadHeaderValues(t *testing.T) {
	path := writeTable(t, t.TempDir(), "history.data", historyFixture)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	version, ok := d.HeaderString("version_number")
	if !ok || version != "15140" {
		t.Errorf("HeaderString(version_number) = %q, %v, want \"15140\", true", version, ok)
	}

	mass, ok := d.HeaderFloat("initial_mass")
	if !ok || math.Abs(mass-4.0) > 1e-9 {
		t.Errorf("HeaderFloat(initial_mass) = %v, %v, want 4.0, true (D exponent)", mass, ok)
	}

	if _, ok := d.HeaderString("no_such_header"); ok {
		t.Error("HeaderString(no_such_header) found, want missing")
	}
}

func TestFilterColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns string
		row     string
		want    []string
	}{
		{
			name:    "filters follow Flux_bol",
			columns: "model_number Flux_bol Gbp G Grp",
			row:     "1 1.0 2.0 3.0 4.0",
			want:    []string{"Gbp", "G", "Grp"},
		},
		{
			name:    "no Flux_bol means no filters",
			columns: "model_number log_L log_Teff",
			row:     "1 1.0 3.7",
			want:    nil,
		},
		{
			name:    "Flux_bol last means empty filters",
			columns: "model_number Flux_bol",
			row:     "1 1.0",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "1\nversion_number\n\"15140\"\n\n" +
				"1\n" + tt.columns + "\n" + tt.row + "\n"
			path := writeTable(t, t.TempDir(), "history.data", content)

			d, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			got := d.FilterColumns()
			if len(got) != len(tt.want) {
				t.Fatalf("FilterColumns() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("FilterColumns()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadDuplicateColumnKeepsFirst(t *testing.T) {
	content := "1\nversion_number\n\"15140\"\n\n" +
		"1 2 3\nmodel_number log_L model_number\n" +
		"1.0 2.5 9.0\n" +
		"2.0 2.7 8.0\n"
	path := writeTable(t, t.TempDir(), "history.data", content)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got, ok := d.Column("model_number")
	if !ok {
		t.Fatal("Column(model_number) not found")
	}
	want := []float64{1.0, 2.0}
	if len(got) != len(want) {
		t.Fatalf("Column(model_number) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Column(model_number)[%d] = %v, want %v (first occurrence wins)", i, got[i], want[i])
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "truncated preamble",
			content:     "1\nversion_number\n\"15140\"\n",
			errContains: "preamble",
		},
		{
			name: "ragged row",
			content: "1\nversion_number\n\"15140\"\n\n" +
				"1 2\nmodel_number star_age\n1 1.0 extra\n",
			errContains: "want 2",
		},
		{
			name: "non-numeric cell",
			content: "1\nversion_number\n\"15140\"\n\n" +
				"1 2\nmodel_number star_age\n1 not_a_number\n",
			errContains: "star_age",
		},
		{
			name: "header name/value mismatch",
			content: "1 2\nversion_number initial_mass\n\"15140\"\n\n" +
				"1\nmodel_number\n1\n",
			errContains: "header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTable(t, dir, "bad.data", tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Load() error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.data")); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.0", 1.0},
		{"1.5E+02", 150},
		{"1.5D+02", 150},
		{"-2.5d-01", -0.25},
		{"42", 42},
	}
	for _, tt := range tests {
		got, err := ParseFloat(tt.in)
		if err != nil {
			t.Errorf("ParseFloat(%q) error = %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFloat("abc"); err == nil {
		t.Error("ParseFloat(abc) should fail")
	}
}
