package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mesa-tools/mesaplot/internal/mesa"
)

const historyFixture = `                                1                 2                 3
                    version_number      initial_mass         initial_z
                          "r24.03"        4.0000D+00        1.4000D-02

                                1                 2                 3                 4
                         model_number          star_age          log_Teff             log_L
                        1.0000000D+00      1.0000000D+03      4.2000000D+00      2.5000000D+00
                        2.0000000D+00      2.0000000D+03      4.1000000D+00      2.7000000D+00
                        3.0000000D+00      3.0000000D+03      4.0500000D+00      2.9000000D+00
`

func loadFixture(t *testing.T) *mesa.Data {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.data")
	if err := os.WriteFile(path, []byte(historyFixture), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := mesa.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return d
}

func TestWriteArrowRoundTrip(t *testing.T) {
	d := loadFixture(t)
	path := filepath.Join(t.TempDir(), "history.arrow")

	if err := WriteArrow(path, d, nil); err != nil {
		t.Fatalf("WriteArrow() error = %v", err)
	}

	cols, err := ReadArrow(path)
	if err != nil {
		t.Fatalf("ReadArrow() error = %v", err)
	}
	if len(cols) != 4 {
		t.Fatalf("round trip produced %d columns, want 4", len(cols))
	}

	want, _ := d.Column("log_Teff")
	got := cols["log_Teff"]
	if len(got) != len(want) {
		t.Fatalf("log_Teff has %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("log_Teff[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWriteArrowColumnSubset(t *testing.T) {
	d := loadFixture(t)
	path := filepath.Join(t.TempDir(), "subset.arrow")

	if err := WriteArrow(path, d, []string{"star_age", "log_L"}); err != nil {
		t.Fatalf("WriteArrow() error = %v", err)
	}

	cols, err := ReadArrow(path)
	if err != nil {
		t.Fatalf("ReadArrow() error = %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("subset export produced %d columns, want 2", len(cols))
	}
	if _, ok := cols["model_number"]; ok {
		t.Error("model_number should not be exported")
	}
}

func TestWriteArrowUnknownColumn(t *testing.T) {
	d := loadFixture(t)
	path := filepath.Join(t.TempDir(), "bad.arrow")

	err := WriteArrow(path, d, []string{"no_such_column"})
	if err == nil {
		t.Fatal("WriteArrow() with unknown column should fail")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("failed export should not leave a file behind")
	}
}
