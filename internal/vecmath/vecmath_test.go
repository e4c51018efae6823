package vecmath

import (
	"math"
	"testing"
)

func TestSub(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want []float64
	}{
		{
			name: "simple difference",
			a:    []float64{1.2, 1.1, 1.0},
			b:    []float64{1.0, 0.95, 0.9},
			want: []float64{0.2, 0.15, 0.1},
		},
		{
			name: "different lengths",
			a:    []float64{1, 2},
			b:    []float64{1, 2, 3},
			want: nil,
		},
		{
			name: "empty",
			a:    nil,
			b:    nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sub(tt.a, tt.b)
			if len(got) != len(tt.want) {
				t.Fatalf("Sub() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("Sub()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiv(t *testing.T) {
	got := Div([]float64{2, 4, 1}, []float64{2, 2, 0})
	if got[0] != 1 || got[1] != 2 {
		t.Errorf("Div() = %v, want [1 2 NaN]", got)
	}
	if !math.IsNaN(got[2]) {
		t.Errorf("Div() by zero = %v, want NaN", got[2])
	}
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		name    string
		v       []float64
		wantMin float64
		wantMax float64
		wantOK  bool
	}{
		{"ordinary", []float64{3, 1, 2}, 1, 3, true},
		{"skips NaN and Inf", []float64{math.NaN(), 5, math.Inf(1), -2}, -2, 5, true},
		{"all NaN", []float64{math.NaN()}, 0, 0, false},
		{"empty", nil, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, ok := MinMax(tt.v)
			if ok != tt.wantOK {
				t.Fatalf("MinMax() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (min != tt.wantMin || max != tt.wantMax) {
				t.Errorf("MinMax() = %v, %v, want %v, %v", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestLinearFit(t *testing.T) {
	// Exact line y = 2x + 1.
	x := []float64{1, 2, 3, 4}
	y := []float64{3, 5, 7, 9}

	slope, intercept, ok := LinearFit(x, y)
	if !ok {
		t.Fatal("LinearFit() found no fit")
	}
	if math.Abs(slope-2) > 1e-9 || math.Abs(intercept-1) > 1e-9 {
		t.Errorf("LinearFit() = %v, %v, want 2, 1", slope, intercept)
	}

	// NaN rows are excluded, not propagated.
	slope, _, ok = LinearFit([]float64{1, math.NaN(), 2, 3}, []float64{3, 0, 5, 7})
	if !ok || math.Abs(slope-2) > 1e-9 {
		t.Errorf("LinearFit() with NaN row = %v, %v, want slope 2", slope, ok)
	}

	if _, _, ok := LinearFit([]float64{1}, []float64{1}); ok {
		t.Error("LinearFit() with one point should fail")
	}
	if _, _, ok := LinearFit([]float64{2, 2, 2}, []float64{1, 2, 3}); ok {
		t.Error("LinearFit() with constant x should fail")
	}
	if _, _, ok := LinearFit([]float64{1, 2}, []float64{1}); ok {
		t.Error("LinearFit() with mismatched lengths should fail")
	}
}

func TestPearson(t *testing.T) {
	r, ok := Pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	if !ok || math.Abs(r-1) > 1e-9 {
		t.Errorf("Pearson() = %v, %v, want 1", r, ok)
	}

	r, ok = Pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
	if !ok || math.Abs(r+1) > 1e-9 {
		t.Errorf("Pearson() = %v, %v, want -1", r, ok)
	}

	if _, ok := Pearson([]float64{1, 1, 1}, []float64{1, 2, 3}); ok {
		t.Error("Pearson() with zero variance should fail")
	}
}

func TestFinite(t *testing.T) {
	x := []float64{1, math.NaN(), 3, math.Inf(1)}
	y := []float64{1, 2, math.NaN(), 4}

	idx := Finite(x, y)
	if len(idx) != 1 || idx[0] != 0 {
		t.Errorf("Finite(x, y) = %v, want [0]", idx)
	}

	idx = Finite(x, nil)
	if len(idx) != 2 || idx[0] != 0 || idx[1] != 2 {
		t.Errorf("Finite(x, nil) = %v, want [0 2]", idx)
	}
}
