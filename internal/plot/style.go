package plot

import (
	"sort"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// massPalette cycles through distinguishable stroke colors for batch
// overlays, ordered cool to warm.
var massPalette = []drawing.Color{
	{R: 68, G: 1, B: 84, A: 255},
	{R: 59, G: 82, B: 139, A: 255},
	{R: 33, G: 145, B: 140, A: 255},
	{R: 94, G: 201, B: 98, A: 255},
	{R: 253, G: 231, B: 37, A: 255},
	{R: 240, G: 120, B: 24, A: 255},
	{R: 204, G: 41, B: 54, A: 255},
	{R: 120, G: 28, B: 109, A: 255},
}

// MassColors assigns each distinct mass a stable color, ascending by mass.
func MassColors(masses []float64) map[float64]drawing.Color {
	uniq := make(map[float64]bool)
	for _, m := range masses {
		uniq[m] = true
	}
	sorted := make([]float64, 0, len(uniq))
	for m := range uniq {
		sorted = append(sorted, m)
	}
	sort.Float64s(sorted)

	out := make(map[float64]drawing.Color, len(sorted))
	for i, m := range sorted {
		out[m] = massPalette[i%len(massPalette)]
	}
	return out
}

// schemeDashes holds the dash patterns cycled through for overshoot
// schemes. The first scheme seen draws solid.
var schemeDashes = [][]float64{
	nil,
	{8, 4},
	{8, 4, 2, 4},
	{2, 4},
}

// SchemeDashes assigns each distinct scheme a dash pattern in first-seen
// order. A nil pattern is a solid stroke.
func SchemeDashes(schemes []string) map[string][]float64 {
	out := make(map[string][]float64)
	for _, s := range schemes {
		if _, ok := out[s]; ok {
			continue
		}
		out[s] = schemeDashes[len(out)%len(schemeDashes)]
	}
	return out
}
