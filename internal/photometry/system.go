// Package photometry selects photometric systems from the filter columns a
// MESA history table carries. Selection is by column presence with a fixed
// priority: GAIA, then Johnson-Cousins, then 2MASS, then SDSS, then a
// custom pairing of whatever two filters exist.
package photometry

import (
	"fmt"
	"strings"

	"github.com/mesa-tools/mesaplot/internal/mesa"
	"github.com/mesa-tools/mesaplot/internal/vecmath"
)

// Color is an ordered band pair; its value is the magnitude difference A-B.
type Color struct {
	A string
	B string
}

// ParseColor parses a "B-V" style color name.
func ParseColor(s string) (Color, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok || a == "" || b == "" {
		return Color{}, fmt.Errorf("invalid color %q: want two bands joined by '-'", s)
	}
	return Color{A: a, B: b}, nil
}

// Label renders the color for axis labels, e.g. "Gbp - Grp".
func (c Color) Label() string { return c.A + " - " + c.B }

// Values computes the color index column from d, element-wise A-B.
func (c Color) Values(d *mesa.Data) ([]float64, error) {
	a, ok := d.Column(c.A)
	if !ok {
		return nil, fmt.Errorf("missing filter column %s", c.A)
	}
	b, ok := d.Column(c.B)
	if !ok {
		return nil, fmt.Errorf("missing filter column %s", c.B)
	}
	return vecmath.Sub(a, b), nil
}

// System describes one usable photometric system for a table.
type System struct {
	// Name is "GAIA", "Johnson", "2MASS", "SDSS", or "Custom".
	Name string

	// Filters are the bands of this system present in the table.
	Filters []string

	// PrimaryColor and PrimaryMag drive CMDs and lightcurves.
	PrimaryColor Color
	PrimaryMag   string

	// Colors lists every color index worth plotting for this system.
	Colors []Color
}

// Detect picks the best available system for the given filter columns.
// It reports false when fewer than two filters are present.
func Detect(filters []string) (*System, bool) {
	have := make(map[string]bool, len(filters))
	for _, f := range filters {
		have[f] = true
	}

	if have["Gbp"] && have["G"] && have["Grp"] {
		return &System{
			Name:         "GAIA",
			Filters:      []string{"Gbp", "G", "Grp"},
			PrimaryColor: Color{"Gbp", "Grp"},
			PrimaryMag:   "G",
			Colors:       []Color{{"Gbp", "Grp"}, {"Gbp", "G"}, {"G", "Grp"}},
		}, true
	}

	if have["B"] && have["V"] {
		available := subset([]string{"U", "B", "V", "R", "I"}, have)
		colors := []Color{{"B", "V"}}
		if have["V"] && have["R"] {
			colors = append(colors, Color{"V", "R"})
		}
		if have["U"] && have["B"] {
			colors = append(colors, Color{"U", "B"})
		}
		return &System{
			Name:         "Johnson",
			Filters:      available,
			PrimaryColor: Color{"B", "V"},
			PrimaryMag:   "V",
			Colors:       colors,
		}, true
	}

	if have["J"] && have["K"] {
		available := subset([]string{"J", "H", "K"}, have)
		colors := []Color{{"J", "K"}}
		if have["H"] && have["K"] {
			colors = append(colors, Color{"H", "K"})
		}
		return &System{
			Name:         "2MASS",
			Filters:      available,
			PrimaryColor: Color{"J", "K"},
			PrimaryMag:   "K",
			Colors:       colors,
		}, true
	}

	if have["g"] && have["r"] {
		available := subset([]string{"u", "g", "r", "i", "z"}, have)
		colors := []Color{{"g", "r"}}
		if have["r"] && have["i"] {
			colors = append(colors, Color{"r", "i"})
		}
		return &System{
			Name:         "SDSS",
			Filters:      available,
			PrimaryColor: Color{"g", "r"},
			PrimaryMag:   "r",
			Colors:       colors,
		}, true
	}

	// Custom fallback: first two filters in table order.
	if len(filters) >= 2 {
		c := Color{filters[0], filters[1]}
		return &System{
			Name:         "Custom",
			Filters:      []string{filters[0], filters[1]},
			PrimaryColor: c,
			PrimaryMag:   filters[0],
			Colors:       []Color{c},
		}, true
	}

	return nil, false
}

// ByName forces a named system if its required bands are present.
func ByName(name string, filters []string) (*System, bool) {
	sys, ok := Detect(orderedFor(name, filters))
	if !ok || !strings.EqualFold(sys.Name, name) {
		return nil, false
	}
	return sys, true
}

// orderedFor filters the available columns down to the named system's bands
// so Detect cannot pick a higher-priority system instead.
func orderedFor(name string, filters []string) []string {
	var bands []string
	switch strings.ToLower(name) {
	case "gaia":
		bands = []string{"Gbp", "G", "Grp"}
	case "johnson":
		bands = []string{"U", "B", "V", "R", "I"}
	case "2mass":
		bands = []string{"J", "H", "K"}
	case "sdss":
		bands = []string{"u", "g", "r", "i", "z"}
	default:
		return nil
	}
	have := make(map[string]bool, len(filters))
	for _, f := range filters {
		have[f] = true
	}
	return subset(bands, have)
}

func subset(bands []string, have map[string]bool) []string {
	var out []string
	for _, b := range bands {
		if have[b] {
			out = append(out, b)
		}
	}
	return out
}
