package photometry

// ColorColor is one color-color plane: X on the abscissa, Y on the ordinate.
type ColorColor struct {
	X Color
	Y Color
}

// SystemPlanes holds the color-color planes available for one system.
type SystemPlanes struct {
	Name   string
	Planes []ColorColor
}

// AllSystems enumerates every photometric system with at least one
// color-color plane for the given filter columns. Unlike Detect, systems do
// not shadow each other here; a table carrying both GAIA and Johnson bands
// yields planes for both.
func AllSystems(filters []string) []SystemPlanes {
	have := make(map[string]bool, len(filters))
	for _, f := range filters {
		have[f] = true
	}

	var out []SystemPlanes

	if have["Gbp"] && have["G"] && have["Grp"] {
		out = append(out, SystemPlanes{
			Name: "GAIA",
			Planes: []ColorColor{
				{X: Color{"Gbp", "Grp"}, Y: Color{"Gbp", "G"}},
				{X: Color{"Gbp", "G"}, Y: Color{"G", "Grp"}},
			},
		})
	}

	if johnson := subset([]string{"U", "B", "V", "R", "I"}, have); len(johnson) >= 3 {
		var planes []ColorColor
		if have["U"] && have["B"] && have["V"] {
			planes = append(planes, ColorColor{X: Color{"U", "B"}, Y: Color{"B", "V"}})
		}
		if have["B"] && have["V"] && have["R"] {
			planes = append(planes, ColorColor{X: Color{"B", "V"}, Y: Color{"V", "R"}})
		}
		if have["V"] && have["R"] && have["I"] {
			planes = append(planes, ColorColor{X: Color{"V", "R"}, Y: Color{"R", "I"}})
		}
		if have["B"] && have["V"] && have["I"] {
			planes = append(planes, ColorColor{X: Color{"B", "V"}, Y: Color{"V", "I"}})
		}
		if len(planes) > 0 {
			out = append(out, SystemPlanes{Name: "Johnson", Planes: planes})
		}
	}

	if have["J"] && have["H"] && have["K"] {
		out = append(out, SystemPlanes{
			Name: "2MASS",
			Planes: []ColorColor{
				{X: Color{"J", "H"}, Y: Color{"H", "K"}},
				{X: Color{"J", "K"}, Y: Color{"H", "K"}},
			},
		})
	}

	if sdss := subset([]string{"u", "g", "r", "i", "z"}, have); len(sdss) >= 3 {
		var planes []ColorColor
		if have["u"] && have["g"] && have["r"] {
			planes = append(planes, ColorColor{X: Color{"u", "g"}, Y: Color{"g", "r"}})
		}
		if have["g"] && have["r"] && have["i"] {
			planes = append(planes, ColorColor{X: Color{"g", "r"}, Y: Color{"r", "i"}})
		}
		if have["r"] && have["i"] && have["z"] {
			planes = append(planes, ColorColor{X: Color{"r", "i"}, Y: Color{"i", "z"}})
		}
		if len(planes) > 0 {
			out = append(out, SystemPlanes{Name: "SDSS", Planes: planes})
		}
	}

	return out
}
