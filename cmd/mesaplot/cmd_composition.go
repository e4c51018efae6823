package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/mesa"
	"github.com/mesa-tools/mesaplot/internal/plot"
	"github.com/mesa-tools/mesaplot/internal/runs"
	"github.com/mesa-tools/mesaplot/internal/vecmath"
)

func newCompositionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "composition",
		Short: "Plot interior and surface composition",
		Long: `Plot the hydrogen, helium and metal mass fractions of the latest
profile against the fractional mass coordinate m/Mstar, and the surface
composition history against age.

With --all, the latest hydrogen profiles of every batch run are overlaid
in one figure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			all, _ := cmd.Flags().GetBool("all")
			if all {
				return runBatchComposition(cmd, e)
			}
			return runSingleComposition(cmd, e)
		},
	}
	cmd.Flags().Bool("all", false, "Overlay hydrogen profiles of every batch run")
	return cmd
}

func runSingleComposition(cmd *cobra.Command, e *env) error {
	logsDir, ok := e.logsDirOf(cmd)
	if !ok {
		e.logger.Warn("no LOGS directory found; pass --logs")
		return nil
	}

	if p, err := mesa.LatestProfile(logsDir); err != nil {
		e.logger.Warn("no readable profile files", "dir", logsDir, "error", err)
	} else {
		profileComposition(cmd, e, p)
	}

	d, ok := e.singleRun(cmd)
	if !ok {
		return nil
	}
	surfaceEvolution(cmd, e, d)
	return nil
}

func profileComposition(cmd *cobra.Command, e *env, p *mesa.Data) {
	xq, ok := massCoordinate(p)
	if !ok {
		e.logger.Warn("profile has no mass column", "path", p.Path)
		return
	}
	h1, okH := p.Column("h1")
	he4, okHe := p.Column("he4")
	if !okH || !okHe {
		e.logger.Warn("profile lacks h1/he4 columns", "path", p.Path)
		return
	}

	domain := [2]float64{0, 1}
	fig := plot.Figure{
		Title:  "Final composition profile",
		XLabel: "m / Mstar",
		YLabel: "Mass fraction",
		XRange: &domain,
		Series: []plot.Series{
			{Name: "H", X: xq, Y: h1},
			{Name: "He", X: xq, Y: he4},
			{Name: "Z", X: xq, Y: metals(h1, he4)},
		},
	}
	e.savePNG("composition_profile", "composition", "", fig)
	fmt.Fprintln(cmd.OutOrStdout(), "composition_profile.png")
}

func surfaceEvolution(cmd *cobra.Command, e *env, d *mesa.Data) {
	age, label := runs.AgeMyr(d)
	h1, okH := d.Column("surface_h1")
	he4, okHe := d.Column("surface_he4")
	if !okH || !okHe {
		e.logger.Warn("history lacks surface_h1/surface_he4 columns")
		return
	}

	fig := plot.Figure{
		Title:  "Surface composition evolution",
		XLabel: label,
		YLabel: "Mass fraction",
		Series: []plot.Series{
			{Name: "H", X: age, Y: h1},
			{Name: "He", X: age, Y: he4},
			{Name: "Z", X: age, Y: metals(h1, he4)},
		},
	}
	e.savePNG("surface_composition", "composition", "", fig)
	fmt.Fprintln(cmd.OutOrStdout(), "surface_composition.png")
}

func runBatchComposition(cmd *cobra.Command, e *env) error {
	loaded, ok := e.batch(cmd)
	if !ok {
		return nil
	}

	masses := make([]float64, 0, len(loaded))
	for _, lr := range loaded {
		masses = append(masses, lr.Params.Mass)
	}
	colors := plot.MassColors(masses)

	domain := [2]float64{0, 1}
	fig := plot.Figure{
		Title:  "Final hydrogen profiles",
		XLabel: "m / Mstar",
		YLabel: "h1 mass fraction",
		XRange: &domain,
	}
	for _, lr := range loaded {
		p, err := mesa.LatestProfile(lr.LogsDir)
		if err != nil {
			e.logger.Warn("skipping run without profiles", "run", lr.Name, "error", err)
			continue
		}
		xq, ok := massCoordinate(p)
		if !ok {
			e.logger.Warn("skipping run", "run", lr.Name, "error", "no mass column")
			continue
		}
		h1, ok := p.Column("h1")
		if !ok {
			e.logger.Warn("skipping run", "run", lr.Name, "error", "no h1 column")
			continue
		}
		fig.Series = append(fig.Series, plot.Series{
			Name:  runLabel(lr),
			X:     xq,
			Y:     h1,
			Color: colors[lr.Params.Mass],
		})
	}
	if len(fig.Series) == 0 {
		e.logger.Warn("no profiles to plot")
		return nil
	}

	path, err := e.renderer.SavePNG("all_hydrogen_profiles", "composition", "", fig)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// massCoordinate returns m/Mstar for each zone, clamped to [0, 1]. The
// total mass comes from the star_mass header when present, else the
// surface zone's mass value.
func massCoordinate(p *mesa.Data) ([]float64, bool) {
	m, ok := p.Column("mass")
	if !ok {
		return nil, false
	}
	total, ok := p.HeaderFloat("star_mass")
	if !ok || total <= 0 {
		_, total, _ = vecmath.MinMax(m)
	}
	if total <= 0 {
		return nil, false
	}
	out := vecmath.Scale(m, 1/total)
	for i, v := range out {
		if v < 0 {
			out[i] = 0
		} else if v > 1 {
			out[i] = 1
		}
	}
	return out, true
}

// metals computes Z = 1 - X - Y pointwise.
func metals(h1, he4 []float64) []float64 {
	z := make([]float64, len(h1))
	for i := range h1 {
		z[i] = 1 - h1[i] - he4[i]
		if z[i] < 0 {
			z[i] = 0
		}
	}
	return z
}
