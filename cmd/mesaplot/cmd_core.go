package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/mesa"
	"github.com/mesa-tools/mesaplot/internal/plot"
	"github.com/mesa-tools/mesaplot/internal/runs"
	"github.com/mesa-tools/mesaplot/internal/vecmath"
)

func newCoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "core",
		Short: "Plot core mass evolution",
		Long: `Plot the convective core mass and core mass fraction against age,
using the best available core column (he_core_mass, mass_conv_core, or
conv_mx1_top scaled by the total mass).

With --all, the batch view compares final core masses against initial
mass and overlays the core growth of every run against log age.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			all, _ := cmd.Flags().GetBool("all")
			if all {
				return runBatchCore(cmd, e)
			}
			return runSingleCore(cmd, e)
		},
	}
	cmd.Flags().Bool("all", false, "Compare core masses across the batch")
	return cmd
}

func runSingleCore(cmd *cobra.Command, e *env) error {
	d, ok := e.singleRun(cmd)
	if !ok {
		return nil
	}

	core, coreLabel, ok := runs.CoreMass(d)
	if !ok {
		e.logger.Warn("history has no core mass column", "tried", runs.CoreMassColumns)
		return nil
	}
	age, ageLabel := runs.AgeMyr(d)

	fig := plot.Figure{
		Title:  "Core mass evolution",
		XLabel: ageLabel,
		YLabel: coreLabel + " (Msun)",
		Series: []plot.Series{{X: age, Y: core}},
	}
	e.savePNG("core_mass", "core", "", fig)
	fmt.Fprintln(cmd.OutOrStdout(), "core_mass.png")

	if star, ok := d.Column("star_mass"); ok {
		frac := vecmath.Div(core, star)
		fig := plot.Figure{
			Title:  "Core mass fraction evolution",
			XLabel: ageLabel,
			YLabel: coreLabel + " / star_mass",
			Series: []plot.Series{{X: age, Y: frac}},
		}
		e.savePNG("core_mass_fraction", "core", "", fig)
		fmt.Fprintln(cmd.OutOrStdout(), "core_mass_fraction.png")
	}
	return nil
}

func runBatchCore(cmd *cobra.Command, e *env) error {
	loaded, ok := e.batch(cmd)
	if !ok {
		return nil
	}

	masses := make([]float64, 0, len(loaded))
	schemes := make([]string, 0, len(loaded))
	for _, lr := range loaded {
		masses = append(masses, lr.Params.Mass)
		schemes = append(schemes, lr.Params.Scheme)
	}
	colors := plot.MassColors(masses)
	dashes := plot.SchemeDashes(schemes)

	final := plot.Figure{
		Title:  "Final core mass vs initial mass",
		XLabel: "Initial mass (Msun)",
		YLabel: "Final core mass (Msun)",
	}
	growth := plot.Figure{
		Title:  "Core mass growth",
		YLabel: "Core mass (Msun)",
	}

	var finalX, finalY []float64
	for _, lr := range loaded {
		core, _, ok := runs.CoreMass(lr.Data)
		if !ok {
			e.logger.Warn("skipping run without core mass", "run", lr.Name)
			continue
		}
		finalX = append(finalX, lr.Params.Mass)
		finalY = append(finalY, core[len(core)-1])

		ages, ageLabel := logAge(lr.Data)
		x, y := finitePairs(ages, core)
		if growth.XLabel == "" {
			growth.XLabel = ageLabel
		}
		growth.Series = append(growth.Series, plot.Series{
			Name:  runLabel(lr),
			X:     x,
			Y:     y,
			Color: colors[lr.Params.Mass],
			Dash:  dashes[lr.Params.Scheme],
		})
	}
	if len(finalX) == 0 {
		e.logger.Warn("no runs with core mass columns")
		return nil
	}
	final.Series = []plot.Series{{Name: "runs", X: finalX, Y: finalY, Scatter: true}}

	e.savePNG("all_core_masses", "core", "", final)
	fmt.Fprintln(cmd.OutOrStdout(), "all_core_masses.png")
	e.savePNG("all_core_evolution", "core", "", growth)
	fmt.Fprintln(cmd.OutOrStdout(), "all_core_evolution.png")
	return nil
}

// finitePairs drops the points where either coordinate is NaN or infinite.
func finitePairs(x, y []float64) ([]float64, []float64) {
	idx := vecmath.Finite(x, y)
	outX := make([]float64, 0, len(idx))
	outY := make([]float64, 0, len(idx))
	for _, i := range idx {
		outX = append(outX, x[i])
		outY = append(outY, y[i])
	}
	return outX, outY
}

// logAge is log10 of star_age in years, with non-positive ages mapped to
// NaN so they drop out of range fitting. The returned label records the
// model_number fallback when the table has no age column.
func logAge(d *mesa.Data) ([]float64, string) {
	age, ok := d.Column("star_age")
	if !ok {
		models, _ := d.Column("model_number")
		return models, "model_number"
	}
	out := make([]float64, len(age))
	for i, v := range age {
		if v <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Log10(v)
	}
	return out, "log age (yr)"
}
