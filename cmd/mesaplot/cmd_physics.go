package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/photometry"
	"github.com/mesa-tools/mesaplot/internal/plot"
	"github.com/mesa-tools/mesaplot/internal/runs"
	"github.com/mesa-tools/mesaplot/internal/vecmath"
)

// physicsColumns are the structural quantities plotted against the
// photometry. Mass loss is special-cased: only rows with an appreciable
// wind (log_abs_mdot > -10) are kept.
var physicsColumns = []string{"log_center_T", "log_center_Rho", "log_L", "log_R", "log_abs_mdot"}

const mdotFloor = -10.0

func newPhysicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "physics",
		Short: "Relate photometry to stellar structure",
		Long: `Plot the primary color and magnitude against central temperature and
density, luminosity, radius and mass-loss rate, annotating each panel
with its Pearson correlation.

With --all, the final color and magnitude of every batch run are plotted
against initial mass with least-squares trend lines, slope in the
legend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			all, _ := cmd.Flags().GetBool("all")
			if all {
				return runBatchPhysics(cmd, e)
			}
			return runSinglePhysics(cmd, e)
		},
	}
	cmd.Flags().Bool("all", false, "Plot mass-scaling relations across the batch")
	return cmd
}

func runSinglePhysics(cmd *cobra.Command, e *env) error {
	d, ok := e.singleRun(cmd)
	if !ok {
		return nil
	}
	sys, ok := e.pickSystem(d)
	if !ok {
		e.logger.Warn("no photometric system available", "filters", d.FilterColumns())
		return nil
	}

	color, err := sys.PrimaryColor.Values(d)
	if err != nil {
		e.logger.Warn("cannot compute primary color", "error", err)
		return nil
	}
	mag, ok := d.Column(sys.PrimaryMag)
	if !ok {
		e.logger.Warn("missing magnitude column", "column", sys.PrimaryMag)
		return nil
	}

	for _, col := range physicsColumns {
		q, ok := d.Column(col)
		if !ok {
			e.logger.Debug("skipping absent column", "column", col)
			continue
		}
		x, yColor, yMag := q, color, mag
		if col == "log_abs_mdot" {
			x, yColor, yMag = filterMdot(q, color, mag)
			if len(x) == 0 {
				e.logger.Debug("no rows above mass-loss floor", "column", col)
				continue
			}
		}

		physicsPanel(cmd, e, sys, col, x, yColor, sys.PrimaryColor.Label(), "color", false)
		physicsPanel(cmd, e, sys, col, x, yMag, sys.PrimaryMag, "mag", true)
	}
	return nil
}

func physicsPanel(cmd *cobra.Command, e *env, sys *photometry.System, col string, x, y []float64, yLabel, which string, invert bool) {
	name := fmt.Sprintf("physics_%s_vs_%s", which, strings.ToLower(col))
	label := yLabel
	if r, ok := vecmath.Pearson(x, y); ok {
		label = fmt.Sprintf("%s (r=%.2f)", yLabel, r)
	}
	fig := plot.Figure{
		Title:   fmt.Sprintf("%s vs %s", yLabel, col),
		XLabel:  col,
		YLabel:  yLabel,
		InvertY: invert,
		Series:  []plot.Series{{Name: label, X: x, Y: y}},
	}
	e.savePNG(name, "physics", sys.Name, fig)
	fmt.Fprintln(cmd.OutOrStdout(), name+".png")
}

// filterMdot keeps the rows where the mass-loss rate is above the floor.
func filterMdot(mdot, color, mag []float64) (x, yColor, yMag []float64) {
	for i, v := range mdot {
		if v <= mdotFloor {
			continue
		}
		x = append(x, v)
		yColor = append(yColor, color[i])
		yMag = append(yMag, mag[i])
	}
	return x, yColor, yMag
}

func runBatchPhysics(cmd *cobra.Command, e *env) error {
	loaded, ok := e.batch(cmd)
	if !ok {
		return nil
	}

	sysName, bySystem := runs.CommonSystem(loaded)

	var mass, finalColor, finalMag []float64
	var colorLabel, magLabel string
	for _, lr := range bySystem {
		sum, err := runs.Summarize(lr)
		if err != nil {
			e.logger.Warn("skipping run", "run", lr.Name, "error", err)
			continue
		}
		mass = append(mass, sum.Mass)
		finalColor = append(finalColor, sum.Color)
		finalMag = append(finalMag, sum.Magnitude)
		if colorLabel == "" {
			colorLabel = lr.System.PrimaryColor.Label()
			magLabel = lr.System.PrimaryMag
		}
	}
	if len(mass) == 0 {
		e.logger.Warn("no runs left to plot")
		return nil
	}

	massScalingPanel(cmd, e, sysName, "all_mass_vs_color", "Final color vs initial mass", colorLabel, mass, finalColor, false)
	massScalingPanel(cmd, e, sysName, "all_mass_vs_mag", "Final magnitude vs initial mass", magLabel, mass, finalMag, true)
	return nil
}

func massScalingPanel(cmd *cobra.Command, e *env, sysName, name, title, yLabel string, mass, y []float64, invert bool) {
	fig := plot.Figure{
		Title:   title,
		XLabel:  "Initial mass (Msun)",
		YLabel:  yLabel,
		InvertY: invert,
		Series: []plot.Series{
			{Name: "runs", X: mass, Y: y, Scatter: true},
		},
	}
	if slope, intercept, ok := vecmath.LinearFit(mass, y); ok {
		min, max, _ := vecmath.MinMax(mass)
		fig.Series = append(fig.Series, plot.Series{
			Name: fmt.Sprintf("fit (slope=%.3f)", slope),
			X:    []float64{min, max},
			Y:    []float64{slope*min + intercept, slope*max + intercept},
		})
	}
	e.savePNG(name, "physics", sysName, fig)
	fmt.Fprintln(cmd.OutOrStdout(), name+".png")
}
