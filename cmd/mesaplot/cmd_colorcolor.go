package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/photometry"
	"github.com/mesa-tools/mesaplot/internal/plot"
)

func newColorColorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colorcolor",
		Short: "Plot color-color planes for every available photometric system",
		Long: `Plot one PNG per color-color combination. Unlike the color-magnitude
diagram, systems do not shadow each other here: a table carrying both
GAIA and Johnson bands yields planes for both.

With --all, each system gets one scatter of every batch run's final
model in its first color-color plane.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			all, _ := cmd.Flags().GetBool("all")
			if all {
				return runBatchColorColor(cmd, e)
			}
			return runSingleColorColor(cmd, e)
		},
	}
	cmd.Flags().Bool("all", false, "Overlay batch runs per system")
	return cmd
}

func runSingleColorColor(cmd *cobra.Command, e *env) error {
	d, ok := e.singleRun(cmd)
	if !ok {
		return nil
	}

	systems := photometry.AllSystems(d.FilterColumns())
	if len(systems) == 0 {
		e.logger.Warn("no color-color planes available", "filters", d.FilterColumns())
		return nil
	}

	for _, sys := range systems {
		for _, plane := range sys.Planes {
			x, err := plane.X.Values(d)
			if err != nil {
				e.logger.Warn("skipping plane", "system", sys.Name, "error", err)
				continue
			}
			y, err := plane.Y.Values(d)
			if err != nil {
				e.logger.Warn("skipping plane", "system", sys.Name, "error", err)
				continue
			}
			fig := plot.Figure{
				Title:  fmt.Sprintf("%s %s vs %s", sys.Name, plane.Y.Label(), plane.X.Label()),
				XLabel: plane.X.Label(),
				YLabel: plane.Y.Label(),
				Series: []plot.Series{{X: x, Y: y}},
			}
			name := planeFileName(sys.Name, plane)
			e.savePNG(name, "colorcolor", sys.Name, fig)
			fmt.Fprintln(cmd.OutOrStdout(), name+".png")
		}
	}
	return nil
}

func runBatchColorColor(cmd *cobra.Command, e *env) error {
	loaded, ok := e.batch(cmd)
	if !ok {
		return nil
	}

	// Planes available in every run, keyed by system.
	type overlay struct {
		plane  photometry.ColorColor
		series []plot.Series
	}
	overlays := make(map[string]*overlay)
	var order []string

	masses := make([]float64, 0, len(loaded))
	for _, lr := range loaded {
		masses = append(masses, lr.Params.Mass)
	}
	colors := plot.MassColors(masses)

	for _, lr := range loaded {
		for _, sys := range photometry.AllSystems(lr.Data.FilterColumns()) {
			if len(sys.Planes) == 0 {
				continue
			}
			plane := sys.Planes[0]
			x, err := plane.X.Values(lr.Data)
			if err != nil {
				continue
			}
			y, err := plane.Y.Values(lr.Data)
			if err != nil {
				continue
			}
			if len(x) == 0 || len(y) == 0 {
				continue
			}
			ov := overlays[sys.Name]
			if ov == nil {
				ov = &overlay{plane: plane}
				overlays[sys.Name] = ov
				order = append(order, sys.Name)
			}
			ov.series = append(ov.series, plot.Series{
				Name:    runLabel(lr),
				X:       x[len(x)-1:],
				Y:       y[len(y)-1:],
				Scatter: true,
				Color:   colors[lr.Params.Mass],
			})
		}
	}
	if len(order) == 0 {
		e.logger.Warn("no color-color planes shared across runs")
		return nil
	}

	for _, sysName := range order {
		ov := overlays[sysName]
		fig := plot.Figure{
			Title:  fmt.Sprintf("%s final colors", sysName),
			XLabel: ov.plane.X.Label(),
			YLabel: ov.plane.Y.Label(),
			Series: ov.series,
		}
		name := "all_colorcolor_" + strings.ToLower(sysName)
		e.savePNG(name, "colorcolor", sysName, fig)
		fmt.Fprintln(cmd.OutOrStdout(), name+".png")
	}
	return nil
}

func planeFileName(system string, plane photometry.ColorColor) string {
	clean := func(c photometry.Color) string { return c.A + c.B }
	return strings.ToLower(fmt.Sprintf("colorcolor_%s_%s_%s", system, clean(plane.X), clean(plane.Y)))
}
