package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/plot"
	"github.com/mesa-tools/mesaplot/internal/runs"
)

func newLightcurveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lightcurve",
		Short: "Plot magnitude and color evolution across the batch",
		Long: `Overlay the primary-magnitude and primary-color evolution of every
batch run, restricted to the most common photometric system so the
curves share an axis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			loaded, ok := e.batch(cmd)
			if !ok {
				return nil
			}

			sysName, bySystem := runs.CommonSystem(loaded)
			if len(bySystem) < len(loaded) {
				e.logger.Warn("dropping runs outside the common photometric system",
					"system", sysName, "kept", len(bySystem), "total", len(loaded))
			}

			masses := make([]float64, 0, len(bySystem))
			schemes := make([]string, 0, len(bySystem))
			for _, lr := range bySystem {
				masses = append(masses, lr.Params.Mass)
				schemes = append(schemes, lr.Params.Scheme)
			}
			colors := plot.MassColors(masses)
			dashes := plot.SchemeDashes(schemes)

			magFig := plot.Figure{
				Title:   fmt.Sprintf("Lightcurves (%s)", sysName),
				InvertY: true,
			}
			colorFig := plot.Figure{
				Title: fmt.Sprintf("Color evolution (%s)", sysName),
			}

			for _, lr := range bySystem {
				age, ageLabel := runs.AgeMyr(lr.Data)
				mag, ok := lr.Data.Column(lr.System.PrimaryMag)
				if !ok {
					e.logger.Warn("skipping run", "run", lr.Name, "error", "missing "+lr.System.PrimaryMag)
					continue
				}
				color, err := lr.System.PrimaryColor.Values(lr.Data)
				if err != nil {
					e.logger.Warn("skipping run", "run", lr.Name, "error", err)
					continue
				}
				if magFig.XLabel == "" {
					magFig.XLabel = ageLabel
					magFig.YLabel = lr.System.PrimaryMag
					colorFig.XLabel = ageLabel
					colorFig.YLabel = lr.System.PrimaryColor.Label()
				}
				style := plot.Series{
					Name:  runLabel(lr),
					Color: colors[lr.Params.Mass],
					Dash:  dashes[lr.Params.Scheme],
				}
				magSeries := style
				magSeries.X, magSeries.Y = age, mag
				magFig.Series = append(magFig.Series, magSeries)

				colorSeries := style
				colorSeries.X, colorSeries.Y = age, color
				colorFig.Series = append(colorFig.Series, colorSeries)
			}
			if len(magFig.Series) == 0 {
				e.logger.Warn("no runs left to plot")
				return nil
			}

			e.savePNG("all_lightcurves", "lightcurve", sysName, magFig)
			fmt.Fprintln(cmd.OutOrStdout(), "all_lightcurves.png")
			e.savePNG("all_color_evolution", "lightcurve", sysName, colorFig)
			fmt.Fprintln(cmd.OutOrStdout(), "all_color_evolution.png")
			return nil
		},
	}
}
