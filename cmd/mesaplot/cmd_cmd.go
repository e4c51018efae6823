package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/mesa"
	"github.com/mesa-tools/mesaplot/internal/photometry"
	"github.com/mesa-tools/mesaplot/internal/plot"
	"github.com/mesa-tools/mesaplot/internal/runs"
)

func newCMDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmd",
		Short: "Plot color-magnitude diagrams",
		Long: `Plot a color-magnitude diagram from the best photometric system in the
history table. Without filter columns the plot falls back to the
theoretical HR plane (log_Teff vs log_L).

With --all, every run in the batch directory is overlaid into one
diagram, colored by initial mass and dashed by overshoot scheme.

--color plots a specific color index instead of the detected system's
primary one, using the bluer band as the magnitude axis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			all, _ := cmd.Flags().GetBool("all")
			if all {
				return runBatchCMD(cmd, e)
			}
			return runSingleCMD(cmd, e)
		},
	}
	cmd.Flags().Bool("all", false, "Overlay every batch run into one diagram")
	cmd.Flags().Bool("gif", false, "Also write an animated GIF of the track")
	cmd.Flags().String("color", "", "Color index to plot, e.g. Gbp-Grp")
	return cmd
}

func runSingleCMD(cmd *cobra.Command, e *env) error {
	d, ok := e.singleRun(cmd)
	if !ok {
		return nil
	}

	var fig plot.Figure
	var sys *photometry.System
	name := "cmd_diagram"
	if spec, _ := cmd.Flags().GetString("color"); spec != "" {
		c, err := photometry.ParseColor(spec)
		if err != nil {
			return err
		}
		fig, err = customCMDFigure(d, c)
		if err != nil {
			e.logger.Warn("cannot build color-magnitude diagram", "error", err)
			return nil
		}
	} else {
		var err error
		fig, sys, err = cmdFigure(d, e)
		if err != nil {
			e.logger.Warn("cannot build color-magnitude diagram", "error", err)
			return nil
		}
		if sys == nil {
			name = "hr_diagram"
		}
	}

	sysName := ""
	if sys != nil {
		sysName = sys.Name
	}
	path, err := e.renderer.SavePNG(name, "cmd", sysName, fig)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	gif, _ := cmd.Flags().GetBool("gif")
	if gif {
		gifPath, err := e.renderer.SaveTrackGIF(name, "cmd", sysName, fig,
			e.cfg.Plots.GIFFrames, e.cfg.Plots.GIFDelay)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), gifPath)
	}
	return nil
}

// cmdFigure builds the color-magnitude track for a table, or the HR-plane
// track when no photometric system is available. The returned system is
// nil for the HR fallback.
func cmdFigure(d *mesa.Data, e *env) (plot.Figure, *photometry.System, error) {
	sys, ok := e.pickSystem(d)
	if !ok {
		return hrFigure(d)
	}

	color, err := sys.PrimaryColor.Values(d)
	if err != nil {
		return plot.Figure{}, nil, err
	}
	mag, ok := d.Column(sys.PrimaryMag)
	if !ok {
		return plot.Figure{}, nil, fmt.Errorf("missing magnitude column %s", sys.PrimaryMag)
	}
	return plot.Figure{
		Title:   fmt.Sprintf("Color-magnitude diagram (%s)", sys.Name),
		XLabel:  sys.PrimaryColor.Label(),
		YLabel:  sys.PrimaryMag,
		InvertY: true,
		Series:  []plot.Series{{X: color, Y: mag}},
	}, sys, nil
}

// customCMDFigure builds a color-magnitude track for an explicit band
// pair, with the bluer band on the magnitude axis.
func customCMDFigure(d *mesa.Data, c photometry.Color) (plot.Figure, error) {
	color, err := c.Values(d)
	if err != nil {
		return plot.Figure{}, err
	}
	mag, ok := d.Column(c.A)
	if !ok {
		return plot.Figure{}, fmt.Errorf("missing magnitude column %s", c.A)
	}
	return plot.Figure{
		Title:   fmt.Sprintf("Color-magnitude diagram (%s)", c.Label()),
		XLabel:  c.Label(),
		YLabel:  c.A,
		InvertY: true,
		Series:  []plot.Series{{X: color, Y: mag}},
	}, nil
}

func hrFigure(d *mesa.Data) (plot.Figure, *photometry.System, error) {
	teff, ok := d.Column("log_Teff")
	if !ok {
		return plot.Figure{}, nil, fmt.Errorf("no photometric filters and no log_Teff column")
	}
	lum, ok := d.Column("log_L")
	if !ok {
		return plot.Figure{}, nil, fmt.Errorf("no photometric filters and no log_L column")
	}
	return plot.Figure{
		Title:  "HR diagram",
		XLabel: "log_Teff",
		YLabel: "log_L",
		Series: []plot.Series{{X: teff, Y: lum}},
	}, nil, nil
}

func runBatchCMD(cmd *cobra.Command, e *env) error {
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

	fig := plot.Figure{
		Title:   fmt.Sprintf("Color-magnitude diagrams (%s)", sysName),
		InvertY: true,
	}
	for _, lr := range bySystem {
		color, err := lr.System.PrimaryColor.Values(lr.Data)
		if err != nil {
			e.logger.Warn("skipping run", "run", lr.Name, "error", err)
			continue
		}
		mag, ok := lr.Data.Column(lr.System.PrimaryMag)
		if !ok {
			e.logger.Warn("skipping run", "run", lr.Name, "error", "missing "+lr.System.PrimaryMag)
			continue
		}
		if fig.XLabel == "" {
			fig.XLabel = lr.System.PrimaryColor.Label()
			fig.YLabel = lr.System.PrimaryMag
		}
		fig.Series = append(fig.Series, plot.Series{
			Name:  runLabel(lr),
			X:     color,
			Y:     mag,
			Color: colors[lr.Params.Mass],
			Dash:  dashes[lr.Params.Scheme],
		})
	}
	if len(fig.Series) == 0 {
		e.logger.Warn("no runs left to plot")
		return nil
	}

	path, err := e.renderer.SavePNG("all_cmd_diagrams", "cmd", sysName, fig)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runLabel(lr *runs.Loaded) string {
	return fmt.Sprintf("M=%.1f %s", lr.Params.Mass, lr.Params.Scheme)
}
