package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mesa-tools/mesaplot/internal/mesa"
	"github.com/mesa-tools/mesaplot/internal/photometry"
	"github.com/mesa-tools/mesaplot/internal/plot"
	"github.com/mesa-tools/mesaplot/internal/runs"
)

func (s *Server) handleRuns(ctx context.Context, req *sdk.CallToolRequest, args RunsInput) (*sdk.CallToolResult, RunsOutput, error) {
	runsDir := args.RunsDir
	if runsDir == "" {
		runsDir = s.cfg.RunsDir
	}
	if runsDir == "" {
		return nil, RunsOutput{}, fmt.Errorf("no runs directory configured; pass runs_dir")
	}

	found, bad, err := runs.DiscoverBatch(runsDir)
	if err != nil {
		return nil, RunsOutput{}, err
	}

	out := RunsOutput{Skipped: bad}
	for _, r := range found {
		lr, err := runs.Load(r)
		if err != nil {
			s.logger.Warn("skipping run", "run", r.Name, "error", err)
			out.Skipped = append(out.Skipped, r.Name)
			continue
		}
		sum, err := runs.Summarize(lr)
		if err != nil {
			s.logger.Warn("skipping run", "run", r.Name, "error", err)
			out.Skipped = append(out.Skipped, r.Name)
			continue
		}
		out.Runs = append(out.Runs, sum)

		if s.catalog != nil {
			if err := s.catalog.Put(ctx, sum); err != nil {
				s.logger.Warn("failed to catalog run", "run", r.Name, "error", err)
			}
		}
	}
	out.Count = len(out.Runs)
	return nil, out, nil
}

func (s *Server) handleSummary(ctx context.Context, req *sdk.CallToolRequest, args SummaryInput) (*sdk.CallToolResult, SummaryOutput, error) {
	r, err := runFromDir(args.Dir)
	if err != nil {
		return nil, SummaryOutput{}, err
	}
	lr, err := runs.Load(r)
	if err != nil {
		return nil, SummaryOutput{}, err
	}
	sum, err := runs.Summarize(lr)
	if err != nil {
		return nil, SummaryOutput{}, err
	}

	if s.catalog != nil {
		if err := s.catalog.Put(ctx, sum); err != nil {
			s.logger.Warn("failed to catalog run", "run", r.Name, "error", err)
		}
	}
	return nil, SummaryOutput{Summary: sum, History: r.History}, nil
}

func (s *Server) handleColumns(ctx context.Context, req *sdk.CallToolRequest, args ColumnsInput) (*sdk.CallToolResult, ColumnsOutput, error) {
	d, err := mesa.Load(args.Path)
	if err != nil {
		return nil, ColumnsOutput{}, err
	}

	out := ColumnsOutput{
		HeaderNames: d.HeaderNames(),
		Columns:     d.Names(),
		Filters:     d.FilterColumns(),
		Rows:        d.Len(),
	}
	if sys, ok := photometry.Detect(out.Filters); ok {
		out.System = sys.Name
	}
	return nil, out, nil
}

func (s *Server) handlePlot(ctx context.Context, req *sdk.CallToolRequest, args PlotInput) (*sdk.CallToolResult, PlotOutput, error) {
	r, err := runFromDir(args.Dir)
	if err != nil {
		return nil, PlotOutput{}, err
	}
	lr, err := runs.Load(r)
	if err != nil {
		return nil, PlotOutput{}, err
	}

	renderer := plot.NewRenderer(s.cfg.PlotsDir, s.cfg.Width, s.cfg.Height, s.logger)

	var fig plot.Figure
	var name string
	switch args.Kind {
	case "cmd":
		name = "cmd_diagram"
		fig, err = cmdFigure(lr)
	case "core":
		name = "central_conditions"
		fig, err = coreFigure(lr)
	case "composition":
		name = "surface_composition"
		fig, err = compositionFigure(lr)
	case "lightcurve":
		name = "lightcurve"
		fig, err = lightcurveFigure(lr)
	default:
		return nil, PlotOutput{}, fmt.Errorf("unknown plot kind %q (want cmd, core, composition or lightcurve)", args.Kind)
	}
	if err != nil {
		return nil, PlotOutput{}, err
	}

	out := PlotOutput{System: lr.System.Name, Points: fig.Points()}
	path, err := renderer.SavePNG(name, args.Kind, lr.System.Name, fig)
	if err != nil {
		return nil, PlotOutput{}, err
	}
	out.Paths = append(out.Paths, path)

	if args.GIF && args.Kind == "cmd" {
		gifPath, err := renderer.SaveTrackGIF(name, args.Kind, lr.System.Name, fig, 30, 10)
		if err != nil {
			return nil, PlotOutput{}, err
		}
		out.Paths = append(out.Paths, gifPath)
	}
	return nil, out, nil
}

// runFromDir builds a Run from a single run directory, tolerating names
// that do not follow the batch naming convention.
func runFromDir(dir string) (runs.Run, error) {
	logs, ok := runs.LocateLogs(dir)
	if !ok {
		return runs.Run{}, fmt.Errorf("no LOGS directory found under %s", dir)
	}
	name := filepath.Base(dir)
	params, err := runs.ParseRunName(name)
	if err != nil {
		params = runs.Params{Metallicity: runs.DefaultMetallicity, Scheme: "unknown"}
	}
	return runs.Run{
		Name:    name,
		Dir:     dir,
		LogsDir: logs,
		History: filepath.Join(logs, "history.data"),
		Params:  params,
	}, nil
}

func cmdFigure(lr *runs.Loaded) (plot.Figure, error) {
	color, err := lr.System.PrimaryColor.Values(lr.Data)
	if err != nil {
		return plot.Figure{}, err
	}
	mag, ok := lr.Data.Column(lr.System.PrimaryMag)
	if !ok {
		return plot.Figure{}, fmt.Errorf("missing magnitude column %s", lr.System.PrimaryMag)
	}
	return plot.Figure{
		Title:   fmt.Sprintf("%s color-magnitude diagram", lr.Name),
		XLabel:  lr.System.PrimaryColor.Label(),
		YLabel:  lr.System.PrimaryMag,
		InvertY: true,
		Series:  []plot.Series{{Name: lr.Name, X: color, Y: mag}},
	}, nil
}

func coreFigure(lr *runs.Loaded) (plot.Figure, error) {
	rho, ok := lr.Data.Column("log_center_Rho")
	if !ok {
		return plot.Figure{}, fmt.Errorf("missing column log_center_Rho")
	}
	temp, ok := lr.Data.Column("log_center_T")
	if !ok {
		return plot.Figure{}, fmt.Errorf("missing column log_center_T")
	}
	return plot.Figure{
		Title:  fmt.Sprintf("%s central conditions", lr.Name),
		XLabel: "log_center_Rho",
		YLabel: "log_center_T",
		Series: []plot.Series{{Name: lr.Name, X: rho, Y: temp}},
	}, nil
}

func compositionFigure(lr *runs.Loaded) (plot.Figure, error) {
	age, label := runs.AgeMyr(lr.Data)
	if age == nil {
		return plot.Figure{}, fmt.Errorf("missing column star_age")
	}
	h1, okH := lr.Data.Column("surface_h1")
	he4, okHe := lr.Data.Column("surface_he4")
	if !okH || !okHe {
		return plot.Figure{}, fmt.Errorf("missing surface_h1/surface_he4 columns")
	}
	z := make([]float64, len(h1))
	for i := range h1 {
		z[i] = 1 - h1[i] - he4[i]
		if z[i] < 0 {
			z[i] = 0
		}
	}
	return plot.Figure{
		Title:  fmt.Sprintf("%s surface composition", lr.Name),
		XLabel: label,
		YLabel: "Mass fraction",
		Series: []plot.Series{
			{Name: "H", X: age, Y: h1},
			{Name: "He", X: age, Y: he4},
			{Name: "Z", X: age, Y: z},
		},
	}, nil
}

func lightcurveFigure(lr *runs.Loaded) (plot.Figure, error) {
	age, label := runs.AgeMyr(lr.Data)
	if age == nil {
		return plot.Figure{}, fmt.Errorf("missing column star_age")
	}
	mag, ok := lr.Data.Column(lr.System.PrimaryMag)
	if !ok {
		return plot.Figure{}, fmt.Errorf("missing magnitude column %s", lr.System.PrimaryMag)
	}
	return plot.Figure{
		Title:   fmt.Sprintf("%s lightcurve", lr.Name),
		XLabel:  label,
		YLabel:  lr.System.PrimaryMag,
		InvertY: true,
		Series:  []plot.Series{{Name: lr.Name, X: age, Y: mag}},
	}, nil
}
