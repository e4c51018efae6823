// Package plot renders figures to PNG and GIF files with go-chart. It owns
// the conventions every command shares: the inverted magnitude axis, the
// mass color palette, scheme dash styles, and the plots/ output directory.
package plot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mesa-tools/mesaplot/internal/logging"
	"github.com/mesa-tools/mesaplot/internal/pathutil"
	"github.com/mesa-tools/mesaplot/internal/vecmath"
)

// Series is one line or scatter trace of a figure.
type Series struct {
	Name    string
	X       []float64
	Y       []float64
	Scatter bool
	Color   drawing.Color
	Dash    []float64
}

// Figure describes one chart to render.
type Figure struct {
	Title  string
	XLabel string
	YLabel string

	// InvertY renders the Y axis with larger values at the bottom, the
	// convention for astronomical magnitudes.
	InvertY bool

	// XRange and YRange pin an axis domain; nil means auto from the data.
	XRange *[2]float64
	YRange *[2]float64

	Series []Series
}

// Points returns the total number of data points across all series.
func (f Figure) Points() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.X)
	}
	return n
}

// Renderer writes figures into an output directory and records each saved
// artifact in the plot manifest.
type Renderer struct {
	Dir    string
	Width  int
	Height int

	Logger   *slog.Logger
	Manifest *logging.PlotLogger
}

// NewRenderer creates a renderer writing into dir at the given pixel size.
// The directory is created on first save, not here.
func NewRenderer(dir string, width, height int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{Dir: dir, Width: width, Height: height, Logger: logger}
}

// SavePNG renders the figure to <dir>/<name>.png and returns the path.
func (r *Renderer) SavePNG(name, kind, system string, fig Figure) (string, error) {
	ch, err := r.buildChart(fig)
	if err != nil {
		return "", fmt.Errorf("building %s: %w", name, err)
	}

	path := filepath.Join(r.Dir, name+".png")
	if err := r.writeChart(ch, path); err != nil {
		return "", err
	}

	r.Logger.Info("saved plot", "path", path)
	r.Manifest.Saved(path, kind, system, fig.Points())
	return path, nil
}

func (r *Renderer) writeChart(ch *chart.Chart, path string) error {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", pathutil.RedactPath(r.Dir), err)
	}
	if err := pathutil.ValidateOutputPath(path, []string{r.Dir}); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", pathutil.RedactPath(path), err)
	}
	defer f.Close()

	if err := ch.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render %s: %w", pathutil.RedactPath(path), err)
	}
	return nil
}

// buildChart translates a Figure into a go-chart Chart. Magnitude axes are
// inverted by negating the values and flipping the sign back in the tick
// formatter, since go-chart has no descending range.
func (r *Renderer) buildChart(fig Figure) (*chart.Chart, error) {
	if len(fig.Series) == 0 {
		return nil, fmt.Errorf("figure %q has no series", fig.Title)
	}

	var series []chart.Series
	var allY []float64
	var allX []float64
	for _, s := range fig.Series {
		if len(s.X) == 0 || len(s.X) != len(s.Y) {
			continue
		}
		y := s.Y
		if fig.InvertY {
			y = vecmath.Scale(s.Y, -1)
		}
		st := seriesStyle(s)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: y,
			Style:   st,
		})
		allX = append(allX, s.X...)
		allY = append(allY, y...)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("figure %q has no drawable series", fig.Title)
	}

	xRange, err := axisRange(fig.XRange, allX, false)
	if err != nil {
		return nil, fmt.Errorf("figure %q x axis: %w", fig.Title, err)
	}
	yRange, err := axisRange(fig.YRange, allY, fig.InvertY)
	if err != nil {
		return nil, fmt.Errorf("figure %q y axis: %w", fig.Title, err)
	}

	yFormatter := chart.FloatValueFormatter
	if fig.InvertY {
		yFormatter = invertedValueFormatter
	}

	ch := &chart.Chart{
		Title:  fig.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  fig.XLabel,
			Range: xRange,
		},
		YAxis: chart.YAxis{
			Name:           fig.YLabel,
			Range:          yRange,
			ValueFormatter: yFormatter,
		},
		Series: series,
	}

	if named(fig.Series) {
		ch.Elements = []chart.Renderable{chart.Legend(ch)}
	}
	return ch, nil
}

// axisRange pins the axis domain explicitly; go-chart degenerates when a
// series is constant, so equal extents get symmetric padding.
func axisRange(fixed *[2]float64, values []float64, invert bool) (*chart.ContinuousRange, error) {
	var lo, hi float64
	if fixed != nil {
		lo, hi = fixed[0], fixed[1]
		if invert {
			lo, hi = -fixed[1], -fixed[0]
		}
	} else {
		min, max, ok := vecmath.MinMax(values)
		if !ok {
			return nil, fmt.Errorf("no finite values")
		}
		lo, hi = min, max
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}, nil
}

func invertedValueFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return chart.FloatValueFormatter(v)
	}
	return chart.FloatValueFormatter(-f)
}

func seriesStyle(s Series) chart.Style {
	st := chart.Style{
		StrokeColor: s.Color,
		StrokeWidth: 2.0,
	}
	if s.Color.IsZero() {
		st.StrokeColor = chart.ColorBlue
	}
	if len(s.Dash) > 0 {
		st.StrokeDashArray = s.Dash
	}
	if s.Scatter {
		st.StrokeWidth = chart.Disabled
		st.DotColor = st.StrokeColor
		st.DotWidth = 4.0
	}
	return st
}

func named(series []Series) bool {
	for _, s := range series {
		if s.Name != "" {
			return true
		}
	}
	return false
}
