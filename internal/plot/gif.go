package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/mesa-tools/mesaplot/internal/pathutil"
	"github.com/mesa-tools/mesaplot/internal/vecmath"
)

// SaveTrackGIF renders the figure's first series as a growing track over
// frames animation frames and writes <dir>/<name>.gif. delay is the
// inter-frame delay in hundredths of a second. Axis ranges are pinned to
// the full track so the view does not jump between frames.
func (r *Renderer) SaveTrackGIF(name, kind, system string, fig Figure, frames, delay int) (string, error) {
	if len(fig.Series) == 0 {
		return "", fmt.Errorf("building %s: figure has no series", name)
	}
	track := fig.Series[0]
	n := len(track.X)
	if n < 2 {
		return "", fmt.Errorf("building %s: track needs at least 2 points, have %d", name, n)
	}
	if frames < 2 {
		return "", fmt.Errorf("building %s: need at least 2 frames, got %d", name, frames)
	}
	if frames > n {
		frames = n
	}

	// Pin both axes to the full extent up front.
	full := fig
	if full.XRange == nil {
		min, max, ok := minMaxOf(track.X)
		if !ok {
			return "", fmt.Errorf("building %s: track has no finite x values", name)
		}
		full.XRange = &[2]float64{min, max}
	}
	if full.YRange == nil {
		min, max, ok := minMaxOf(track.Y)
		if !ok {
			return "", fmt.Errorf("building %s: track has no finite y values", name)
		}
		full.YRange = &[2]float64{min, max}
	}

	anim := &gif.GIF{LoopCount: 0}
	for i := 1; i <= frames; i++ {
		// Frame i shows the first ceil(i*n/frames) points.
		end := i * n / frames
		if end < 2 {
			end = 2
		}
		frameFig := full
		frameFig.Series = append([]Series{{
			Name:    track.Name,
			X:       track.X[:end],
			Y:       track.Y[:end],
			Scatter: track.Scatter,
			Color:   track.Color,
			Dash:    track.Dash,
		}}, full.Series[1:]...)

		frame, err := r.renderFrame(frameFig)
		if err != nil {
			return "", fmt.Errorf("building %s frame %d: %w", name, i, err)
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	path := filepath.Join(r.Dir, name+".gif")
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", pathutil.RedactPath(r.Dir), err)
	}
	if err := pathutil.ValidateOutputPath(path, []string{r.Dir}); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", pathutil.RedactPath(path), err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", pathutil.RedactPath(path), err)
	}

	r.Logger.Info("saved animation", "path", path, "frames", len(anim.Image))
	r.Manifest.Saved(path, kind, system, fig.Points())
	return path, nil
}

// renderFrame draws one chart into a palette-quantized frame.
func (r *Renderer) renderFrame(fig Figure) (*image.Paletted, error) {
	ch, err := r.buildChart(fig)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, err
	}

	paletted := image.NewPaletted(img.Bounds(), framePalette())
	draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})
	return paletted, nil
}

// framePalette builds the GIF palette: a gray ramp for background, text,
// and grid, plus the mass palette at full and half intensity.
func framePalette() color.Palette {
	var p color.Palette
	for v := 0; v <= 255; v += 17 {
		p = append(p, color.RGBA{uint8(v), uint8(v), uint8(v), 255})
	}
	for _, c := range massPalette {
		p = append(p, color.RGBA{c.R, c.G, c.B, 255})
		p = append(p, color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255})
	}
	return p
}

func minMaxOf(v []float64) (float64, float64, bool) {
	return vecmath.MinMax(v)
}
