// Package render draws autocorrelation series with gonum/plot.
package render

import (
	"image/color"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sartorproj/bitcorr/timeaxis"
)

// ErrEmptySeries is returned when there is nothing to draw.
var ErrEmptySeries = errors.New("render: empty autocorrelation series")

// Renderer turns an autocorrelation series into an image.
// axis is optional; when set, the lag axis also shows time offsets.
type Renderer interface {
	Render(w io.Writer, acf []float64, axis *timeaxis.Axis, title string) error
}

// Plot renders with gonum/plot.
type Plot struct {
	Format string // "png", "svg", "pdf", ... (default: "png")
	Width  vg.Length
	Height vg.Length
}

var _ Renderer = (*Plot)(nil)

// DefaultFormat is the image format used when none is given.
const DefaultFormat = "png"

// FormatOrDefault returns format, or DefaultFormat when it is empty.
func FormatOrDefault(format string) string {
	if format == "" {
		return DefaultFormat
	}
	return format
}

// NewPlot returns a 10x4 inch plot renderer for format.
func NewPlot(format string) *Plot {
	return &Plot{
		Format: FormatOrDefault(format),
		Width:  10 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

// Render draws acf against lag with a zero line and grid.
func (r *Plot) Render(w io.Writer, acf []float64, axis *timeaxis.Axis, title string) error {
	if len(acf) == 0 {
		return ErrEmptySeries
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Lag [samples]"
	p.Y.Label.Text = "Autocorrelation"

	if axis != nil {
		p.X.Label.Text += " / " + axis.Label()
		p.X.Tick.Marker = timeTicker{base: plot.DefaultTicks{}, axis: axis}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 200}
	grid.Horizontal.Color = color.Gray{Y: 200}

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Black
	zero.Width = vg.Points(0.8)

	pts := make(plotter.XYs, len(acf))
	for k, v := range acf {
		pts[k].X = float64(k)
		pts[k].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "building autocorrelation line")
	}
	line.Width = vg.Points(1.2)
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	p.Add(grid, zero, line)

	wt, err := p.WriterTo(r.Width, r.Height, r.Format)
	if err != nil {
		return errors.Wrapf(err, "creating %s canvas", r.Format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing plot")
	}
	return nil
}

// timeTicker labels each major lag tick with its time offset underneath.
type timeTicker struct {
	base plot.Ticker
	axis *timeaxis.Axis
}

func (t timeTicker) Ticks(min, max float64) []plot.Tick {
	ticks := t.base.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = tick.Label + "\n" + strconv.FormatFloat(t.axis.LagToTime(tick.Value), 'g', 4, 64)
	}
	return ticks
}
