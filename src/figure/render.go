package figure

import (
	"bytes"
	"errors"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptyChart is returned by Render and Export when no file produced a
// series. The viewer shows a blank plot instead; export is skipped.
var ErrEmptyChart = errors.New("figure: no series to render")

// Export dimensions: base width at 2x scale, height from the user ratio.
const (
	exportBaseWidth = 1600
	exportScale     = 2
)

// Compose assembles the chart description for the current snapshot. The X
// display range is forced to exactly [AngleMin, AngleMax] regardless of the
// data extent, and the legend (when enabled) sits inside the top-right of
// the plot area.
func Compose(p Params, files []UploadedFile, width, height int) (chart.Chart, error) {
	built := Build(p, files)
	if len(built) == 0 {
		return chart.Chart{}, ErrEmptyChart
	}
	series := make([]chart.Series, 0, len(built))
	for _, s := range built {
		xs, ys := s.X, s.Y
		if len(xs) == 1 {
			// go-chart needs a non-zero X delta per series; pad toward the
			// window interior so the synthetic point stays in range
			if xs[0]+1 > p.AngleMax && xs[0]-1 >= p.AngleMin {
				xs = []float64{xs[0] - 1, xs[0]}
			} else {
				xs = []float64{xs[0], xs[0] + 1}
			}
			ys = []float64{ys[0], ys[0]}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 2},
		})
	}
	ticks, minors := angleTicks(p.AngleMin, p.AngleMax)
	background := chart.Style{Padding: chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50}}
	canvasStyle := chart.Style{}
	if p.Transparent {
		background.FillColor = drawing.ColorTransparent
		canvasStyle.FillColor = drawing.ColorTransparent
	}
	xaxis := chart.XAxis{
		Name:  "2θ",
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: p.AngleMin, Max: p.AngleMax},
		// majors are labeled ticks only; without an explicit hide go-chart
		// would synthesize grid lines from the tick set
		GridMajorStyle: chart.Style{Hidden: true},
		GridMinorStyle: chart.Style{Hidden: true},
	}
	if len(minors) > 0 {
		xaxis.GridLines = minors
		xaxis.GridMinorStyle = chart.Style{
			StrokeColor: drawing.Color{R: 220, G: 220, B: 220, A: 255},
			StrokeWidth: 1,
		}
	}
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: background,
		Canvas:     canvasStyle,
		XAxis:      xaxis,
		Series:     series,
	}
	if p.ShowLegend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch, nil
}

// Render writes the chart as PNG. ErrEmptyChart means there was nothing to
// draw; the caller decides how to present a blank plot.
func Render(p Params, files []UploadedFile, width, height int, w io.Writer) error {
	ch, err := Compose(p, files, width, height)
	if err != nil {
		return err
	}
	return ch.Render(chart.PNG, w)
}

// ExportSize converts a width:height ratio into export pixel dimensions.
// Non-positive ratios fall back to 4:3.
func ExportSize(ratioW, ratioH float64) (int, int) {
	if ratioW <= 0 || ratioH <= 0 {
		ratioW, ratioH = 4, 3
	}
	w := exportBaseWidth * exportScale
	h := int(float64(w) * ratioH / ratioW)
	return w, h
}

// Export renders a high-resolution PNG for download at the given aspect
// ratio. The same chart description as the on-screen one is used; only the
// pixel dimensions and background mode differ.
func Export(p Params, files []UploadedFile, ratioW, ratioH float64) ([]byte, error) {
	w, h := ExportSize(ratioW, ratioH)
	var buf bytes.Buffer
	if err := Render(p, files, w, h, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
