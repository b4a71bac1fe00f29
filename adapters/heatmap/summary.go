package heatmap

import (
	"fmt"
	"io"

	"polyheat/domain/fit"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SummaryPlot builds the companion chart of the heatmap: the mean
// difference per category, in final column order, with category labels
// on the X axis when requested.
func SummaryPlot(diff fit.Matrix, showLabels bool) (*plot.Plot, error) {
	if diff.IsEmpty() {
		return nil, fmt.Errorf("summary plot: empty difference matrix")
	}

	p := plot.New()
	p.Title.Text = "Mean differential response by category"
	p.Y.Label.Text = "mean(left - right)"

	points := make(plotter.XYs, diff.Cols())
	for j := 0; j < diff.Cols(); j++ {
		points[j].X = float64(j)
		points[j].Y = stat.Mean(diff.Column(j), nil)
	}
	if err := plotutil.AddLinePoints(p, "mean difference", points); err != nil {
		return nil, fmt.Errorf("summary plot: %w", err)
	}

	if showLabels {
		labels := append([]string(nil), diff.ColKeys...)
		p.X.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
			ticks := make([]plot.Tick, 0, len(labels))
			for j, l := range labels {
				ticks = append(ticks, plot.Tick{Value: float64(j), Label: l})
			}
			return ticks
		})
	}
	return p, nil
}

// WriteSummaryPNG renders the companion chart as PNG
func WriteSummaryPNG(diff fit.Matrix, showLabels bool, w io.Writer) error {
	p, err := SummaryPlot(diff, showLabels)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("summary plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("summary plot: %w", err)
	}
	return nil
}
