package trace

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveCountsPlot renders a bar chart of per-instruction execution
// counts to an image file. The format is inferred from the extension
// (png, svg, pdf, ...).
func SaveCountsPlot(path string, counts []uint64, source [][]string) error {
	p := plot.New()
	p.Title.Text = "Instruction execution counts"
	p.Y.Label.Text = "Executions"
	p.X.Tick.Label.Rotation = -1.2
	p.X.Tick.Label.XAlign = -0.9

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
		labels[i] = fmt.Sprintf("%d: %s", i, strings.TrimSpace(strings.Join(source[i], " ")))
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
