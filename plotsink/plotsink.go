// Package plotsink renders experiment outcomes to image files.
//
// The sink is a pure output boundary: it consumes plain slices produced by a
// finished run and never feeds anything back into the pipeline. Supported
// formats follow the file extension (.png, .svg, .pdf, ...).
package plotsink

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// Scatter writes a 2D scatter plot of (x, y) points colored by their integer
// label. Passing nil labels draws every point in one series.
func Scatter(path string, x, y []float64, labels []int, title, xlabel, ylabel string) error {
	n := len(x)
	if n == 0 {
		return errors.NewValueError("plotsink.Scatter", "no points to plot")
	}
	if len(y) != n {
		return errors.NewDimensionError("plotsink.Scatter", n, len(y), 0)
	}
	if labels != nil && len(labels) != n {
		return errors.NewDimensionError("plotsink.Scatter", n, len(labels), 0)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	// ラベルごとに系列を分けて色を割り当てる
	groups := make(map[int]plotter.XYs)
	for i := 0; i < n; i++ {
		label := 0
		if labels != nil {
			label = labels[i]
		}
		groups[label] = append(groups[label], plotter.XY{X: x[i], Y: y[i]})
	}

	keys := make([]int, 0, len(groups))
	for label := range groups {
		keys = append(keys, label)
	}
	sort.Ints(keys)

	for k, label := range keys {
		s, err := plotter.NewScatter(groups[label])
		if err != nil {
			return errors.Wrap(err, "plotsink.Scatter")
		}
		s.GlyphStyle.Color = plotutil.Color(k)
		s.GlyphStyle.Shape = plotutil.Shape(k)
		p.Add(s)
		if labels != nil {
			p.Legend.Add(fmt.Sprintf("cluster %d", label), s)
		}
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "plotsink.Scatter")
	}
	return nil
}

// Histogram writes a histogram of the values with the given bin count.
// Used to eyeball a feature's shape next to the classifier's verdict.
func Histogram(path string, values []float64, bins int, title string) error {
	if len(values) == 0 {
		return errors.NewValueError("plotsink.Histogram", "no values to plot")
	}
	if bins <= 0 {
		return errors.NewConfigurationError("bins", "bin count must be positive", bins)
	}

	p := plot.New()
	p.Title.Text = title

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return errors.Wrap(err, "plotsink.Histogram")
	}
	h.FillColor = plotutil.Color(0)
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "plotsink.Histogram")
	}
	return nil
}
