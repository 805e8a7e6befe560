package plots

import (
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/brookluers/survfit/fit"
)

// FitBins is the number of histogram bins in the fitted density figures.
const FitBins = 30

// curve is a density to overlay on the histogram.
type curve struct {
	label   string
	density func(float64) float64
	color   color.Color
	dashed  bool
}

// ExponentialFit writes a histogram of x with the fitted exponential
// density overlaid.
func ExponentialFit(x []float64, e fit.Exponential, path string) error {
	f, err := fitFigure(x, false, curve{density: e.Prob, color: red})
	if err != nil {
		return err
	}
	return f.save(path)
}

// ComparisonFit writes a histogram of x with both the exponential and
// the fatigue-life densities overlaid, and a legend.
func ComparisonFit(x []float64, e fit.Exponential, d fit.FatigueLife, path string) error {
	f, err := fitFigure(x, true,
		curve{label: "exp", density: e.Prob, color: red},
		curve{label: "BS", density: d.Prob, color: green, dashed: true},
	)
	if err != nil {
		return err
	}
	return f.save(path)
}

// fitFigure draws a FitBins histogram of x and the curves evaluated on
// fit.Grid, rescaled from density to counts.
func fitFigure(x []float64, legend bool, curves ...curve) (*figure, error) {

	if len(x) == 0 {
		return nil, fit.ErrEmptySample
	}

	mx := floats.Max(x)
	grid := fit.Grid(mx)
	scale := fit.CountScale(len(x), mx, FitBins)

	h, err := histogram(x, FitBins)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = "Survival time (days)"
	p.Y.Label.Text = "Number of patients"
	p.Add(h)

	f := &figure{
		panels: []*plot.Plot{p},
		width:  6 * vg.Inch,
		height: 4 * vg.Inch,
		hist:   h,
	}

	for _, c := range curves {
		y := fit.Curve(grid, c.density, scale)
		xy := make(plotter.XYs, len(grid))
		for i := range grid {
			xy[i].X = grid[i]
			xy[i].Y = y[i]
		}

		l, err := plotter.NewLine(xy)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = c.color
		l.LineStyle.Width = vg.Points(3)
		if c.dashed {
			l.LineStyle.Dashes = []vg.Length{vg.Points(8), vg.Points(4)}
		}

		p.Add(l)
		if legend {
			p.Legend.Add(c.label, l)
		}
		f.lines = append(f.lines, l)
	}
	p.Legend.Top = true

	return f, nil
}
