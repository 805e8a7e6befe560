package plots

import (
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/brookluers/survfit/fit"
)

// SurvivalBins is the number of histogram bins in the raw data figure.
const SurvivalBins = 15

// Survival writes a two panel figure of the survival times to path:
// the times sorted in decreasing order, and their histogram.
func Survival(x []float64, path string) error {
	f, err := survivalFigure(x)
	if err != nil {
		return err
	}
	return f.save(path)
}

func survivalFigure(x []float64) (*figure, error) {

	if len(x) == 0 {
		return nil, fit.ErrEmptySample
	}

	s := append([]float64(nil), x...)
	sort.Sort(sort.Reverse(sort.Float64Slice(s)))

	// The x axis is the rank only.
	pts := make(plotter.XYs, len(s))
	for i, v := range s {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Color = blue
	sc.GlyphStyle.Radius = vg.Points(3)

	left := plot.New()
	left.X.Label.Text = "Patient"
	left.Y.Label.Text = "Survival time (days)"
	left.Add(sc)

	h, err := histogram(x, SurvivalBins)
	if err != nil {
		return nil, err
	}

	right := plot.New()
	right.X.Label.Text = "Survival time (days)"
	right.Y.Label.Text = "Number of patients"
	right.Add(h)

	return &figure{
		panels:  []*plot.Plot{left, right},
		width:   10 * vg.Inch,
		height:  4 * vg.Inch,
		scatter: sc,
		hist:    h,
	}, nil
}
