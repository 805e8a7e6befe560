// Package plots draws survival data and fitted densities.
package plots

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Output formats, selected by file extension.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// ErrNoDestination is returned when a figure is saved without a path.
var ErrNoDestination = errors.New("no output path for figure")

// defaultFormat is used for output paths without an extension.
const defaultFormat = "png"

var (
	blue  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	green = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// figure is a row of panels ready to be written to a file.
type figure struct {
	panels []*plot.Plot
	width  vg.Length
	height vg.Length

	// Parts of the panels
	scatter *plotter.Scatter
	hist    *plotter.Histogram
	lines   []*plotter.Line
}

// save writes the figure to path in the format named by the file
// extension (png, jpg, tif, svg, pdf or eps).  A path without an
// extension gets a PNG.
func (f *figure) save(path string) error {

	if path == "" {
		return ErrNoDestination
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = defaultFormat
	}
	c, err := draw.NewFormattedCanvas(f.width, f.height, format)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(f.panels),
		PadX:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{f.panels}, tiles, draw.New(c))
	for j, p := range f.panels {
		p.Draw(canvases[0][j])
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return out.Close()
}

// histogram returns a count histogram of x with a fixed number of bins.
func histogram(x []float64, bins int) (*plotter.Histogram, error) {
	h, err := plotter.NewHist(plotter.Values(x), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = blue
	h.LineStyle.Color = color.White
	return h, nil
}
