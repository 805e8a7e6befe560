package fit

import (
	"gonum.org/v1/gonum/floats"
)

// GridPoints is the number of points at which fitted densities are
// evaluated for display.
const GridPoints = 1000

// Grid returns GridPoints evenly spaced values from 0 to max, inclusive.
func Grid(max float64) []float64 {
	g := floats.Span(make([]float64, GridPoints), 0, max)
	g[GridPoints-1] = max
	return g
}

// CountScale is the factor that puts a density on the scale of a
// count histogram of n values with the given number of bins.
func CountScale(n int, max float64, bins int) float64 {
	return float64(n) * max / float64(bins)
}

// Curve evaluates the density on the grid and rescales it to counts.
func Curve(grid []float64, density func(float64) float64, scale float64) []float64 {
	y := make([]float64, len(grid))
	for i, x := range grid {
		y[i] = scale * density(x)
	}
	return y
}
