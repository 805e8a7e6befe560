package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FatigueLife is the Birnbaum-Saunders (fatigue-life) distribution.
// With z = (x-Loc)/Scale, the density is
//
//	(z+1) / (2 Shape Scale sqrt(2 pi z^3)) * exp(-(z-1)^2 / (2 z Shape^2))
//
// for z > 0 and zero elsewhere.
type FatigueLife struct {
	Shape float64
	Loc   float64
	Scale float64
}

// LogProb returns the log density at x.
func (d FatigueLife) LogProb(x float64) float64 {

	z := (x - d.Loc) / d.Scale
	if !(z > 0) {
		return math.Inf(-1)
	}

	lp := math.Log(z+1) - math.Log(2*d.Shape) - 0.5*math.Log(2*math.Pi) - 1.5*math.Log(z)
	lp -= (z - 1) * (z - 1) / (2 * z * d.Shape * d.Shape)

	return lp - math.Log(d.Scale)
}

// Prob returns the density at x.
func (d FatigueLife) Prob(x float64) float64 {
	return math.Exp(d.LogProb(x))
}

// CDF returns the probability of a value less than or equal to x.
func (d FatigueLife) CDF(x float64) float64 {

	z := (x - d.Loc) / d.Scale
	if !(z > 0) {
		return 0
	}

	sz := math.Sqrt(z)
	return distuv.UnitNormal.CDF((sz - 1/sz) / d.Shape)
}

// Quantile returns the inverse of the CDF.
func (d FatigueLife) Quantile(p float64) float64 {
	w := d.Shape * distuv.UnitNormal.Quantile(p) / 2
	s := w + math.Sqrt(w*w+1)
	return d.Loc + d.Scale*s*s
}

// LogLikelihood returns the log-likelihood of the sample.
func (d FatigueLife) LogLikelihood(x []float64) float64 {
	var ll float64
	for _, v := range x {
		ll += d.LogProb(v)
	}
	return ll
}

// minFatigueLife is the smallest sample that FitFatigueLife accepts;
// the fit has three free parameters.
const minFatigueLife = 3

// minLocGap is the smallest distance between the fitted location and
// the sample minimum, relative to the sample range.  The likelihood is
// unbounded as the location reaches the minimum, so a closer fit has
// diverged.
const minLocGap = 1e-6

// FitFatigueLife returns the maximum likelihood estimate of the shape,
// location and scale.  The likelihood is maximized by Nelder-Mead over
// (log Shape, log(min(x)-Loc), log Scale), starting from the modified
// moment estimates of the two-parameter distribution.
func FitFatigueLife(x []float64) (FatigueLife, error) {

	if len(x) == 0 {
		return FatigueLife{}, ErrEmptySample
	}
	if len(x) < minFatigueLife {
		return FatigueLife{}, fmt.Errorf("%w: %d observations, need at least %d",
			ErrDegenerateSample, len(x), minFatigueLife)
	}
	if floats.HasNaN(x) {
		return FatigueLife{}, fmt.Errorf("%w: sample contains NaN", ErrDegenerateSample)
	}

	lo, hi := floats.Min(x), floats.Max(x)
	if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return FatigueLife{}, fmt.Errorf("%w: no spread in sample", ErrDegenerateSample)
	}

	negll := func(par []float64) float64 {
		ll := unpackFatigueLife(par, lo).LogLikelihood(x)
		if math.IsNaN(ll) {
			return math.Inf(1)
		}
		return -ll
	}

	settings := &optimize.Settings{
		FuncEvaluations: 20000,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Relative:   1e-10,
			Iterations: 200,
		},
	}

	start := fatigueLifeStart(x, lo, hi)
	res, err := optimize.Minimize(optimize.Problem{Func: negll}, start, settings, &optimize.NelderMead{})
	if err != nil {
		return FatigueLife{}, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}

	switch res.Status {
	case optimize.Failure, optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
		return FatigueLife{}, fmt.Errorf("%w: %v", ErrNoConvergence, res.Status)
	}
	if math.IsInf(res.F, 0) || math.IsNaN(res.F) {
		return FatigueLife{}, fmt.Errorf("%w: likelihood is not finite", ErrNoConvergence)
	}

	d := unpackFatigueLife(res.X, lo)
	if !finitePositive(d.Shape) || !finitePositive(d.Scale) {
		return FatigueLife{}, fmt.Errorf("%w: shape %g, scale %g", ErrNoConvergence, d.Shape, d.Scale)
	}
	if gap := math.Exp(res.X[1]); gap < minLocGap*(hi-lo) {
		return FatigueLife{}, fmt.Errorf("%w: location %g diverged to the sample minimum %g",
			ErrNoConvergence, d.Loc, lo)
	}

	return d, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// unpackFatigueLife maps unconstrained optimizer coordinates to
// parameters.  The location always lies below the sample minimum lo.
func unpackFatigueLife(par []float64, lo float64) FatigueLife {
	return FatigueLife{
		Shape: math.Exp(par[0]),
		Loc:   lo - math.Exp(par[1]),
		Scale: math.Exp(par[2]),
	}
}

// fatigueLifeStart returns the optimizer starting point.
func fatigueLifeStart(x []float64, lo, hi float64) []float64 {

	// Loc = 0 unless the sample reaches zero.
	loc := 0.0
	if lo <= 0 {
		loc = lo - 0.1*(hi-lo)
	}

	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = v - loc
	}

	s := stat.Mean(y, nil)
	r := stat.HarmonicMean(y, nil)

	shape := math.Sqrt(2 * (math.Sqrt(s/r) - 1))
	if !(shape > 1e-3) {
		shape = 1e-3
	}
	scale := math.Sqrt(s * r)

	return []float64{math.Log(shape), math.Log(lo - loc), math.Log(scale)}
}
