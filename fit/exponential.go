// Package fit estimates parametric survival-time distributions.
package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrEmptySample is returned when there are no observations to fit.
	ErrEmptySample = errors.New("empty sample")

	// ErrDegenerateSample is returned when the observations cannot
	// identify the distribution parameters.
	ErrDegenerateSample = errors.New("degenerate sample")

	// ErrNoConvergence is returned when the likelihood maximization
	// does not converge.
	ErrNoConvergence = errors.New("fit did not converge")
)

// Exponential is an exponential distribution with the given rate.
type Exponential struct {
	Rate float64
}

// FitExponential returns the maximum likelihood exponential fit, whose
// rate is the inverse of the sample mean.
func FitExponential(x []float64) (Exponential, error) {

	if len(x) == 0 {
		return Exponential{}, ErrEmptySample
	}

	mn := stat.Mean(x, nil)
	if !(mn > 0) || math.IsInf(mn, 0) {
		return Exponential{}, fmt.Errorf("%w: mean survival is %v", ErrDegenerateSample, mn)
	}

	return Exponential{Rate: 1 / mn}, nil
}

// Scale returns the mean, 1/Rate.
func (e Exponential) Scale() float64 {
	return 1 / e.Rate
}

// Prob returns the density at x.
func (e Exponential) Prob(x float64) float64 {
	return distuv.Exponential{Rate: e.Rate}.Prob(x)
}

// LogLikelihood returns the log-likelihood of the sample.
func (e Exponential) LogLikelihood(x []float64) float64 {
	d := distuv.Exponential{Rate: e.Rate}
	var ll float64
	for _, v := range x {
		ll += d.LogProb(v)
	}
	return ll
}
