package fit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/distuv"
)

// quantileSample returns n values at the (i-0.5)/n quantiles of d.
func quantileSample(d FatigueLife, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = d.Quantile((float64(i) + 0.5) / float64(n))
	}
	return x
}

func TestFitExponential(t *testing.T) {
	e, err := FitExponential([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 1/2.5, e.Rate)
	assert.InDelta(t, 2.5, e.Scale(), 1e-12)

	e, err = FitExponential([]float64{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, 1/20.0, e.Rate)
}

func TestFitExponentialDegenerate(t *testing.T) {
	_, err := FitExponential(nil)
	assert.ErrorIs(t, err, ErrEmptySample)

	_, err = FitExponential([]float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrDegenerateSample)

	_, err = FitExponential([]float64{1, math.NaN()})
	assert.ErrorIs(t, err, ErrDegenerateSample)
}

func TestExponentialProb(t *testing.T) {
	e := Exponential{Rate: 0.5}
	assert.InDelta(t, 0.5, e.Prob(0), 1e-12)
	assert.InDelta(t, 0.5*math.Exp(-1), e.Prob(2), 1e-12)
	assert.Equal(t, 0.0, e.Prob(-1))

	want := 2*math.Log(0.5) - 0.5*(1+3)
	assert.InDelta(t, want, e.LogLikelihood([]float64{1, 3}), 1e-12)
}

func TestGrid(t *testing.T) {
	g := Grid(30)
	require.Len(t, g, GridPoints)
	assert.Equal(t, 0.0, g[0])
	assert.Equal(t, 30.0, g[len(g)-1])
	for i := 1; i < len(g); i++ {
		assert.InDelta(t, 30.0/999, g[i]-g[i-1], 1e-9)
	}
}

func TestCurve(t *testing.T) {
	grid := []float64{0, 1, 2}
	e := Exponential{Rate: 1}
	scale := CountScale(3, 30, 30)
	assert.Equal(t, 3.0, scale)

	got := Curve(grid, e.Prob, scale)
	want := []float64{3, 3 * math.Exp(-1), 3 * math.Exp(-2)}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("curve mismatch (-want +got):\n%s", diff)
	}
}

func TestFatigueLifeDensity(t *testing.T) {
	d := FatigueLife{Shape: 1, Loc: 0, Scale: 1}

	// At z = 1 the exponential term vanishes.
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), d.Prob(1), 1e-12)
	assert.Equal(t, 0.0, d.Prob(0))
	assert.Equal(t, 0.0, d.Prob(-3))
	assert.True(t, math.IsInf(d.LogProb(0), -1))

	// Location and scale act as an affine change of variable.
	ds := FatigueLife{Shape: 1, Loc: 5, Scale: 2}
	assert.InDelta(t, d.Prob(1.5)/2, ds.Prob(8), 1e-12)
}

func TestFatigueLifeIntegratesToOne(t *testing.T) {
	for _, d := range []FatigueLife{
		{Shape: 0.5, Loc: 0, Scale: 100},
		{Shape: 1.2, Loc: 10, Scale: 50},
	} {
		x := make([]float64, 200001)
		y := make([]float64, len(x))
		hi := d.Quantile(1 - 1e-9)
		for i := range x {
			x[i] = d.Loc + (hi-d.Loc)*float64(i)/float64(len(x)-1)
			y[i] = d.Prob(x[i])
		}
		assert.InDelta(t, 1, integrate.Trapezoidal(x, y), 1e-4, "%+v", d)
	}
}

func TestFatigueLifeCDFAndQuantile(t *testing.T) {
	d := FatigueLife{Shape: 0.7, Loc: 3, Scale: 40}

	// The median is Loc + Scale.
	assert.InDelta(t, 0.5, d.CDF(43), 1e-12)
	assert.InDelta(t, 43, d.Quantile(0.5), 1e-9)
	assert.Equal(t, 0.0, d.CDF(3))

	for _, p := range []float64{0.01, 0.1, 0.3, 0.7, 0.95, 0.999} {
		assert.InDelta(t, p, d.CDF(d.Quantile(p)), 1e-9)
	}

	// sqrt(z) - 1/sqrt(z) is normal with standard deviation Shape.
	z := (d.Quantile(0.9) - d.Loc) / d.Scale
	q := distuv.UnitNormal.Quantile(0.9)
	assert.InDelta(t, q*d.Shape, math.Sqrt(z)-1/math.Sqrt(z), 1e-9)
}

func TestFitFatigueLifeRecoversParameters(t *testing.T) {
	truth := FatigueLife{Shape: 0.5, Loc: 0, Scale: 100}
	x := quantileSample(truth, 500)

	d, err := FitFatigueLife(x)
	require.NoError(t, err)

	assert.InDelta(t, truth.Shape, d.Shape, 0.1)
	assert.InDelta(t, truth.Scale, d.Scale, 20)
	assert.InDelta(t, truth.Loc, d.Loc, 20)
	assert.Less(t, d.Loc, x[0])

	// A maximum likelihood estimate is at least as likely as the truth.
	assert.GreaterOrEqual(t, d.LogLikelihood(x), truth.LogLikelihood(x)-1e-6)
}

func TestFitFatigueLifeShiftedSample(t *testing.T) {
	truth := FatigueLife{Shape: 0.8, Loc: -20, Scale: 60}
	x := quantileSample(truth, 400)
	require.Less(t, x[0], 0.0)

	d, err := FitFatigueLife(x)
	require.NoError(t, err)
	assert.Less(t, d.Loc, x[0])
	assert.GreaterOrEqual(t, d.LogLikelihood(x), truth.LogLikelihood(x)-1e-6)
}

func TestFitFatigueLifeDegenerate(t *testing.T) {
	_, err := FitFatigueLife(nil)
	assert.ErrorIs(t, err, ErrEmptySample)

	_, err = FitFatigueLife([]float64{1, 2})
	assert.ErrorIs(t, err, ErrDegenerateSample)

	_, err = FitFatigueLife([]float64{5, 5, 5, 5})
	assert.ErrorIs(t, err, ErrDegenerateSample)

	_, err = FitFatigueLife([]float64{1, 2, math.NaN()})
	assert.ErrorIs(t, err, ErrDegenerateSample)
}

func TestFitFatigueLifeDiverges(t *testing.T) {
	// Too few points to bound the likelihood: the location runs into
	// the sample minimum.
	for _, x := range [][]float64{
		{10, 20, 30},
		{1, 1, 2},
		{100, 101, 102, 5000},
	} {
		_, err := FitFatigueLife(x)
		assert.ErrorIs(t, err, ErrNoConvergence, "%v", x)
	}
}
