package main

import (
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/brookluers/survfit/fit"
)

// summary records what a run computed.
type summary struct {
	Input       string              `yaml:"input"`
	Rows        int                 `yaml:"rows"`
	Uncensored  int                 `yaml:"uncensored"`
	Survival    sampleStats         `yaml:"survival"`
	Exponential *exponentialSummary `yaml:"exponential,omitempty"`
	FatigueLife *fatigueLifeSummary `yaml:"fatigue_life,omitempty"`
	Figures     []string            `yaml:"figures,omitempty"`
}

type sampleStats struct {
	N      int     `yaml:"n"`
	Mean   float64 `yaml:"mean"`
	Median float64 `yaml:"median"`
	StdDev float64 `yaml:"std_dev"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

type exponentialSummary struct {
	Rate          float64 `yaml:"rate"`
	Scale         float64 `yaml:"scale"`
	LogLikelihood float64 `yaml:"log_likelihood"`
}

type fatigueLifeSummary struct {
	Shape         float64 `yaml:"shape"`
	Loc           float64 `yaml:"loc"`
	Scale         float64 `yaml:"scale"`
	LogLikelihood float64 `yaml:"log_likelihood"`
}

// describe returns basic statistics of x.
func describe(x []float64) sampleStats {

	st := sampleStats{N: len(x)}
	if len(x) == 0 {
		return st
	}

	s := append([]float64(nil), x...)
	sort.Float64s(s)

	st.Mean = stat.Mean(s, nil)
	st.Median = stat.Quantile(0.5, stat.Empirical, s, nil)
	st.Min = floats.Min(s)
	st.Max = floats.Max(s)
	if len(s) > 1 {
		st.StdDev = stat.StdDev(s, nil)
	}

	return st
}

func (s *summary) setExponential(e fit.Exponential, x []float64) {
	s.Exponential = &exponentialSummary{
		Rate:          e.Rate,
		Scale:         e.Scale(),
		LogLikelihood: e.LogLikelihood(x),
	}
}

func (s *summary) setFatigueLife(d fit.FatigueLife, x []float64) {
	s.FatigueLife = &fatigueLifeSummary{
		Shape:         d.Shape,
		Loc:           d.Loc,
		Scale:         d.Scale,
		LogLikelihood: d.LogLikelihood(x),
	}
}

// write stores the summary as YAML.
func (s *summary) write(path string) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
