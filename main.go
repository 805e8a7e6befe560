/*
Fit survival time distributions to patient records.

survfit reads a CSV file with a survival time column and a censoring
indicator, keeps the uncensored records, and optionally plots the raw
survival times, an exponential fit, and a Birnbaum-Saunders
(fatigue-life) fit compared to the exponential fit.

	survfit -csv patients.csv -p -o survival.png -pe -oe exp.png -pbs -ob bs.png
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/brookluers/survfit/fit"
	"github.com/brookluers/survfit/plots"
	"github.com/brookluers/survfit/utils"
)

func main() {
	os.Exit(run(os.Args[1:], nil, os.Stderr))
}

// run executes one invocation and returns the exit status: 0 on
// success, 2 for usage or configuration errors, 1 when the run fails.
// A nil environ means the process environment.
func run(args []string, environ map[string]string, stderr io.Writer) int {

	opts, err := parseOptions(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	} else if err != nil {
		return 2
	}

	settings, err := loadSettings(environ)
	if err != nil {
		fmt.Fprintf(stderr, "survfit: %v\n", err)
		return 2
	}

	logger := newLogger(settings, stderr)

	if err := survfit(opts, settings, logger); err != nil {
		logger.Error("run failed", "err", err)
		return 1
	}

	return 0
}

// runner carries the state shared by the steps of one run.
type runner struct {
	opts    *Options
	logger  *slog.Logger
	summary *summary
}

// survfit loads and filters the data once, then runs each enabled step
// in turn.  The first error ends the run.
func survfit(opts *Options, settings *Settings, logger *slog.Logger) error {

	cols := settings.Columns()

	data, err := utils.Load(opts.CSV)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	logger.Info("loaded data", "path", opts.CSV, "rows", data.NumRows(), "columns", data.Names())

	uncensored, err := data.Filter(map[string]utils.FilterFunc{cols.Censor: utils.EqualTo(1)})
	if err != nil {
		return fmt.Errorf("select uncensored records: %w", err)
	}

	survival, err := uncensored.Float(cols.Survival)
	if err != nil {
		return fmt.Errorf("read survival times: %w", err)
	}
	logger.Info("selected uncensored records", "rows", len(survival),
		"dropped", data.NumRows()-uncensored.NumRows())

	r := &runner{
		opts:   opts,
		logger: logger,
		summary: &summary{
			Input:      opts.CSV,
			Rows:       data.NumRows(),
			Uncensored: uncensored.NumRows(),
			Survival:   describe(survival),
		},
	}

	if opts.Plot {
		if err := r.plotSurvival(survival); err != nil {
			return err
		}
	}

	if opts.PlotExp {
		if err := r.fitExp(survival); err != nil {
			return err
		}
	}

	if opts.PlotBS {
		if err := r.fitBS(survival); err != nil {
			return err
		}
	}

	if opts.Summary != "" {
		return r.writeSummary(survival)
	}

	return nil
}

// plotSurvival draws the raw survival times.
func (r *runner) plotSurvival(x []float64) error {

	if err := plots.Survival(x, r.opts.OutputPlot); err != nil {
		return fmt.Errorf("survival plot: %w", err)
	}

	r.wrote(r.opts.OutputPlot)
	return nil
}

// fitExp fits and draws the exponential distribution.
func (r *runner) fitExp(x []float64) error {

	e, err := fit.FitExponential(x)
	if err != nil {
		return fmt.Errorf("exponential fit: %w", err)
	}
	r.logger.Debug("fitted exponential", "rate", e.Rate)
	r.summary.setExponential(e, x)

	if err := plots.ExponentialFit(x, e, r.opts.OutputExp); err != nil {
		return fmt.Errorf("exponential plot: %w", err)
	}

	r.wrote(r.opts.OutputExp)
	return nil
}

// fitBS fits the Birnbaum-Saunders distribution and draws it next to
// the exponential fit, which is computed here whether or not fitExp ran.
func (r *runner) fitBS(x []float64) error {

	d, err := fit.FitFatigueLife(x)
	if err != nil {
		return fmt.Errorf("fatigue-life fit: %w", err)
	}
	r.logger.Debug("fitted Birnbaum-Saunders", "shape", d.Shape, "loc", d.Loc, "scale", d.Scale)
	r.summary.setFatigueLife(d, x)

	e, err := fit.FitExponential(x)
	if err != nil {
		return fmt.Errorf("exponential fit: %w", err)
	}
	r.summary.setExponential(e, x)

	if err := plots.ComparisonFit(x, e, d, r.opts.OutputBS); err != nil {
		return fmt.Errorf("fatigue-life plot: %w", err)
	}

	r.wrote(r.opts.OutputBS)
	return nil
}

// writeSummary writes the YAML summary.  The exponential fit is added
// when no plotting step computed it and the sample allows it.
func (r *runner) writeSummary(x []float64) error {

	if r.summary.Exponential == nil {
		e, err := fit.FitExponential(x)
		if err != nil {
			r.logger.Warn("summary without exponential fit", "err", err)
		} else {
			r.summary.setExponential(e, x)
		}
	}

	if err := r.summary.write(r.opts.Summary); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	r.logger.Info("wrote summary", "path", r.opts.Summary)

	return nil
}

func (r *runner) wrote(path string) {
	r.summary.Figures = append(r.summary.Figures, path)
	r.logger.Info("wrote figure", "path", path)
}
