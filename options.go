package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Options holds the resolved command line.  It is built once and
// passed to every step of the run.
type Options struct {

	// Input CSV file
	CSV string `flag:"csv" validate:"required"`

	// Plot the raw survival times
	Plot bool `flag:"plot"`

	// Plot the exponential fit
	PlotExp bool `flag:"plot_exp"`

	// Plot the Birnbaum-Saunders and exponential fits
	PlotBS bool `flag:"plot_bs"`

	// Figure paths, one per plot kind
	OutputPlot string `flag:"output_plot" validate:"required_if=Plot true"`
	OutputExp  string `flag:"output_exp" validate:"required_if=PlotExp true"`
	OutputBS   string `flag:"output_bs" validate:"required_if=PlotBS true"`

	// Optional YAML summary of the fits
	Summary string `flag:"summary"`
}

// validate checks both the options and the settings.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("flag")
	})
	return v
}

const usage = `Usage: survfit -csv <path> [options]

Fit exponential and Birnbaum-Saunders distributions to uncensored
survival times and plot them.

Options:
  -csv, --csv <path>               input csv file (required)
  -p, --plot                       plot the survival data
  -pe, --plot_exp                  plot the exponential fit
  -pbs, --plot_bs                  plot the Birnbaum-Saunders fit
  -o, --output_plot <path>         survival plot file (required with -p)
  -oe, --output_exp <path>         exponential fit plot file (required with -pe)
  -ob, --output_bs <path>          Birnbaum-Saunders fit plot file (required with -pbs)
  -s, --summary <path>             write a YAML summary of the fits

The figure format follows the file extension: png, jpg, tif, svg, pdf or eps.
A path without an extension is written as PNG.
`

// parseOptions reads the command line.  Usage problems are reported on
// output together with the usage text.
func parseOptions(args []string, output io.Writer) (*Options, error) {

	o := new(Options)

	fs := flag.NewFlagSet("survfit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usage)
	}

	fs.StringVar(&o.CSV, "csv", "", "input csv file")

	for _, b := range []struct {
		v           *bool
		short, long string
	}{
		{&o.Plot, "p", "plot"},
		{&o.PlotExp, "pe", "plot_exp"},
		{&o.PlotBS, "pbs", "plot_bs"},
	} {
		fs.BoolVar(b.v, b.short, false, "")
		fs.BoolVar(b.v, b.long, false, "")
	}

	for _, s := range []struct {
		v           *string
		short, long string
	}{
		{&o.OutputPlot, "o", "output_plot"},
		{&o.OutputExp, "oe", "output_exp"},
		{&o.OutputBS, "ob", "output_bs"},
		{&o.Summary, "s", "summary"},
	} {
		fs.StringVar(s.v, s.short, "", "")
		fs.StringVar(s.v, s.long, "", "")
	}

	// The flag set reports its own parse errors.
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	err := validateOptions(o)
	if err == nil && fs.NArg() > 0 {
		err = fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if err != nil {
		fmt.Fprintln(output, err)
		fs.Usage()
		return nil, err
	}

	return o, nil
}

// validateOptions checks the required flags, including the output path
// of each enabled plot.
func validateOptions(o *Options) error {

	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var msgs []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required_if":
			msgs = append(msgs, fmt.Sprintf("-%s is required when -%s is set", fe.Field(), flagName(fe.Param())))
		default:
			msgs = append(msgs, fmt.Sprintf("-%s is required", fe.Field()))
		}
	}

	return errors.New(strings.Join(msgs, "; "))
}

// flagName returns the flag of the Options field named at the start of
// a required_if parameter.
func flagName(param string) string {
	fields := strings.Fields(param)
	if len(fields) == 0 {
		return param
	}
	f, ok := reflect.TypeOf(Options{}).FieldByName(fields[0])
	if !ok {
		return fields[0]
	}
	return f.Tag.Get("flag")
}
