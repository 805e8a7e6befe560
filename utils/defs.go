package utils

import "errors"

// Columns names the variables of a survival data set.
type Columns struct {

	// Observed time, in days, from study entry to the event or to
	// the end of follow-up
	Survival string

	// Indicator that the event was observed (1) rather than
	// censored (0)
	Censor string
}

// DefaultColumns are the column names used when none are configured.
var DefaultColumns = Columns{
	Survival: "survival",
	Censor:   "censors",
}

// FilterFunc sets keep[i] to false for every row i of the column x
// that should be dropped.  It must not modify x.
type FilterFunc func(x []float64, keep []bool)

// EqualTo returns a filter keeping the rows whose value equals v.
func EqualTo(v float64) FilterFunc {
	return func(x []float64, keep []bool) {
		for i, a := range x {
			if a != v {
				keep[i] = false
			}
		}
	}
}

var (
	// ErrMissingColumn is returned when a named column is not in the table.
	ErrMissingColumn = errors.New("missing column")

	// ErrNotNumeric is returned when a numeric column is requested but the
	// column holds non-numeric values.
	ErrNotNumeric = errors.New("column is not numeric")
)

// Cell values read as missing in numeric columns.
var missing = map[string]bool{
	"":     true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}
