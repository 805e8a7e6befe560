/*
Load delimited survival data into memory.

A Table holds one column per header field.  Column types are inferred
from the content: a column is numeric when every non-missing cell
parses as a float, otherwise it is kept as strings.
*/

package utils

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// column is one variable of a Table.  Exactly one of floats and
// strs is non-nil.
type column struct {
	floats []float64
	strs   []string
}

func (c *column) len() int {
	if c.floats != nil {
		return len(c.floats)
	}
	return len(c.strs)
}

// Table is an immutable in-memory data set.
type Table struct {
	names []string
	cols  []column
	pos   map[string]int
	nrow  int
}

// Load reads the CSV file at path.  Files ending in .gz are
// decompressed while reading.
func Load(path string) (*Table, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		g, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer g.Close()
		r = g
	}

	t, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// ReadCSV parses comma-delimited data with a header row.
func ReadCSV(r io.Reader) (*Table, error) {

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("no header row")
	} else if err != nil {
		return nil, err
	}

	// Spreadsheet exports may start with a byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	t := &Table{pos: make(map[string]int)}
	for j, h := range header {
		h = strings.TrimSpace(h)
		if _, ok := t.pos[h]; ok {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		t.pos[h] = j
		t.names = append(t.names, h)
	}

	// Read everything as strings first, the types are decided
	// once all values of a column have been seen.
	raw := make([][]string, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		for j, v := range rec {
			raw[j] = append(raw[j], strings.TrimSpace(v))
		}
		t.nrow++
	}

	t.cols = make([]column, len(header))
	for j, v := range raw {
		t.cols[j] = infer(v)
	}

	return t, nil
}

// infer converts the raw values to floats when all of them are
// numeric or missing.
func infer(v []string) column {

	x := make([]float64, len(v))
	for i, s := range v {
		if missing[s] {
			x[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return column{strs: v}
		}
		x[i] = f
	}

	return column{floats: x}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return t.nrow
}

// Names returns the column names in file order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Float returns a copy of the named numeric column.
func (t *Table) Float(name string) ([]float64, error) {

	j, ok := t.pos[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	if t.cols[j].floats == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, name)
	}

	return append([]float64{}, t.cols[j].floats...), nil
}

// Filter returns a new table holding the rows kept by every filter.
// Each filter is applied to the numeric column named by its key.  The
// receiver is not modified.
func (t *Table) Filter(filters map[string]FilterFunc) (*Table, error) {

	keep := make([]bool, t.nrow)
	for i := range keep {
		keep[i] = true
	}

	for name, f := range filters {
		x, err := t.Float(name)
		if err != nil {
			return nil, err
		}
		f(x, keep)
	}

	nt := &Table{
		names: t.names,
		pos:   t.pos,
		cols:  make([]column, len(t.cols)),
	}
	for i := range keep {
		if keep[i] {
			nt.nrow++
		}
	}

	for j, c := range t.cols {
		var nc column
		if c.floats != nil {
			nc.floats = make([]float64, 0, nt.nrow)
		} else {
			nc.strs = make([]string, 0, nt.nrow)
		}
		for i := 0; i < c.len(); i++ {
			if !keep[i] {
				continue
			}
			if c.floats != nil {
				nc.floats = append(nc.floats, c.floats[i])
			} else {
				nc.strs = append(nc.strs, c.strs[i])
			}
		}
		nt.cols[j] = nc
	}

	return nt, nil
}
