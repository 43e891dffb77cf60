package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// ColumnCount pairs a column name with an occurrence count, preserving
// source column order across the census.
type ColumnCount struct {
	Column string
	Count  int
}

// MissingCensus counts sentinel occurrences per column. The census is
// diagnostic only and does not mutate the table.
func (t *Table) MissingCensus() []ColumnCount {
	census := make([]ColumnCount, 0, t.NCols())
	for _, name := range t.df.Names() {
		count := 0
		for _, rec := range t.df.Col(name).Records() {
			if strings.TrimSpace(rec) == t.schema.Sentinel {
				count++
			}
		}
		census = append(census, ColumnCount{Column: name, Count: count})
	}
	return census
}

// Coerce parses every declared-numeric column to float64 in place. In the
// declared coercion targets the sentinel parses to NaN by policy, not as
// an error; a sentinel in any other numeric column also becomes NaN but
// raises a DataConversionWarning, as does any non-coercible cell. Rows
// carrying NaN are removed later by DropMissing, not here.
func (t *Table) Coerce() error {
	expected := make(map[string]bool, len(t.schema.CoercionColumns))
	for _, name := range t.schema.CoercionColumns {
		expected[name] = true
	}

	for _, name := range t.schema.NumericNames() {
		recs := t.df.Col(name).Records()
		vals := make([]float64, len(recs))

		sentinels, bad := 0, 0
		for i, rec := range recs {
			cell := strings.TrimSpace(rec)
			if cell == t.schema.Sentinel {
				vals[i] = math.NaN()
				sentinels++
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				vals[i] = math.NaN()
				bad++
				continue
			}
			vals[i] = v
		}

		if bad > 0 {
			errors.Warn(errors.NewDataConversionWarning(name, "string", "float64",
				fmt.Sprintf("%d non-numeric value(s) replaced with missing markers", bad)))
		}
		if sentinels > 0 {
			if expected[name] {
				slog.Debug("sentinel values converted to missing",
					"column", name, "count", sentinels)
			} else {
				errors.Warn(errors.NewDataConversionWarning(name, "string", "float64",
					fmt.Sprintf("%d sentinel value(s) outside the declared coercion targets", sentinels)))
			}
		}

		t.df = t.df.Mutate(series.New(vals, series.Float, name))
		if t.df.Err != nil {
			return errors.Wrapf(t.df.Err, "Table.Coerce: column %s", name)
		}
	}
	return nil
}

// SelectNumeric returns a table restricted to the retained numeric
// columns: declared-numeric minus identifier columns. Must run after
// Coerce so the retained columns actually hold floats.
func (t *Table) SelectNumeric() (*Table, error) {
	names := t.schema.RetainedNumericNames()
	sub := t.df.Select(names)
	if sub.Err != nil {
		return nil, errors.Wrap(sub.Err, "Table.SelectNumeric")
	}
	return &Table{df: sub, schema: t.schema}, nil
}

// DropMissing removes every row containing a NaN in any current column
// and returns the new table plus the number of dropped rows. By
// construction the result contains no missing values; an empty result is
// a fatal precondition failure for the rest of the pipeline.
func (t *Table) DropMissing() (*Table, int, error) {
	n := t.NRows()
	names := t.df.Names()

	cols := make([][]float64, len(names))
	for j, name := range names {
		vals, err := t.Column(name)
		if err != nil {
			return nil, 0, err
		}
		cols[j] = vals
	}

	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		complete := true
		for j := range cols {
			if math.IsNaN(cols[j][i]) {
				complete = false
				break
			}
		}
		if complete {
			indices = append(indices, i)
		}
	}

	if len(indices) == 0 {
		return nil, 0, errors.NewModelError("Table.DropMissing", "all rows dropped", errors.ErrEmptyData)
	}

	sub := t.df.Subset(indices)
	if sub.Err != nil {
		return nil, 0, errors.Wrap(sub.Err, "Table.DropMissing")
	}

	clean := &Table{df: sub, schema: t.schema}
	if clean.hasNaN(names) {
		return nil, 0, errors.NewModelError("Table.DropMissing", "missing values survived filtering", errors.ErrMissingValues)
	}
	return clean, n - len(indices), nil
}
