package dataset

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// Table is a named-column tabular dataset backed by a gota DataFrame,
// paired with the declared schema it was loaded against.
type Table struct {
	df     dataframe.DataFrame
	schema Schema
}

// Schema returns the declared schema of the table.
func (t *Table) Schema() Schema {
	return t.schema
}

// NRows returns the number of rows.
func (t *Table) NRows() int {
	return t.df.Nrow()
}

// NCols returns the number of columns.
func (t *Table) NCols() int {
	return t.df.Ncol()
}

// Names returns the current column names in order.
func (t *Table) Names() []string {
	return t.df.Names()
}

// HasColumn reports whether the table currently holds the named column.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Records returns the raw string cells of a column.
func (t *Table) Records(name string) ([]string, error) {
	if !t.HasColumn(name) {
		return nil, errors.NewSchemaError("Table.Records", name, "no such column")
	}
	return t.df.Col(name).Records(), nil
}

// Column returns a column as float64 values; cells that are not numeric
// come back as NaN.
func (t *Table) Column(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, errors.NewSchemaError("Table.Column", name, "no such column")
	}
	return t.df.Col(name).Float(), nil
}

// ColumnVec returns a column as a gonum vector.
func (t *Table) ColumnVec(name string) (*mat.VecDense, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(len(vals), vals), nil
}

// Matrix builds a dense matrix from the named columns, in exactly the
// given order. The column order of a feature matrix is part of the model
// contract: training and prediction must use the same list.
func (t *Table) Matrix(cols ...string) (*mat.Dense, error) {
	if len(cols) == 0 {
		return nil, errors.NewValueError("Table.Matrix", "no columns requested")
	}

	n := t.NRows()
	if n == 0 {
		return nil, errors.NewModelError("Table.Matrix", "empty table", errors.ErrEmptyData)
	}

	m := mat.NewDense(n, len(cols), nil)
	for j, name := range cols {
		vals, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// Filter returns a new table holding the rows of the named numeric column
// for which keep returns true, along with the number of removed rows.
func (t *Table) Filter(name string, keep func(v float64) bool) (*Table, int, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, 0, err
	}

	indices := make([]int, 0, len(vals))
	for i, v := range vals {
		if keep(v) {
			indices = append(indices, i)
		}
	}

	sub := t.df.Subset(indices)
	if sub.Err != nil {
		return nil, 0, errors.Wrap(sub.Err, "Table.Filter")
	}
	return &Table{df: sub, schema: t.schema}, len(vals) - len(indices), nil
}

// hasNaN reports whether any cell of the named columns is NaN.
func (t *Table) hasNaN(cols []string) bool {
	for _, name := range cols {
		vals, err := t.Column(name)
		if err != nil {
			continue
		}
		for _, v := range vals {
			if math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}
