package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// Load reads the automobile CSV at path using the default schema.
// A missing or unreadable file is fatal and propagates immediately.
func Load(path string) (*Table, error) {
	return LoadWithSchema(path, AutomobileSchema())
}

// LoadWithSchema reads a header-less CSV at path against the given schema.
func LoadWithSchema(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	t, err := Read(f, schema)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: read %s", path)
	}
	return t, nil
}

// Read parses a header-less CSV stream, assigning column names
// positionally from the schema. Every cell is loaded as a string; numeric
// coercion is a separate, explicit cleaning step.
func Read(r io.Reader, schema Schema) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(false),
		dataframe.Names(schema.Names()...),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "dataset: parse CSV")
	}

	if got := df.Ncol(); got != len(schema.Columns) {
		return nil, errors.NewSchemaError("dataset.Read", "",
			fmt.Sprintf("expected %d columns, got %d", len(schema.Columns), got))
	}
	if df.Nrow() == 0 {
		return nil, errors.NewModelError("dataset.Read", "no rows", errors.ErrEmptyData)
	}

	return &Table{df: df, schema: schema}, nil
}
