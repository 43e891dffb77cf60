// Package dataset loads and cleans the automobile price table.
//
// The source file is a header-less CSV with 26 columns in a fixed order;
// column names are assigned positionally from a declared schema and the
// column count is validated at load time. Missing numeric values are
// encoded in the source as a sentinel string and converted to NaN during
// coercion, then removed by row filtering.
package dataset

// Kind is the declared type of a schema column.
type Kind int

const (
	// KindString marks a categorical/text column.
	KindString Kind = iota
	// KindNumeric marks a column that must hold numbers after coercion.
	KindNumeric
)

// Column declares one schema column: its positional name and expected kind.
type Column struct {
	Name string
	Kind Kind
}

// Schema declares the fixed layout of the source file and the cleaning
// behavior attached to it.
type Schema struct {
	// Columns in exact source-file order. Reordering silently corrupts
	// semantics, so the list is validated against the file at load time.
	Columns []Column

	// Sentinel is the literal string marking a missing numeric value.
	Sentinel string

	// CoercionColumns are the columns known to store numeric values as
	// text and the only ones where the sentinel is expected. A sentinel
	// in any other numeric column raises a DataConversionWarning during
	// Coerce.
	CoercionColumns []string

	// IdentifierColumns are numeric columns excluded from modeling.
	IdentifierColumns []string
}

// DefaultSentinel is the missing-value marker used by the source dataset.
const DefaultSentinel = "?"

// AutomobileSchema returns the declared schema of the 26-column automobile
// dataset.
func AutomobileSchema() Schema {
	return Schema{
		Columns: []Column{
			{"symboling", KindNumeric},
			{"normalized_losses", KindNumeric},
			{"make", KindString},
			{"fuel_type", KindString},
			{"aspiration", KindString},
			{"num_of_doors", KindString},
			{"body_style", KindString},
			{"drive_wheels", KindString},
			{"engine_location", KindString},
			{"wheel_base", KindNumeric},
			{"length", KindNumeric},
			{"width", KindNumeric},
			{"height", KindNumeric},
			{"curb_weight", KindNumeric},
			{"engine_type", KindString},
			{"num_of_cylinders", KindString},
			{"engine_size", KindNumeric},
			{"fuel_system", KindString},
			{"bore", KindNumeric},
			{"stroke", KindNumeric},
			{"compression_ratio", KindNumeric},
			{"horsepower", KindNumeric},
			{"peak_rpm", KindNumeric},
			{"city_mpg", KindNumeric},
			{"highway_mpg", KindNumeric},
			{"price", KindNumeric},
		},
		Sentinel: DefaultSentinel,
		CoercionColumns: []string{
			"normalized_losses", "bore", "stroke", "horsepower", "peak_rpm", "price",
		},
		IdentifierColumns: []string{"symboling"},
	}
}

// Names returns the column names in source order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// NumericNames returns the declared-numeric column names in source order,
// identifier columns included.
func (s Schema) NumericNames() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Kind == KindNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// RetainedNumericNames returns the numeric columns kept for modeling:
// declared-numeric minus identifiers, in source order.
func (s Schema) RetainedNumericNames() []string {
	drop := make(map[string]bool, len(s.IdentifierColumns))
	for _, name := range s.IdentifierColumns {
		drop[name] = true
	}
	var names []string
	for _, c := range s.Columns {
		if c.Kind == KindNumeric && !drop[c.Name] {
			names = append(names, c.Name)
		}
	}
	return names
}

// Kind reports the declared kind of a column.
func (s Schema) Kind(name string) (Kind, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c.Kind, true
		}
	}
	return KindString, false
}
