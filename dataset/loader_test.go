package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRow builds one 26-field CSV row. Overrides replace fields by column
// name before joining.
func testRow(t *testing.T, overrides map[string]string) string {
	t.Helper()

	fields := map[string]string{
		"symboling":         "0",
		"normalized_losses": "100",
		"make":              "toyota",
		"fuel_type":         "gas",
		"aspiration":        "std",
		"num_of_doors":      "four",
		"body_style":        "sedan",
		"drive_wheels":      "fwd",
		"engine_location":   "front",
		"wheel_base":        "97.0",
		"length":            "172.0",
		"width":             "65.4",
		"height":            "54.1",
		"curb_weight":       "2250",
		"engine_type":       "ohc",
		"num_of_cylinders":  "four",
		"engine_size":       "110",
		"fuel_system":       "mpfi",
		"bore":              "3.15",
		"stroke":            "3.25",
		"compression_ratio": "9.0",
		"horsepower":        "92",
		"peak_rpm":          "4800",
		"city_mpg":          "27",
		"highway_mpg":       "34",
		"price":             "9500",
	}
	for k, v := range overrides {
		if _, ok := fields[k]; !ok {
			t.Fatalf("unknown column %q", k)
		}
		fields[k] = v
	}

	cols := AutomobileSchema().Names()
	out := make([]string, len(cols))
	for i, name := range cols {
		out[i] = fields[name]
	}
	return strings.Join(out, ",")
}

func TestRead_AssignsPositionalNames(t *testing.T) {
	csv := testRow(t, nil) + "\n" + testRow(t, map[string]string{"price": "12000"})

	table, err := Read(strings.NewReader(csv), AutomobileSchema())
	require.NoError(t, err)

	assert.Equal(t, 2, table.NRows())
	assert.Equal(t, 26, table.NCols())
	assert.Equal(t, AutomobileSchema().Names(), table.Names())

	recs, err := table.Records("price")
	require.NoError(t, err)
	assert.Equal(t, []string{"9500", "12000"}, recs)
}

func TestRead_ColumnCountMismatch(t *testing.T) {
	csv := "1,2,3\n4,5,6"

	_, err := Read(strings.NewReader(csv), AutomobileSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema violation")
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""), AutomobileSchema())
	require.Error(t, err)
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	_, err := Load("testdata/does-not-exist.csv")
	require.Error(t, err)
}

func TestSchema_ColumnSets(t *testing.T) {
	s := AutomobileSchema()

	assert.Len(t, s.Columns, 26)
	assert.Equal(t, "?", s.Sentinel)
	assert.Equal(t,
		[]string{"normalized_losses", "bore", "stroke", "horsepower", "peak_rpm", "price"},
		s.CoercionColumns)

	retained := s.RetainedNumericNames()
	assert.NotContains(t, retained, "symboling")
	assert.Contains(t, retained, "price")
	assert.Contains(t, retained, "horsepower")
}
