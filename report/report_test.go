package report_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/autoprice/dataset"
	"github.com/YuminosukeSato/autoprice/internal/config"
	"github.com/YuminosukeSato/autoprice/report"
)

// writeSyntheticCSV produces a header-less 26-column file with n rows of
// varied numeric values, one row carrying the "?" sentinel in horsepower.
func writeSyntheticCSV(t *testing.T, n int) string {
	t.Helper()

	names := dataset.AutomobileSchema().Names()
	var rows []string
	for i := 0; i < n; i++ {
		horsepower := fmt.Sprintf("%d", 60+3*i)
		if i == 5 {
			horsepower = "?"
		}
		fields := map[string]string{
			"symboling":         "1",
			"normalized_losses": fmt.Sprintf("%d", 80+i),
			"make":              "honda",
			"fuel_type":         "gas",
			"aspiration":        "std",
			"num_of_doors":      "two",
			"body_style":        "hatchback",
			"drive_wheels":      "fwd",
			"engine_location":   "front",
			"wheel_base":        fmt.Sprintf("%.1f", 90.0+0.3*float64(i)),
			"length":            fmt.Sprintf("%.1f", 160.0+0.5*float64(i)),
			"width":             "64.0",
			"height":            "52.6",
			"curb_weight":       fmt.Sprintf("%d", 1900+25*i),
			"engine_type":       "ohc",
			"num_of_cylinders":  "four",
			"engine_size":       "92",
			"fuel_system":       "1bbl",
			"bore":              "2.91",
			"stroke":            "3.41",
			"compression_ratio": "9.2",
			"horsepower":        horsepower,
			"peak_rpm":          "5000",
			"city_mpg":          fmt.Sprintf("%d", 20+i%15),
			"highway_mpg":       fmt.Sprintf("%d", 25+i%12),
			"price":             fmt.Sprintf("%d", 6000+400*i),
		}
		cells := make([]string, len(names))
		for j, name := range names {
			cells[j] = fields[name]
		}
		rows = append(rows, strings.Join(cells, ","))
	}

	path := filepath.Join(t.TempDir(), "imports-85.data")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644))
	return path
}

func TestRun_ProducesReportAndPlots(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "report")

	cfg := config.Default()
	cfg.DataPath = writeSyntheticCSV(t, 48)
	cfg.OutputDir = outDir
	// Shrunk search space so the folds of the small synthetic table stay
	// larger than the biggest candidate k.
	cfg.CVFolds = 5
	cfg.KMax = 3
	cfg.StratifyBins = 3
	require.NoError(t, cfg.Validate())

	require.NoError(t, report.Run(cfg))

	doc, err := os.ReadFile(filepath.Join(outDir, "report.md"))
	require.NoError(t, err)
	text := string(doc)

	assert.Contains(t, text, "# Automobile price analysis")
	assert.Contains(t, text, "## Training run: outlier-filtered")
	assert.Contains(t, text, "## Training run: unfiltered")
	assert.Contains(t, text, "## Comparison")
	// The sentinel row shows up in the census and in the drop count.
	assert.Contains(t, text, "| horsepower | 1 |")
	assert.Contains(t, text, "Rows loaded: 48")
	assert.Contains(t, text, "removed 1)")

	plots, err := filepath.Glob(filepath.Join(outDir, "plots", "*.png"))
	require.NoError(t, err)
	// One scatter per retained numeric column plus the target histogram.
	retained := len(dataset.AutomobileSchema().RetainedNumericNames())
	assert.Len(t, plots, retained)
}

func TestRun_MissingDataFile(t *testing.T) {
	cfg := config.Default()
	cfg.DataPath = filepath.Join(t.TempDir(), "absent.data")
	cfg.OutputDir = t.TempDir()

	require.Error(t, report.Run(cfg))
}
