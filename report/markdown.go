package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/autoprice/dataset"
	"github.com/YuminosukeSato/autoprice/internal/config"
)

// maxPredictionRows caps the per-row prediction table in the rendered
// document; the aggregate metrics cover the full held-out set.
const maxPredictionRows = 15

// renderInput carries everything the markdown renderer needs.
type renderInput struct {
	RawRows   int
	CleanRows int
	Dropped   int
	Outliers  int
	Census    []dataset.ColumnCount
	Scatter   []string
	Histogram string

	Filtered   *runOutcome
	Unfiltered *runOutcome
}

// render produces the full markdown document.
func render(cfg *config.Config, in renderInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Automobile price analysis\n\n")
	fmt.Fprintf(&b, "KNN regression of %s on %s, ", cfg.TargetColumn, strings.Join(cfg.FeatureColumns(), ", "))
	fmt.Fprintf(&b, "with %d-fold cross-validated search over k = %d..%d (seed %d).\n\n",
		cfg.CVFolds, cfg.KMin, cfg.KMax, cfg.Seed)

	fmt.Fprintf(&b, "## Cleaning\n\n")
	fmt.Fprintf(&b, "- Rows loaded: %d\n", in.RawRows)
	fmt.Fprintf(&b, "- Rows after dropping missing values: %d (removed %d)\n", in.CleanRows, in.Dropped)
	fmt.Fprintf(&b, "- Rows at or above the %s threshold %.0f: %d (removed for the filtered run)\n\n",
		cfg.TargetColumn, cfg.OutlierPriceThreshold, in.Outliers)

	fmt.Fprintf(&b, "### Missing-value census (sentinel %q)\n\n", cfg.Sentinel)
	fmt.Fprintf(&b, "| column | missing |\n|---|---|\n")
	for _, cc := range in.Census {
		if cc.Count > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", cc.Column, cc.Count)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Exploration\n\n")
	fmt.Fprintf(&b, "![%s distribution](%s)\n\n", cfg.TargetColumn, relPath(cfg.OutputDir, in.Histogram))
	for _, f := range in.Scatter {
		fmt.Fprintf(&b, "![%s](%s)\n", strings.TrimSuffix(filepath.Base(f), ".png"), relPath(cfg.OutputDir, f))
	}
	b.WriteString("\n")

	renderRun(&b, in.Filtered)
	renderRun(&b, in.Unfiltered)

	fmt.Fprintf(&b, "## Comparison\n\n")
	fmt.Fprintf(&b, "| run | rows | chosen k | test RMSE | test R² | test MAE |\n|---|---|---|---|---|---|\n")
	for _, run := range []*runOutcome{in.Filtered, in.Unfiltered} {
		fmt.Fprintf(&b, "| %s | %d | %d | %.2f | %.4f | %.2f |\n",
			run.Name, run.Rows, run.Search.BestK, run.Eval.RMSE, run.Eval.R2, run.Eval.MAE)
	}
	b.WriteString("\nNo automatic selection is made between the two runs; compare the metrics above.\n")

	return b.String()
}

// renderRun writes the CV table and held-out metrics of one training run.
func renderRun(b *strings.Builder, run *runOutcome) {
	fmt.Fprintf(b, "## Training run: %s\n\n", run.Name)
	fmt.Fprintf(b, "%d rows, split %d train / %d test.\n\n", run.Rows, run.TrainRows, run.TestRows)

	fmt.Fprintf(b, "### Cross-validated metrics per k\n\n")
	fmt.Fprintf(b, "| k | RMSE | R² | MAE |\n|---|---|---|---|\n")
	for _, rec := range run.Search.Records {
		marker := ""
		if rec.K == run.Search.BestK {
			marker = " ←"
		}
		fmt.Fprintf(b, "| %d%s | %.2f | %.4f | %.2f |\n", rec.K, marker, rec.RMSE, rec.R2, rec.MAE)
	}

	fmt.Fprintf(b, "\n### Held-out test metrics (k = %d)\n\n", run.Search.BestK)
	fmt.Fprintf(b, "- RMSE: %.2f\n- R²: %.4f\n- MAE: %.2f\n\n", run.Eval.RMSE, run.Eval.R2, run.Eval.MAE)

	preds := vecToSlice(run.Eval.Predictions)
	n := len(preds)
	if n > maxPredictionRows {
		n = maxPredictionRows
	}
	fmt.Fprintf(b, "First %d held-out predictions:\n\n", n)
	fmt.Fprintf(b, "| row | predicted |\n|---|---|\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "| %d | %.2f |\n", i+1, preds[i])
	}
	b.WriteString("\n")
}

// relPath makes plot links relative to the report location, falling back
// to the absolute path when no relative form exists.
func relPath(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}
