// Package explore renders the exploratory views of the cleaned table:
// one scatter plot per feature against the target and a target
// distribution histogram. The plots are analysis aids for a human reader;
// nothing downstream consumes them programmatically.
package explore

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/autoprice/dataset"
	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// histBins is the bin count of the target distribution histogram.
const histBins = 16

// ScatterPlots renders one feature-vs-target scatter PNG per retained
// column and returns the written file paths in column order.
func ScatterPlots(t *dataset.Table, target, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "explore: create plot dir")
	}

	ys, err := t.Column(target)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, name := range t.Names() {
		if name == target {
			continue
		}
		xs, err := t.Column(name)
		if err != nil {
			return nil, err
		}

		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}

		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s vs %s", name, target)
		p.X.Label.Text = name
		p.Y.Label.Text = target

		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "explore: scatter %s", name)
		}
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)

		file := filepath.Join(dir, fmt.Sprintf("%s_vs_%s.png", name, target))
		if err := p.Save(5*vg.Inch, 4*vg.Inch, file); err != nil {
			return nil, errors.Wrapf(err, "explore: save %s", file)
		}
		files = append(files, file)
	}
	return files, nil
}

// Histogram renders the distribution of the target column as a PNG and
// returns the written file path. The long right tail visible here is what
// motivates the configurable outlier threshold.
func Histogram(t *dataset.Table, target, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "explore: create plot dir")
	}

	vals, err := t.Column(target)
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s distribution", target)
	p.X.Label.Text = target
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(vals), histBins)
	if err != nil {
		return "", errors.Wrap(err, "explore: histogram")
	}
	p.Add(h)

	file := filepath.Join(dir, fmt.Sprintf("%s_distribution.png", target))
	if err := p.Save(5*vg.Inch, 4*vg.Inch, file); err != nil {
		return "", errors.Wrapf(err, "explore: save %s", file)
	}
	return file, nil
}

// FilterOutliers removes every row whose target value is at or above the
// threshold and returns the filtered table plus the removed row count.
// The threshold is an empirically tuned constant owned by configuration,
// not derived here.
func FilterOutliers(t *dataset.Table, target string, threshold float64) (*dataset.Table, int, error) {
	if threshold <= 0 {
		return nil, 0, errors.NewValidationError("outlier_threshold", "must be positive", threshold)
	}
	return t.Filter(target, func(v float64) bool { return v < threshold })
}
