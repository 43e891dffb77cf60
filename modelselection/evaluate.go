package modelselection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/autoprice/metrics"
	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// Evaluation holds per-row predictions and aggregate accuracy metrics for
// a held-out set.
type Evaluation struct {
	Predictions *mat.VecDense
	RMSE        float64
	R2          float64
	MAE         float64
}

// Evaluate applies the fitted model to held-out rows and scores the
// predictions against the known targets. The scaler parameters frozen at
// training time are applied unchanged; no refitting or parameter
// adjustment happens here.
func (sr *SearchResult) Evaluate(X *mat.Dense, y *mat.VecDense) (*Evaluation, error) {
	if sr.Model == nil || sr.Scaler == nil {
		return nil, errors.NewNotFittedError("SearchResult", "Evaluate")
	}

	r, _ := X.Dims()
	if r != y.Len() {
		return nil, errors.NewDimensionError("SearchResult.Evaluate", r, y.Len(), 0)
	}

	scaled, err := sr.Scaler.Transform(X)
	if err != nil {
		return nil, err
	}
	pred, err := sr.Model.Predict(scaled)
	if err != nil {
		return nil, err
	}

	predVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		predVec.SetVec(i, pred.At(i, 0))
	}

	ev := &Evaluation{Predictions: predVec}
	if ev.RMSE, err = metrics.RMSE(y, predVec); err != nil {
		return nil, err
	}
	if ev.R2, err = metrics.R2Score(y, predVec); err != nil {
		return nil, err
	}
	if ev.MAE, err = metrics.MAE(y, predVec); err != nil {
		return nil, err
	}
	return ev, nil
}
