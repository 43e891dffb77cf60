package modelselection

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/autoprice/metrics"
	"github.com/YuminosukeSato/autoprice/neighbors"
	"github.com/YuminosukeSato/autoprice/pkg/errors"
	"github.com/YuminosukeSato/autoprice/preprocessing"
)

// CVRecord holds the cross-validated metrics averaged over all folds for
// one candidate neighbor count.
type CVRecord struct {
	K    int
	RMSE float64
	R2   float64
	MAE  float64
}

// SearchResult is the outcome of a grid search: the per-k metric table,
// the selected neighbor count, and the final model refitted on the full
// input with its frozen scaler.
type SearchResult struct {
	BestK   int
	Records []CVRecord

	// Scaler holds the center/scale parameters fitted on the full input;
	// Evaluate applies them unchanged to held-out rows.
	Scaler *preprocessing.StandardScaler
	Model  *neighbors.KNNRegressor
}

// GridSearchCV evaluates every neighbor count in [kMin, kMax] with the
// given k-fold scheme and selects the one minimizing mean cross-validated
// RMSE, ties broken in favor of the smallest k. Within each fold the
// scaler is fitted on that fold's training rows only, so held-out rows
// never influence the normalization parameters. The final model is
// refitted at the selected k on the entire input.
func GridSearchCV(X *mat.Dense, y *mat.VecDense, kMin, kMax int, kf *KFold) (*SearchResult, error) {
	n, _ := X.Dims()
	if n != y.Len() {
		return nil, errors.NewDimensionError("GridSearchCV", n, y.Len(), 0)
	}
	if kMin < 1 {
		return nil, errors.NewValidationError("k_min", "must be >= 1", kMin)
	}
	if kMax < kMin {
		return nil, errors.NewValidationError("k_max", "must be >= k_min", kMax)
	}

	folds, err := kf.Split(n)
	if err != nil {
		return nil, err
	}

	minTrain := n
	for _, fold := range folds {
		if len(fold.TrainIndices) < minTrain {
			minTrain = len(fold.TrainIndices)
		}
	}
	if kMax > minTrain {
		return nil, errors.NewValidationError("k_max",
			"exceeds the smallest fold training size", kMax)
	}

	result := &SearchResult{Records: make([]CVRecord, 0, kMax-kMin+1)}
	bestRMSE := 0.0

	for k := kMin; k <= kMax; k++ {
		var sumRMSE, sumR2, sumMAE float64

		for _, fold := range folds {
			rmse, r2, mae, err := scoreFold(X, y, fold, k)
			if err != nil {
				return nil, errors.Wrapf(err, "GridSearchCV: k=%d", k)
			}
			sumRMSE += rmse
			sumR2 += r2
			sumMAE += mae
		}

		nf := float64(len(folds))
		rec := CVRecord{
			K:    k,
			RMSE: sumRMSE / nf,
			R2:   sumR2 / nf,
			MAE:  sumMAE / nf,
		}
		result.Records = append(result.Records, rec)

		// Strict comparison keeps the first (smallest) k on ties.
		if result.BestK == 0 || rec.RMSE < bestRMSE {
			bestRMSE = rec.RMSE
			result.BestK = k
		}
	}

	slog.Debug("grid search complete",
		"best_k", result.BestK, "cv_rmse", bestRMSE, "candidates", len(result.Records))

	// Refit on the full input at the selected k with its own frozen
	// center/scale parameters.
	result.Scaler = preprocessing.NewStandardScaler()
	scaled, err := result.Scaler.FitTransform(X)
	if err != nil {
		return nil, err
	}
	result.Model = neighbors.NewKNNRegressor(result.BestK)
	if err := result.Model.Fit(scaled, y); err != nil {
		return nil, err
	}

	return result, nil
}

// scoreFold fits a scaler and regressor on the fold's training rows and
// scores predictions on the held-out rows.
func scoreFold(X *mat.Dense, y *mat.VecDense, fold Fold, k int) (rmse, r2, mae float64, err error) {
	scaler, err := foldScaler(X, fold.TrainIndices)
	if err != nil {
		return 0, 0, 0, err
	}

	trainX, err := scaler.Transform(SelectRows(X, fold.TrainIndices))
	if err != nil {
		return 0, 0, 0, err
	}
	testX, err := scaler.Transform(SelectRows(X, fold.TestIndices))
	if err != nil {
		return 0, 0, 0, err
	}

	trainY := SelectVec(y, fold.TrainIndices)
	testY := SelectVec(y, fold.TestIndices)

	knn := neighbors.NewKNNRegressor(k)
	if err := knn.Fit(trainX, trainY); err != nil {
		return 0, 0, 0, err
	}

	pred, err := knn.Predict(testX)
	if err != nil {
		return 0, 0, 0, err
	}

	predVec := mat.NewVecDense(len(fold.TestIndices), nil)
	for i := range fold.TestIndices {
		predVec.SetVec(i, pred.At(i, 0))
	}

	if rmse, err = metrics.RMSE(testY, predVec); err != nil {
		return 0, 0, 0, err
	}
	if r2, err = metrics.R2Score(testY, predVec); err != nil {
		return 0, 0, 0, err
	}
	if mae, err = metrics.MAE(testY, predVec); err != nil {
		return 0, 0, 0, err
	}
	return rmse, r2, mae, nil
}

// foldScaler fits normalization parameters on the given training rows
// only. Held-out rows must not leak into center/scale estimation.
func foldScaler(X *mat.Dense, trainRows []int) (*preprocessing.StandardScaler, error) {
	scaler := preprocessing.NewStandardScaler()
	if err := scaler.Fit(SelectRows(X, trainRows)); err != nil {
		return nil, err
	}
	return scaler, nil
}
