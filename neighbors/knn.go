// Package neighbors implements nearest-neighbor regression on gonum matrices.
package neighbors

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/autoprice/core/model"
	"github.com/YuminosukeSato/autoprice/core/parallel"
	"github.com/YuminosukeSato/autoprice/metrics"
	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// parallelThreshold is the number of query rows above which prediction
// fans out across CPU cores.
const parallelThreshold = 256

// KNNRegressor predicts a target value as the uniform average of the
// targets of the k nearest training rows, using Euclidean distance.
//
// The regressor memorizes the training matrix at Fit time; callers that
// standardize features must transform query rows with the same frozen
// scaler parameters used for the training matrix.
type KNNRegressor struct {
	model.BaseEstimator

	// NNeighbors is the number of neighbors averaged per prediction.
	NNeighbors int

	// NFeatures is the number of feature columns seen at Fit time.
	NFeatures int

	trainX *mat.Dense
	trainY *mat.VecDense
}

var _ model.Regressor = (*KNNRegressor)(nil)

// NewKNNRegressor creates a KNN regressor with the given neighbor count.
func NewKNNRegressor(nNeighbors int) *KNNRegressor {
	return &KNNRegressor{NNeighbors: nNeighbors}
}

// Fit memorizes the training data. X is n_samples × n_features, y is a
// column vector of length n_samples.
func (k *KNNRegressor) Fit(X, y mat.Matrix) error {
	if k.NNeighbors < 1 {
		return errors.NewValidationError("n_neighbors", "must be >= 1", k.NNeighbors)
	}

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("KNNRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("KNNRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("KNNRegressor.Fit", "y must be a column vector")
	}
	if r < k.NNeighbors {
		return errors.NewValidationError("n_neighbors",
			fmt.Sprintf("must not exceed the number of training samples (%d)", r), k.NNeighbors)
	}

	k.NFeatures = c
	k.trainX = mat.DenseCopyOf(X)
	k.trainY = mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		k.trainY.SetVec(i, y.At(i, 0))
	}

	k.SetFitted()
	return nil
}

// Predict returns an n_samples × 1 matrix of predictions for X.
func (k *KNNRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !k.IsFitted() {
		return nil, errors.NewNotFittedError("KNNRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != k.NFeatures {
		return nil, errors.NewDimensionError("KNNRegressor.Predict", k.NFeatures, c, 1)
	}

	result := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		query := make([]float64, k.NFeatures)
		for i := start; i < end; i++ {
			for j := 0; j < k.NFeatures; j++ {
				query[j] = X.At(i, j)
			}
			result.Set(i, 0, k.predictOne(query))
		}
	})

	return result, nil
}

// predictOne averages the targets of the k nearest training rows for a
// single query point. Squared distances are enough for ranking; the sqrt
// is never taken.
func (k *KNNRegressor) predictOne(query []float64) float64 {
	nTrain, _ := k.trainX.Dims()

	// Running selection of the k smallest distances, kept in ascending
	// order. Ties keep the earlier training row, matching the stable
	// first-wins convention used elsewhere in the pipeline.
	bestDist := make([]float64, 0, k.NNeighbors)
	bestIdx := make([]int, 0, k.NNeighbors)

	for i := 0; i < nTrain; i++ {
		var d float64
		for j := 0; j < k.NFeatures; j++ {
			diff := k.trainX.At(i, j) - query[j]
			d += diff * diff
		}

		if len(bestDist) == k.NNeighbors && d >= bestDist[len(bestDist)-1] {
			continue
		}

		// Insertion position (strictly greater keeps earlier rows ahead
		// on ties).
		pos := len(bestDist)
		for pos > 0 && bestDist[pos-1] > d {
			pos--
		}

		if len(bestDist) < k.NNeighbors {
			bestDist = append(bestDist, 0)
			bestIdx = append(bestIdx, 0)
		}
		copy(bestDist[pos+1:], bestDist[pos:])
		copy(bestIdx[pos+1:], bestIdx[pos:])
		bestDist[pos] = d
		bestIdx[pos] = i
	}

	var sum float64
	for _, idx := range bestIdx {
		sum += k.trainY.AtVec(idx)
	}
	return sum / float64(len(bestIdx))
}

// Score computes the coefficient of determination (R²) of the predictions
// for X against y.
func (k *KNNRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := k.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrue := mat.NewVecDense(r, nil)
	yPred := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yPred.SetVec(i, pred.At(i, 0))
	}

	return metrics.R2Score(yTrue, yPred)
}

// String returns a description of the regressor.
func (k *KNNRegressor) String() string {
	if !k.IsFitted() {
		return fmt.Sprintf("KNNRegressor(n_neighbors=%d)", k.NNeighbors)
	}
	return fmt.Sprintf("KNNRegressor(n_neighbors=%d, n_features=%d)", k.NNeighbors, k.NFeatures)
}
