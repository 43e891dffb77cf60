package neighbors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/autoprice/core/model"
)

func TestKNNRegressor_KOneRecallsTrainingTargets(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	})
	y := mat.NewVecDense(4, []float64{10, 20, 30, 40})

	knn := NewKNNRegressor(1)
	require.NoError(t, knn.Fit(X, y))

	pred, err := knn.Predict(X)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.Equal(t, y.AtVec(i), pred.At(i, 0))
	}
}

func TestKNNRegressor_UniformAverageOverNeighbors(t *testing.T) {
	// Two training points equidistant from the query; k=2 must return
	// their plain average with no distance weighting.
	X := mat.NewDense(3, 1, []float64{
		0,
		2,
		100,
	})
	y := mat.NewVecDense(3, []float64{10, 30, 1000})

	knn := NewKNNRegressor(2)
	require.NoError(t, knn.Fit(X, y))

	pred, err := knn.Predict(mat.NewDense(1, 1, []float64{1}))
	require.NoError(t, err)
	assert.InDelta(t, 20.0, pred.At(0, 0), 1e-10)
}

func TestKNNRegressor_PredictBeforeFit(t *testing.T) {
	knn := NewKNNRegressor(3)
	_, err := knn.Predict(mat.NewDense(1, 2, nil))
	require.Error(t, err)
}

func TestKNNRegressor_FitValidation(t *testing.T) {
	tests := []struct {
		name string
		k    int
		X    *mat.Dense
		y    mat.Matrix
	}{
		{
			name: "k below one",
			k:    0,
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewVecDense(3, []float64{1, 2, 3}),
		},
		{
			name: "k exceeds sample count",
			k:    5,
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewVecDense(3, []float64{1, 2, 3}),
		},
		{
			name: "row mismatch",
			k:    1,
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewVecDense(2, []float64{1, 2}),
		},
		{
			name: "y not a column vector",
			k:    1,
			X:    mat.NewDense(2, 1, []float64{1, 2}),
			y:    mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			knn := NewKNNRegressor(tt.k)
			require.Error(t, knn.Fit(tt.X, tt.y))
		})
	}
}

func TestKNNRegressor_PredictDimensionMismatch(t *testing.T) {
	knn := NewKNNRegressor(1)
	require.NoError(t, knn.Fit(mat.NewDense(2, 2, []float64{0, 0, 1, 1}), mat.NewVecDense(2, []float64{1, 2})))

	_, err := knn.Predict(mat.NewDense(1, 3, nil))
	require.Error(t, err)
}

func TestKNNRegressor_Score(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewVecDense(4, []float64{0, 10, 20, 30})

	knn := NewKNNRegressor(1)
	require.NoError(t, knn.Fit(X, y))

	score, err := knn.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-10)
}

func TestKNNRegressor_UsableAsRegressor(t *testing.T) {
	var reg model.Regressor = NewKNNRegressor(1)

	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	y := mat.NewVecDense(3, []float64{5, 6, 7})
	require.NoError(t, reg.Fit(X, y))

	pred, err := reg.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, 6.0, pred.At(1, 0))

	score, err := reg.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-10)
}

func TestKNNRegressor_TiesKeepEarlierTrainingRow(t *testing.T) {
	// Rows 0 and 1 are identical; with k=1 the earlier row wins.
	X := mat.NewDense(2, 1, []float64{5, 5})
	y := mat.NewVecDense(2, []float64{100, 200})

	knn := NewKNNRegressor(1)
	require.NoError(t, knn.Fit(X, y))

	pred, err := knn.Predict(mat.NewDense(1, 1, []float64{5}))
	require.NoError(t, err)
	assert.Equal(t, 100.0, pred.At(0, 0))
}
