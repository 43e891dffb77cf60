package modelselection

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func linearTarget(n int) *mat.VecDense {
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		y.SetVec(i, float64(1000+37*i))
	}
	return y
}

func TestTrainTestSplit_DisjointAndExhaustive(t *testing.T) {
	const n = 100
	trainIdx, testIdx, err := TrainTestSplit(linearTarget(n), 0.85, 5, newTestRNG(1))
	require.NoError(t, err)

	all := append(append([]int{}, trainIdx...), testIdx...)
	sort.Ints(all)
	require.Len(t, all, n)
	for i, idx := range all {
		assert.Equal(t, i, idx)
	}
}

func TestTrainTestSplit_ApproximatesRatio(t *testing.T) {
	const n = 200
	trainIdx, testIdx, err := TrainTestSplit(linearTarget(n), 0.85, 5, newTestRNG(1))
	require.NoError(t, err)

	got := float64(len(trainIdx)) / float64(n)
	assert.InDelta(t, 0.85, got, 0.03)
	assert.NotEmpty(t, testIdx)
}

func TestTrainTestSplit_SameSeedSamePartition(t *testing.T) {
	y := linearTarget(120)

	train1, test1, err := TrainTestSplit(y, 0.85, 5, newTestRNG(42))
	require.NoError(t, err)
	train2, test2, err := TrainTestSplit(y, 0.85, 5, newTestRNG(42))
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
}

func TestTrainTestSplit_DifferentSeedDifferentPartition(t *testing.T) {
	y := linearTarget(120)

	train1, _, err := TrainTestSplit(y, 0.85, 5, newTestRNG(1))
	require.NoError(t, err)
	train2, _, err := TrainTestSplit(y, 0.85, 5, newTestRNG(2))
	require.NoError(t, err)

	assert.NotEqual(t, train1, train2)
}

func TestTrainTestSplit_StratificationPreservesShape(t *testing.T) {
	// Bimodal target: low and high clusters must both appear in the test
	// partition in roughly their population proportion.
	const n = 100
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if i < 50 {
			y.SetVec(i, 5000+float64(i))
		} else {
			y.SetVec(i, 30000+float64(i))
		}
	}

	_, testIdx, err := TrainTestSplit(y, 0.8, 2, newTestRNG(3))
	require.NoError(t, err)

	low, high := 0, 0
	for _, idx := range testIdx {
		if y.AtVec(idx) < 20000 {
			low++
		} else {
			high++
		}
	}
	assert.InDelta(t, float64(low), float64(high), 2)
}

func TestTrainTestSplit_Validation(t *testing.T) {
	y := linearTarget(10)

	_, _, err := TrainTestSplit(y, 0.0, 5, newTestRNG(1))
	require.Error(t, err)

	_, _, err = TrainTestSplit(y, 1.0, 5, newTestRNG(1))
	require.Error(t, err)

	_, _, err = TrainTestSplit(y, 0.85, 5, nil)
	require.Error(t, err)

	_, _, err = TrainTestSplit(mat.NewVecDense(1, []float64{1}), 0.85, 5, newTestRNG(1))
	require.Error(t, err)
}

func TestTrainTestSplit_BothPartitionsPopulated(t *testing.T) {
	// Extreme ratio on a small table still yields a non-empty test set.
	trainIdx, testIdx, err := TrainTestSplit(linearTarget(4), 0.99, 1, newTestRNG(1))
	require.NoError(t, err)
	assert.NotEmpty(t, trainIdx)
	assert.NotEmpty(t, testIdx)
}
