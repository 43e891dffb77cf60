package modelselection

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// DefaultStratifyBins is the number of quantile bins used to preserve the
// target distribution shape across a train/test split.
const DefaultStratifyBins = 5

// TrainTestSplit partitions row indices into disjoint, exhaustive train
// and test sets sized approximately by trainRatio, stratified on the
// continuous target: rows are ranked by target value, chunked into
// quantile bins, and sampled proportionally from each bin. The
// stratification is approximate, not exact. Reproducibility follows from
// the injected rng alone.
func TrainTestSplit(y *mat.VecDense, trainRatio float64, bins int, rng *rand.Rand) (trainIdx, testIdx []int, err error) {
	n := y.Len()
	if n < 2 {
		return nil, nil, errors.NewValidationError("n_samples", "need at least 2 rows to split", n)
	}
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, nil, errors.NewValidationError("train_ratio", "must be in (0, 1)", trainRatio)
	}
	if rng == nil {
		return nil, nil, errors.NewValidationError("rng", "required", nil)
	}
	if bins < 1 {
		bins = DefaultStratifyBins
	}
	if bins > n/2 {
		bins = n / 2
	}
	if bins < 1 {
		bins = 1
	}

	// Rank rows by target value; ties resolve by original row order so
	// binning stays deterministic independent of the rng.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return y.AtVec(order[a]) < y.AtVec(order[b])
	})

	for b := 0; b < bins; b++ {
		lo := b * n / bins
		hi := (b + 1) * n / bins
		bin := make([]int, hi-lo)
		copy(bin, order[lo:hi])

		rng.Shuffle(len(bin), func(i, j int) {
			bin[i], bin[j] = bin[j], bin[i]
		})

		nTrain := int(math.Round(trainRatio * float64(len(bin))))
		if nTrain > len(bin) {
			nTrain = len(bin)
		}
		trainIdx = append(trainIdx, bin[:nTrain]...)
		testIdx = append(testIdx, bin[nTrain:]...)
	}

	// Both partitions must be populated for the downstream fit/evaluate
	// pair to make sense.
	if len(testIdx) == 0 {
		testIdx = append(testIdx, trainIdx[len(trainIdx)-1])
		trainIdx = trainIdx[:len(trainIdx)-1]
	}
	if len(trainIdx) == 0 {
		trainIdx = append(trainIdx, testIdx[len(testIdx)-1])
		testIdx = testIdx[:len(testIdx)-1]
	}

	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx, nil
}

// SelectRows extracts the given rows of X into a new matrix.
func SelectRows(X *mat.Dense, rows []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for i, idx := range rows {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(idx, j))
		}
	}
	return out
}

// SelectVec extracts the given elements of y into a new vector.
func SelectVec(y *mat.VecDense, rows []int) *mat.VecDense {
	out := mat.NewVecDense(len(rows), nil)
	for i, idx := range rows {
		out.SetVec(i, y.AtVec(idx))
	}
	return out
}
