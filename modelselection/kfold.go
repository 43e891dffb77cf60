// Package modelselection provides deterministic data partitioning and
// cross-validated hyperparameter search for the price regressor.
//
// All randomness is drawn from explicitly injected *rand.Rand sources;
// nothing in this package touches process-global random state. Given the
// same source and inputs, every partition is reproducible.
package modelselection

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// Fold holds the train/test row indices of a single cross-validation fold.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold implements k-fold cross-validation splitting over row indices.
type KFold struct {
	NSplits int
	Shuffle bool

	rng *rand.Rand
}

// NewKFold creates a k-fold splitter. rng is required when shuffle is
// enabled and is the only source of randomness used.
func NewKFold(nSplits int, shuffle bool, rng *rand.Rand) *KFold {
	if nSplits < 2 {
		nSplits = 5 // Default to 5-fold
	}
	return &KFold{
		NSplits: nSplits,
		Shuffle: shuffle,
		rng:     rng,
	}
}

// Split generates train/test indices for each fold over nSamples rows.
func (kf *KFold) Split(nSamples int) ([]Fold, error) {
	if nSamples < kf.NSplits {
		return nil, errors.NewValidationError("n_samples",
			"must be at least the number of folds", nSamples)
	}
	if kf.Shuffle && kf.rng == nil {
		return nil, errors.NewValidationError("rng", "required when shuffle is enabled", nil)
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		kf.rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	current := 0
	for f := 0; f < kf.NSplits; f++ {
		testSize := foldSize
		if f < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[current:current+testSize])

		train := make([]int, 0, nSamples-testSize)
		train = append(train, indices[:current]...)
		train = append(train, indices[current+testSize:]...)

		folds[f] = Fold{TrainIndices: train, TestIndices: test}
		current += testSize
	}

	return folds, nil
}
