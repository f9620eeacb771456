// Package experiment orchestrates fair transform comparisons: one generated
// dataset, one noise injection and one train/evaluation split shared by every
// transform under test, so that a difference in outcome is attributable only
// to the transform.
package experiment

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// splitStream is the PCG stream word of the split permutation. The dataset
// package reserves the low stream range for feature sampling and the top bit
// for label noise; this word belongs to neither, so one run seed can drive
// generation, noise and splitting without any two sharing a stream.
const splitStream = uint64(1)<<63 | 1

// Split holds the index partition of one experiment run. The two sets are
// disjoint and together cover every sample index exactly once.
type Split struct {
	Train []int
	Eval  []int
}

// TrainTestSplit partitions n sample indices into training and evaluation
// sets using a seeded permutation. The training set receives
// floor(trainFraction*n) indices; the evaluation set gets the remainder.
// The same (n, trainFraction, seed) triple always yields the same split.
func TrainTestSplit(n int, trainFraction float64, seed uint64) (Split, error) {
	if n <= 0 {
		return Split{}, errors.NewConfigurationError("n", "sample count must be positive", n)
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		return Split{}, errors.NewConfigurationError("train_fraction", "train fraction must be in (0, 1)", trainFraction)
	}

	trainSize := int(math.Floor(trainFraction * float64(n)))
	if trainSize == 0 || trainSize == n {
		return Split{}, errors.NewConfigurationError("train_fraction", "split leaves one partition empty",
			map[string]interface{}{"n": n, "train_fraction": trainFraction})
	}

	rng := rand.New(rand.NewPCG(seed, splitStream))
	perm := rng.Perm(n)

	train := make([]int, trainSize)
	copy(train, perm[:trainSize])
	eval := make([]int, n-trainSize)
	copy(eval, perm[trainSize:])
	sort.Ints(train)
	sort.Ints(eval)

	return Split{Train: train, Eval: eval}, nil
}

// selectRows builds a new matrix from the given row indices, in order.
func selectRows(X mat.Matrix, indices []int) *mat.Dense {
	_, cols := X.Dims()
	out := mat.NewDense(len(indices), cols, nil)
	for i, idx := range indices {
		out.SetRow(i, mat.Row(nil, idx, X))
	}
	return out
}

// selectLabels builds a new label slice from the given indices, in order.
func selectLabels(y []int, indices []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = y[idx]
	}
	return out
}
