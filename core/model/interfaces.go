// Package model defines the narrow contracts through which the comparison
// harness consumes its estimator collaborators. The harness never depends on
// a concrete clustering or classification implementation.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// ClusterEstimator is the contract for the clustering collaborator.
//
// FitPredict returns one label per input row, drawn from {0..k-1}. Label
// identity carries no ordering guarantee between runs: two runs may assign
// the same partition under permuted labels.
type ClusterEstimator interface {
	// FitPredict fits the estimator on X and returns cluster assignments.
	FitPredict(X mat.Matrix) ([]int, error)

	// Inertia returns the within-cluster sum of squares after fitting.
	Inertia() float64
}

// BinaryClassifier is the contract for the classification collaborator.
type BinaryClassifier interface {
	// Fit trains the classifier on the training partition.
	Fit(X mat.Matrix, y []int) error

	// Predict returns one predicted label per input row.
	Predict(X mat.Matrix) ([]int, error)

	// Score returns held-out accuracy in [0, 1].
	Score(X mat.Matrix, y []int) (float64, error)
}
