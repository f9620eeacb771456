package experiment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/diagnose"
)

// FeatureShape is the shape diagnostic of one feature column of the
// untransformed dataset, reported alongside every result so a reader can
// check whether the transform under test matches the recommendation.
type FeatureShape struct {
	Feature     int
	Label       diagnose.ShapeLabel
	Skewness    float64
	Recommended string
}

// Result records the outcome of one (transform, estimator) pairing within a
// run. All fields are written once by the harness and never mutated
// afterwards; slices and matrices are private copies of the run's state.
type Result struct {
	// Transform is the Name() of the transform under test.
	Transform string

	// Estimator identifies the downstream estimator ("kmeans" or
	// "logistic_regression").
	Estimator string

	// Metric is held-out accuracy for classification runs and
	// within-cluster variance for clustering runs.
	Metric float64

	// Assignments holds the cluster label per sample. Nil for
	// classification runs.
	Assignments []int

	// Shapes holds the per-feature diagnostics of the raw data. The
	// diagnostics are computed once per run and are identical across the
	// run's results.
	Shapes []FeatureShape

	// Transformed is the full dataset in transformed space, for plotting.
	// For classification runs the transform was fitted on the training
	// partition only and then applied to all rows.
	Transformed *mat.Dense

	// Err is non-nil only when the run was configured to skip failed
	// transforms and this transform failed. Metric and Assignments are
	// zero-valued in that case.
	Err error
}

// String summarizes the result for log output.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("Result(transform=%s, estimator=%s, err=%v)", r.Transform, r.Estimator, r.Err)
	}
	return fmt.Sprintf("Result(transform=%s, estimator=%s, metric=%.4f)", r.Transform, r.Estimator, r.Metric)
}

// diagnoseShapes classifies every feature column of the raw matrix.
func diagnoseShapes(X mat.Matrix) []FeatureShape {
	_, cols := X.Dims()
	shapes := make([]FeatureShape, cols)
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, X)
		label, err := diagnose.Classify(col)
		if err != nil {
			label = diagnose.Unknown
		}
		skew, err := diagnose.Skewness(col)
		if err != nil {
			skew = 0
		}
		shapes[j] = FeatureShape{
			Feature:     j,
			Label:       label,
			Skewness:    skew,
			Recommended: diagnose.Recommend(label),
		}
	}
	return shapes
}

// copyShapes gives each result its own diagnostics slice.
func copyShapes(shapes []FeatureShape) []FeatureShape {
	out := make([]FeatureShape, len(shapes))
	copy(out, shapes)
	return out
}
