// Package diagnose characterizes the empirical shape of a feature so the
// matching transform can be chosen: z-score for roughly symmetric data,
// log/power transforms for skewed, heavy-tailed data.
//
// The classifier is advisory only. It never gates the pipeline; the harness
// reports its output next to each result so a reader can verify that the
// diagnostic matches the transform under test.
package diagnose

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// ShapeLabel is the verdict of the shape classifier.
type ShapeLabel int

const (
	// Unknown covers moderate skewness where neither verdict is safe.
	Unknown ShapeLabel = iota
	// ApproximatelySymmetric indicates |skewness| below the symmetric bound.
	ApproximatelySymmetric
	// RightSkewed indicates a heavy right tail.
	RightSkewed
	// LeftSkewed indicates a heavy left tail.
	LeftSkewed
)

// Skewness thresholds. Below the symmetric bound a feature is treated as
// approximately symmetric; beyond the skewed bound the direction is called.
// In between the classifier refuses to guess.
const (
	SymmetricSkewBound = 0.5
	SkewedSkewBound    = 1.0
)

// String returns the label name.
func (l ShapeLabel) String() string {
	switch l {
	case ApproximatelySymmetric:
		return "approximately_symmetric"
	case RightSkewed:
		return "right_skewed"
	case LeftSkewed:
		return "left_skewed"
	default:
		return "unknown"
	}
}

// Classify labels the empirical shape of one feature using the adjusted
// Fisher-Pearson sample skewness. At least 3 samples are required.
func Classify(xs []float64) (ShapeLabel, error) {
	if len(xs) < 3 {
		return Unknown, errors.NewConfigurationError("xs", "shape classification requires at least 3 samples", len(xs))
	}

	skew := stat.Skew(xs, nil)
	return labelFor(skew), nil
}

// Skewness returns the adjusted Fisher-Pearson sample skewness of a feature.
func Skewness(xs []float64) (float64, error) {
	if len(xs) < 3 {
		return 0, errors.NewConfigurationError("xs", "skewness requires at least 3 samples", len(xs))
	}
	return stat.Skew(xs, nil), nil
}

func labelFor(skew float64) ShapeLabel {
	switch {
	case skew >= SkewedSkewBound:
		return RightSkewed
	case skew <= -SkewedSkewBound:
		return LeftSkewed
	case skew > -SymmetricSkewBound && skew < SymmetricSkewBound:
		return ApproximatelySymmetric
	default:
		return Unknown
	}
}

// Recommend maps a shape label to the transform that usually suits it.
// Advisory output for reporting; callers remain free to ignore it.
func Recommend(label ShapeLabel) string {
	switch label {
	case ApproximatelySymmetric:
		return "zscore"
	case RightSkewed:
		return "log1p"
	case LeftSkewed:
		return "boxcox"
	default:
		return "identity"
	}
}
