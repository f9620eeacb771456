// Package log defines standard attribute keys for scaling experiments.
//
// Using these keys consistently across the generators, transforms and the
// harness keeps experiment logs filterable: every record belonging to one
// run carries the same experiment/seed attributes.
package log

// Experiment and operation context.
const (
	// ExperimentKey identifies an experiment run.
	// Examples: "bimodal-vs-wide", "exp-skew-study"
	ExperimentKey = "experiment.name"

	// EstimatorKey identifies the downstream estimator kind.
	// Standard values: "kmeans", "logistic_regression"
	EstimatorKey = "experiment.estimator"

	// TransformKey names the transform under test.
	// Examples: "identity", "zscore", "log1p", "boxcox"
	TransformKey = "transform.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "generate", "fit", "transform", "fit_predict", "score", "split"
	OperationKey = "ml.operation"

	// SeedKey records the seed controlling a sampling or splitting step.
	SeedKey = "rng.seed"
)

// Data shape and characteristics.
const (
	// SamplesKey indicates the number of samples (rows) in the matrix.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the matrix.
	FeaturesKey = "data.features"

	// TrainSamplesKey indicates the size of the training partition.
	TrainSamplesKey = "split.train_samples"

	// EvalSamplesKey indicates the size of the evaluation partition.
	EvalSamplesKey = "split.eval_samples"

	// NoiseFractionKey records the fraction of labels flipped by noise injection.
	NoiseFractionKey = "labels.noise_fraction"
)

// Outcome metrics.
const (
	// AccuracyKey records held-out accuracy of a classification experiment.
	AccuracyKey = "metric.accuracy"

	// InertiaKey records within-cluster sum of squares of a clustering experiment.
	InertiaKey = "metric.inertia"

	// SkewnessKey records the sample skewness reported by the shape classifier.
	SkewnessKey = "metric.skewness"
)
