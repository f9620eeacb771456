package experiment

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/cluster"
	"github.com/YuminosukeSato/scalebench/core/model"
	"github.com/YuminosukeSato/scalebench/dataset"
	"github.com/YuminosukeSato/scalebench/linear_model"
	"github.com/YuminosukeSato/scalebench/metrics"
	"github.com/YuminosukeSato/scalebench/pkg/errors"
	scilog "github.com/YuminosukeSato/scalebench/pkg/log"
)

type config struct {
	name          string
	trainFraction float64
	noiseFraction float64
	nClusters     int
	skipFailed    bool

	newClassifier func(seed int64) model.BinaryClassifier
	newClusterer  func(seed int64, nClusters int) model.ClusterEstimator
}

// Option configures a harness run.
type Option func(*config)

// WithName labels the run in log output.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithTrainFraction sets the share of samples assigned to the training
// partition of a classification run (default 0.75).
func WithTrainFraction(fraction float64) Option {
	return func(c *config) {
		c.trainFraction = fraction
	}
}

// WithNoiseFraction sets the fraction of training labels flipped before
// fitting a classifier (default 0, no noise).
func WithNoiseFraction(fraction float64) Option {
	return func(c *config) {
		c.noiseFraction = fraction
	}
}

// WithNClusters sets the cluster count of a clustering run (default 2).
func WithNClusters(n int) Option {
	return func(c *config) {
		c.nClusters = n
	}
}

// WithSkipFailedTransforms makes the run record a failed transform as a
// Result with Err set and continue, instead of aborting the whole run.
func WithSkipFailedTransforms() Option {
	return func(c *config) {
		c.skipFailed = true
	}
}

// WithClassifierFactory replaces the default logistic regression factory.
// The factory is invoked once per transform with the run's estimator seed.
func WithClassifierFactory(f func(seed int64) model.BinaryClassifier) Option {
	return func(c *config) {
		c.newClassifier = f
	}
}

// WithClustererFactory replaces the default k-means factory. The factory is
// invoked once per transform with the run's estimator seed and cluster count.
func WithClustererFactory(f func(seed int64, nClusters int) model.ClusterEstimator) Option {
	return func(c *config) {
		c.newClusterer = f
	}
}

func newConfig(opts ...Option) config {
	c := config{
		name:          "experiment",
		trainFraction: 0.75,
		noiseFraction: 0,
		nClusters:     2,
		newClassifier: func(seed int64) model.BinaryClassifier {
			return linear_model.NewLogisticRegression(linear_model.WithLRRandomState(seed))
		},
		newClusterer: func(seed int64, nClusters int) model.ClusterEstimator {
			return cluster.NewKMeans(
				cluster.WithKMeansNClusters(nClusters),
				cluster.WithKMeansRandomState(seed),
			)
		},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// RunClustering generates one dataset from the column specs and evaluates
// every transform against a k-means clusterer on it.
//
// The dataset is generated exactly once; each transform is fitted on the full
// matrix (clustering has no held-out partition) and the clusterer is rebuilt
// from the same seed for every transform, so the only varying input is the
// transform itself. Results are returned in the order of the transforms.
//
// Transforms must be unfitted; reusing a fitted transform across runs fails
// with ErrAlreadyFitted.
func RunClustering(seed uint64, cols []dataset.Column, transforms []model.Transformer, opts ...Option) ([]Result, error) {
	cfg := newConfig(opts...)
	if len(transforms) == 0 {
		return nil, errors.NewConfigurationError("transforms", "at least one transform is required", 0)
	}

	X, err := dataset.Generate(seed, cols...)
	if err != nil {
		return nil, err
	}
	rows, features := X.Dims()
	shapes := diagnoseShapes(X)

	slog.Info("clustering run started",
		scilog.ExperimentKey, cfg.name,
		scilog.EstimatorKey, "kmeans",
		scilog.SeedKey, seed,
		scilog.SamplesKey, rows,
		scilog.FeaturesKey, features,
	)

	results := make([]Result, 0, len(transforms))
	for _, tr := range transforms {
		res := Result{
			Transform: tr.Name(),
			Estimator: "kmeans",
			Shapes:    copyShapes(shapes),
		}

		transformed, err := tr.FitTransform(X)
		if err == nil {
			km := cfg.newClusterer(int64(seed), cfg.nClusters)
			var labels []int
			labels, err = km.FitPredict(transformed)
			if err == nil {
				var variance float64
				variance, err = metrics.WithinClusterVariance(transformed, labels)
				if err == nil {
					res.Metric = variance
					res.Assignments = labels
					res.Transformed = mat.DenseCopyOf(transformed)

					slog.Info("clustering result",
						scilog.ExperimentKey, cfg.name,
						scilog.TransformKey, tr.Name(),
						scilog.InertiaKey, km.Inertia(),
						"metric.within_cluster_variance", variance,
					)
				}
			}
		}

		if err != nil {
			if !cfg.skipFailed {
				return nil, errors.Wrapf(err, "transform %q", tr.Name())
			}
			res.Err = err
			slog.Warn("transform skipped",
				scilog.ExperimentKey, cfg.name,
				scilog.TransformKey, tr.Name(),
				scilog.ErrAttrKey, err.Error(),
			)
		}
		results = append(results, res)
	}
	return results, nil
}

// RunClassification generates one labeled dataset from the class specs and
// evaluates every transform against a logistic regression classifier.
//
// Noise injection and the train/evaluation split happen once, before any
// transform runs, so every transform sees the same labels and the same
// partition. Each transform is fitted on the training rows only and then
// applied to both partitions; evaluation statistics never leak into the fit.
func RunClassification(seed uint64, classes []dataset.ClassSpec, transforms []model.Transformer, opts ...Option) ([]Result, error) {
	cfg := newConfig(opts...)
	if len(transforms) == 0 {
		return nil, errors.NewConfigurationError("transforms", "at least one transform is required", 0)
	}

	X, y, err := dataset.GenerateLabeled(seed, classes...)
	if err != nil {
		return nil, err
	}
	rows, features := X.Dims()
	shapes := diagnoseShapes(X)

	// Generation, noise and split all take the run seed; the PCG stream word
	// keeps their streams apart.
	noisy, flipped, err := dataset.FlipLabels(y, cfg.noiseFraction, seed)
	if err != nil {
		return nil, err
	}

	split, err := TrainTestSplit(rows, cfg.trainFraction, seed)
	if err != nil {
		return nil, err
	}

	slog.Info("classification run started",
		scilog.ExperimentKey, cfg.name,
		scilog.EstimatorKey, "logistic_regression",
		scilog.SeedKey, seed,
		scilog.SamplesKey, rows,
		scilog.FeaturesKey, features,
		scilog.TrainSamplesKey, len(split.Train),
		scilog.EvalSamplesKey, len(split.Eval),
		scilog.NoiseFractionKey, cfg.noiseFraction,
		"labels.flipped", len(flipped),
	)

	trainX := selectRows(X, split.Train)
	evalX := selectRows(X, split.Eval)
	// The classifier trains on noisy labels but is scored against clean ones.
	trainY := selectLabels(noisy, split.Train)
	evalY := selectLabels(y, split.Eval)

	results := make([]Result, 0, len(transforms))
	for _, tr := range transforms {
		res := Result{
			Transform: tr.Name(),
			Estimator: "logistic_regression",
			Shapes:    copyShapes(shapes),
		}

		err := tr.Fit(trainX)
		if err == nil {
			var trainT, evalT, fullT mat.Matrix
			trainT, err = tr.Transform(trainX)
			if err == nil {
				evalT, err = tr.Transform(evalX)
			}
			if err == nil {
				fullT, err = tr.Transform(X)
			}
			if err == nil {
				clf := cfg.newClassifier(int64(seed))
				err = clf.Fit(trainT, trainY)
				if err == nil {
					var accuracy float64
					accuracy, err = clf.Score(evalT, evalY)
					if err == nil {
						res.Metric = accuracy
						res.Transformed = mat.DenseCopyOf(fullT)

						slog.Info("classification result",
							scilog.ExperimentKey, cfg.name,
							scilog.TransformKey, tr.Name(),
							scilog.AccuracyKey, accuracy,
						)
					}
				}
			}
		}

		if err != nil {
			if !cfg.skipFailed {
				return nil, errors.Wrapf(err, "transform %q", tr.Name())
			}
			res.Err = err
			slog.Warn("transform skipped",
				scilog.ExperimentKey, cfg.name,
				scilog.TransformKey, tr.Name(),
				scilog.ErrAttrKey, err.Error(),
			)
		}
		results = append(results, res)
	}
	return results, nil
}
