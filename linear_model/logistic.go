// Package linear_model provides the gradient-sensitive estimator collaborator
// of the comparison harness.
package linear_model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/core/model"
	"github.com/YuminosukeSato/scalebench/metrics"
	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// LogisticRegression implements binary logistic regression trained with
// full-batch gradient descent and a decaying learning rate.
//
// Labels must be 0 or 1. Score reports plain held-out accuracy, which is
// the scalar outcome metric the comparison harness collects.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	penalty      string  // Regularization: "l2", "none"
	c            float64 // Inverse regularization strength (1/lambda)
	fitIntercept bool    // Whether to fit intercept
	randomState  int64   // Random seed
	maxIter      int     // Maximum iterations
	tol          float64 // Tolerance for stopping

	// Model parameters
	coef_      []float64 // Coefficients (n_features)
	intercept_ float64   // Intercept term
	nFeatures_ int       // Number of features
	nIter_     int       // Iterations actually run

	// Internal state
	rand *rand.Rand
}

// LogisticRegressionOption is a functional option for LogisticRegression
type LogisticRegressionOption func(*LogisticRegression)

// NewLogisticRegression creates a new LogisticRegression classifier
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		penalty:      "l2",
		c:            1.0,
		fitIntercept: true,
		randomState:  -1,
		maxIter:      1000,
		tol:          1e-4,
	}

	for _, opt := range opts {
		opt(lr)
	}

	if lr.rand == nil {
		if lr.randomState >= 0 {
			lr.rand = rand.New(rand.NewSource(lr.randomState))
		} else {
			lr.rand = rand.New(rand.NewSource(rand.Int63()))
		}
	}

	return lr
}

// WithLRPenalty sets the regularization type ("l2" or "none")
func WithLRPenalty(penalty string) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.penalty = penalty
	}
}

// WithLRC sets the inverse regularization strength
func WithLRC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithLRFitIntercept sets whether to fit an intercept term
func WithLRFitIntercept(fit bool) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithLRMaxIter sets the maximum number of iterations
func WithLRMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithLRTol sets the tolerance for the stopping criterion
func WithLRTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithLRRandomState sets the random seed for weight initialization
func WithLRRandomState(seed int64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.randomState = seed
		if seed >= 0 {
			lr.rand = rand.New(rand.NewSource(seed))
		}
	}
}

// Fit trains the model on the training partition.
func (lr *LogisticRegression) Fit(X mat.Matrix, y []int) error {
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LogisticRegression.Fit")
	}
	if len(y) != nSamples {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, len(y), 0)
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return errors.NewConfigurationError("y", "labels must be binary (0 or 1)",
				map[string]int{"index": i, "label": label})
		}
	}

	lr.nFeatures_ = nFeatures
	lr.coef_ = make([]float64, nFeatures)
	lr.intercept_ = 0
	for j := range lr.coef_ {
		lr.coef_[j] = lr.rand.NormFloat64() * 0.01
	}

	const baseLearningRate = 1.0

	converged := false
	for iter := 0; iter < lr.maxIter; iter++ {
		// Compute gradients over the full batch
		gradWeights := make([]float64, nFeatures)
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := lr.intercept_
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.coef_[j]
			}
			residual := sigmoid(z) - float64(y[i])
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		if lr.penalty == "l2" {
			lambda := 1.0 / lr.c
			for j := range lr.coef_ {
				gradWeights[j] += lambda * lr.coef_[j] / float64(nSamples)
			}
		}

		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))

		for j := range lr.coef_ {
			lr.coef_[j] -= learningRate * gradWeights[j]
		}
		if lr.fitIntercept {
			lr.intercept_ -= learningRate * gradIntercept
		}

		lr.nIter_ = iter + 1

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter, ""))
	}

	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()
	return nil
}

// Predict returns one predicted label per input row.
func (lr *LogisticRegression) Predict(X mat.Matrix) ([]int, error) {
	proba, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			labels[i] = 1
		}
	}
	return labels, nil
}

// PredictProba returns the probability of class 1 for each input row.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) ([]float64, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures_, nFeatures, 1)
	}

	proba := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		z := lr.intercept_
		for j := 0; j < nFeatures; j++ {
			z += X.At(i, j) * lr.coef_[j]
		}
		proba[i] = sigmoid(z)
	}
	return proba, nil
}

// Score returns held-out accuracy in [0, 1].
func (lr *LogisticRegression) Score(X mat.Matrix, y []int) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(y, predictions)
}

// Coef returns a copy of the fitted coefficients.
func (lr *LogisticRegression) Coef() []float64 {
	coef := make([]float64, len(lr.coef_))
	copy(coef, lr.coef_)
	return coef
}

// Intercept returns the fitted intercept term.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept_
}

// NIterations returns the number of gradient steps actually run.
func (lr *LogisticRegression) NIterations() int {
	return lr.nIter_
}

func sigmoid(z float64) float64 {
	// Clamp to avoid overflow in Exp
	if z > 500 {
		z = 500
	} else if z < -500 {
		z = -500
	}
	return 1.0 / (1.0 + math.Exp(-z))
}
