package experiment

import (
	"sort"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/core/model"
	"github.com/YuminosukeSato/scalebench/dataset"
	"github.com/YuminosukeSato/scalebench/preprocessing"
	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// binaryAgreement returns how well a binary assignment matches a reference
// grouping, invariant to label permutation.
func binaryAgreement(labels []int, inGroup func(i int) bool) float64 {
	match := 0
	for i, label := range labels {
		if (label == 1) == inGroup(i) {
			match++
		}
	}
	n := len(labels)
	if n-match > match {
		match = n - match
	}
	return float64(match) / float64(n)
}

// TestRunClustering_ScalingChangesGrouping pairs a bimodal feature A on a
// small scale with a wide uniform feature B. On raw data the large-scale
// feature dominates the euclidean distances; after z-score scaling the
// clusters should separate along the bimodal feature instead.
func TestRunClustering_ScalingChangesGrouping(t *testing.T) {
	cols := []dataset.Column{
		{Spec: dataset.UniformMixture{Segments: []dataset.Uniform{
			{Low: 0, High: 4},
			{Low: 6, High: 10},
		}}, N: 100},
		{Spec: dataset.Uniform{Low: 0, High: 1000}, N: 100},
	}
	transforms := []model.Transformer{
		preprocessing.NewIdentity(),
		preprocessing.NewStandardScaler(),
	}

	results, err := RunClustering(42, cols, transforms)
	if err != nil {
		t.Fatalf("RunClustering failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	// Mixture sampling preserves segment order: rows 0..49 form the low
	// mode of A, rows 50..99 the high mode.
	inLowMode := func(i int) bool { return i < 50 }

	identity, zscore := results[0], results[1]
	if identity.Transform != "identity" || zscore.Transform != "zscore" {
		t.Fatalf("results out of order: %s, %s", identity.Transform, zscore.Transform)
	}

	// Raw scale: assignments follow the wide feature B, so agreement with
	// the A modes stays near chance.
	if agreement := binaryAgreement(identity.Assignments, inLowMode); agreement > 0.75 {
		t.Errorf("raw-scale assignments agree with the A modes at %.2f; feature B should dominate", agreement)
	}

	// B dominates the raw distances, so the raw clusters split along B.
	bValues := mat.Col(nil, 1, identity.Transformed)
	sorted := append([]float64(nil), bValues...)
	sort.Float64s(sorted)
	bMedian := sorted[len(sorted)/2]
	aboveMedian := func(i int) bool { return bValues[i] >= bMedian }
	if agreement := binaryAgreement(identity.Assignments, aboveMedian); agreement < 0.9 {
		t.Errorf("raw-scale assignments agree with the B median split at %.2f, want >= 0.9", agreement)
	}

	// After z-score the bimodal gap in A decides the clustering.
	if agreement := binaryAgreement(zscore.Assignments, inLowMode); agreement < 0.9 {
		t.Errorf("z-scored assignments agree with the A modes at %.2f, want >= 0.9", agreement)
	}
}

func TestRunClustering_ResultMetadata(t *testing.T) {
	cols := []dataset.Column{
		{Spec: dataset.Gaussian{Mean: 0, StdDev: 1}, N: 60},
		{Spec: dataset.Exponential{Scale: 10}, N: 60},
	}

	results, err := RunClustering(7, cols, []model.Transformer{preprocessing.NewIdentity()})
	if err != nil {
		t.Fatalf("RunClustering failed: %v", err)
	}

	res := results[0]
	if res.Estimator != "kmeans" {
		t.Errorf("estimator = %q, want kmeans", res.Estimator)
	}
	if len(res.Assignments) != 60 {
		t.Errorf("got %d assignments, want 60", len(res.Assignments))
	}
	if res.Metric < 0 {
		t.Errorf("within-cluster variance = %g, want non-negative", res.Metric)
	}
	if res.Transformed == nil {
		t.Fatal("transformed matrix missing from result")
	}

	if len(res.Shapes) != 2 {
		t.Fatalf("got %d shape diagnostics, want 2", len(res.Shapes))
	}
	if res.Shapes[1].Recommended != "log1p" {
		t.Errorf("exponential feature recommendation = %q, want log1p", res.Shapes[1].Recommended)
	}
}

func TestRunClassification_EndToEnd(t *testing.T) {
	classes := []dataset.ClassSpec{
		{Label: 0, N: 60, Features: []dataset.Spec{
			dataset.Gaussian{Mean: 0, StdDev: 1},
			dataset.Gaussian{Mean: 0, StdDev: 1},
		}},
		{Label: 1, N: 60, Features: []dataset.Spec{
			dataset.Gaussian{Mean: 5, StdDev: 1},
			dataset.Gaussian{Mean: 5, StdDev: 1},
		}},
	}
	transforms := []model.Transformer{
		preprocessing.NewIdentity(),
		preprocessing.NewStandardScaler(),
	}

	results, err := RunClassification(42, classes, transforms)
	if err != nil {
		t.Fatalf("RunClassification failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	for _, res := range results {
		if res.Estimator != "logistic_regression" {
			t.Errorf("%s: estimator = %q, want logistic_regression", res.Transform, res.Estimator)
		}
		if res.Metric < 0.9 {
			t.Errorf("%s: accuracy = %g, want >= 0.9 on well separated classes", res.Transform, res.Metric)
		}
		if res.Assignments != nil {
			t.Errorf("%s: classification results must not carry cluster assignments", res.Transform)
		}
		if res.Transformed == nil {
			t.Errorf("%s: transformed matrix missing from result", res.Transform)
		}
	}
}

// recordingClassifier captures the training labels it was handed so a test
// can verify that every transform saw the same partition.
type recordingClassifier struct {
	trainY []int
}

func (r *recordingClassifier) Fit(X mat.Matrix, y []int) error {
	r.trainY = append([]int(nil), y...)
	return nil
}

func (r *recordingClassifier) Predict(X mat.Matrix) ([]int, error) {
	rows, _ := X.Dims()
	return make([]int, rows), nil
}

func (r *recordingClassifier) Score(X mat.Matrix, y []int) (float64, error) {
	return 0, nil
}

// TestRunClassification_SharedSplit verifies the fairness invariant: every
// transform in one run trains against the identical labels in the identical
// order, because noise injection and the split happen once per run.
func TestRunClassification_SharedSplit(t *testing.T) {
	classes := []dataset.ClassSpec{
		{Label: 0, N: 40, Features: []dataset.Spec{dataset.Gaussian{Mean: 0, StdDev: 1}}},
		{Label: 1, N: 40, Features: []dataset.Spec{dataset.Gaussian{Mean: 3, StdDev: 1}}},
	}
	transforms := []model.Transformer{
		preprocessing.NewIdentity(),
		preprocessing.NewStandardScaler(),
	}

	var recorders []*recordingClassifier
	_, err := RunClassification(42, classes, transforms,
		WithNoiseFraction(0.1),
		WithClassifierFactory(func(seed int64) model.BinaryClassifier {
			r := &recordingClassifier{}
			recorders = append(recorders, r)
			return r
		}),
	)
	if err != nil {
		t.Fatalf("RunClassification failed: %v", err)
	}
	if len(recorders) != 2 {
		t.Fatalf("got %d classifier instances, want 2", len(recorders))
	}

	first, second := recorders[0].trainY, recorders[1].trainY
	if len(first) != len(second) {
		t.Fatalf("training partitions differ in size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("training label %d differs across transforms (%d vs %d)", i, first[i], second[i])
		}
	}
}

// TestRunClassification_FailedTransformAborts checks the default error
// policy: a transform whose domain the data violates fails the whole run.
func TestRunClassification_FailedTransformAborts(t *testing.T) {
	// Gaussian data contains values below -1, outside the log1p domain.
	classes := []dataset.ClassSpec{
		{Label: 0, N: 40, Features: []dataset.Spec{dataset.Gaussian{Mean: 0, StdDev: 2}}},
		{Label: 1, N: 40, Features: []dataset.Spec{dataset.Gaussian{Mean: 1, StdDev: 2}}},
	}
	transforms := []model.Transformer{
		preprocessing.NewIdentity(),
		preprocessing.NewLog1pTransformer(),
	}

	_, err := RunClassification(42, classes, transforms)
	if err == nil {
		t.Fatal("run must abort when a transform fails and skipping is not enabled")
	}
	var domErr *errors.DomainError
	if !errors.As(err, &domErr) {
		t.Errorf("expected DomainError, got %T: %v", err, err)
	}
}

func TestRunClassification_SkipFailedTransforms(t *testing.T) {
	classes := []dataset.ClassSpec{
		{Label: 0, N: 40, Features: []dataset.Spec{dataset.Gaussian{Mean: 0, StdDev: 2}}},
		{Label: 1, N: 40, Features: []dataset.Spec{dataset.Gaussian{Mean: 1, StdDev: 2}}},
	}
	transforms := []model.Transformer{
		preprocessing.NewLog1pTransformer(),
		preprocessing.NewStandardScaler(),
	}

	results, err := RunClassification(42, classes, transforms, WithSkipFailedTransforms())
	if err != nil {
		t.Fatalf("RunClassification failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if results[0].Err == nil {
		t.Error("log1p on gaussian data must be recorded as failed")
	}
	if results[1].Err != nil {
		t.Errorf("zscore should succeed, got error: %v", results[1].Err)
	}
	if results[1].Metric <= 0 {
		t.Errorf("surviving transform should report a metric, got %g", results[1].Metric)
	}
}
