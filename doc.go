// Package scalebench provides a seeded experimentation harness for studying
// how feature scaling changes the behaviour of scale-sensitive estimators.
//
// The harness generates synthetic feature distributions with controlled
// shapes, applies competing transforms under identical conditions and reports
// one scalar outcome per (transform, estimator) pairing, so a difference in
// outcome is attributable to the transform alone.
//
// # Quick Start
//
// Compare no scaling against z-score scaling on a clustering task:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scalebench/core/model"
//	    "github.com/YuminosukeSato/scalebench/dataset"
//	    "github.com/YuminosukeSato/scalebench/experiment"
//	    "github.com/YuminosukeSato/scalebench/preprocessing"
//	)
//
//	func main() {
//	    cols := []dataset.Column{
//	        {Spec: dataset.UniformMixture{Segments: []dataset.Uniform{
//	            {Low: 0, High: 4},
//	            {Low: 6, High: 10},
//	        }}, N: 100},
//	        {Spec: dataset.Uniform{Low: 0, High: 1000}, N: 100},
//	    }
//	    transforms := []model.Transformer{
//	        preprocessing.NewIdentity(),
//	        preprocessing.NewStandardScaler(),
//	    }
//
//	    results, err := experiment.RunClustering(42, cols, transforms)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, r := range results {
//	        fmt.Println(r)
//	    }
//	}
//
// # Packages
//
// The module is organized into several packages:
//
//   - dataset: Seeded synthetic distribution generators and label noise
//   - preprocessing: Transforms with fit/apply semantics (zscore, log1p, boxcox, identity)
//   - diagnose: Advisory shape classifier based on sample skewness
//   - experiment: The comparison harness (shared data, noise and split per run)
//   - cluster: k-means clustering collaborator
//   - linear_model: Logistic regression collaborator
//   - metrics: Outcome metrics (accuracy, within-cluster variance)
//   - plotsink: Scatter and histogram rendering of finished runs
//   - core/model: Core interfaces and base types
//
// # Determinism
//
// Every sampling, splitting and fitting step is driven by an explicit seed.
// Re-running an experiment with the same specs and the same seed reproduces
// the same matrices, the same partitions and the same outcome metrics.
//
// # License
//
// scalebench is released under the MIT License.
package scalebench
