package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// WithinClusterVariance はクラスタ割り当てに対するクラスタ内分散
// （各サンプルから所属クラスタ重心までの距離二乗の平均）を計算する。
// クラスタリング実験のクラスタ品質指標として使う。
func WithinClusterVariance(X mat.Matrix, labels []int) (float64, error) {
	// 入力検証
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return 0, errors.NewValueError("WithinClusterVariance", "empty matrix")
	}
	if len(labels) != rows {
		return 0, errors.NewDimensionError("WithinClusterVariance", rows, len(labels), 0)
	}

	nClusters := 0
	for _, label := range labels {
		if label < 0 {
			return 0, errors.NewValueError("WithinClusterVariance", "cluster labels must be non-negative")
		}
		if label+1 > nClusters {
			nClusters = label + 1
		}
	}

	// クラスタ重心を計算
	centroids := make([][]float64, nClusters)
	counts := make([]int, nClusters)
	for c := range centroids {
		centroids[c] = make([]float64, cols)
	}
	for i := 0; i < rows; i++ {
		c := labels[i]
		counts[c]++
		for j := 0; j < cols; j++ {
			centroids[c][j] += X.At(i, j)
		}
	}
	for c := 0; c < nClusters; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			centroids[c][j] /= float64(counts[c])
		}
	}

	// 距離二乗の平均
	total := 0.0
	for i := 0; i < rows; i++ {
		c := labels[i]
		for j := 0; j < cols; j++ {
			diff := X.At(i, j) - centroids[c][j]
			total += diff * diff
		}
	}
	return total / float64(rows), nil
}
