// Package cluster はハーネスが距離ベースの協力者として呼び出す
// k-meansクラスタリングを提供する。
package cluster

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/core/model"
	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// DistanceFunc はn次元ベクトル間の距離を測る関数
type DistanceFunc func(a, b []float64) float64

// EuclideanDistance はユークリッド距離
var EuclideanDistance DistanceFunc = func(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// KMeans はLloyd法によるフルバッチk-meansクラスタリング。
// k-means++初期化を複数回実行し、慣性が最小の結果を採用する。
//
// クラスタラベルは{0..k-1}から割り当てられるが、実行間でラベルの
// 順序は保証されない（同じ分割が置換されたラベルで返りうる）。
type KMeans struct {
	model.BaseEstimator

	// ハイパーパラメータ
	nClusters   int
	maxIter     int
	tol         float64
	nInit       int
	randomState int64
	distance    DistanceFunc

	// 学習パラメータ
	clusterCenters_ [][]float64
	labels_         []int
	inertia_        float64
	nIter_          int

	// 内部状態
	rng        *rand.Rand
	nFeatures_ int
}

// KMeansOption はKMeansの設定オプション
type KMeansOption func(*KMeans)

// WithKMeansNClusters はクラスタ数を設定
func WithKMeansNClusters(n int) KMeansOption {
	return func(km *KMeans) {
		km.nClusters = n
	}
}

// WithKMeansMaxIter は最大イテレーション数を設定
func WithKMeansMaxIter(maxIter int) KMeansOption {
	return func(km *KMeans) {
		km.maxIter = maxIter
	}
}

// WithKMeansTol は収束判定の許容誤差を設定
func WithKMeansTol(tol float64) KMeansOption {
	return func(km *KMeans) {
		km.tol = tol
	}
}

// WithKMeansNInit は異なる初期化での実行回数を設定
func WithKMeansNInit(nInit int) KMeansOption {
	return func(km *KMeans) {
		km.nInit = nInit
	}
}

// WithKMeansRandomState は乱数シードを設定
func WithKMeansRandomState(seed int64) KMeansOption {
	return func(km *KMeans) {
		km.randomState = seed
		if seed >= 0 {
			km.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithKMeansDistance は距離関数を設定（デフォルト: ユークリッド距離）
func WithKMeansDistance(d DistanceFunc) KMeansOption {
	return func(km *KMeans) {
		km.distance = d
	}
}

// NewKMeans は新しいKMeansを作成する
func NewKMeans(options ...KMeansOption) *KMeans {
	km := &KMeans{
		nClusters:   2,
		maxIter:     300,
		tol:         1e-4,
		nInit:       10,
		randomState: -1,
		distance:    EuclideanDistance,
	}

	for _, opt := range options {
		opt(km)
	}

	if km.rng == nil {
		if km.randomState >= 0 {
			km.rng = rand.New(rand.NewSource(km.randomState))
		} else {
			km.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}

	return km
}

// Fit はLloyd法でモデルを訓練する
func (km *KMeans) Fit(X mat.Matrix) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "KMeans.Fit")
	}
	if km.nClusters <= 0 {
		return errors.NewConfigurationError("n_clusters", "cluster count must be positive", km.nClusters)
	}
	if rows < km.nClusters {
		return errors.NewConfigurationError("n_clusters", "sample count must be at least the cluster count",
			map[string]int{"n_samples": rows, "n_clusters": km.nClusters})
	}

	km.nFeatures_ = cols

	// 複数回実行して最良の結果を選択
	bestInertia := math.Inf(1)
	var bestCenters [][]float64
	var bestLabels []int
	var bestNIter int

	for run := 0; run < km.nInit; run++ {
		centers, labels, inertia, nIter := km.fitSingleRun(X)
		if inertia < bestInertia {
			bestInertia = inertia
			bestCenters = centers
			bestLabels = labels
			bestNIter = nIter
		}
	}

	km.clusterCenters_ = bestCenters
	km.labels_ = bestLabels
	km.inertia_ = bestInertia
	km.nIter_ = bestNIter

	km.SetFitted()
	return nil
}

// fitSingleRun は単一の初期化からのLloyd反復を実行する
func (km *KMeans) fitSingleRun(X mat.Matrix) ([][]float64, []int, float64, int) {
	rows, cols := X.Dims()

	centers := km.initKMeansPlusPlus(X)
	labels := make([]int, rows)
	var finalIter int

	for iter := 0; iter < km.maxIter; iter++ {
		finalIter = iter + 1

		// 割り当てステップ
		for i := 0; i < rows; i++ {
			sample := mat.Row(nil, i, X)
			labels[i] = km.findNearestCluster(sample, centers)
		}

		// 更新ステップ: クラスタ平均を再計算
		newCenters := make([][]float64, km.nClusters)
		counts := make([]int, km.nClusters)
		for c := range newCenters {
			newCenters[c] = make([]float64, cols)
		}
		for i := 0; i < rows; i++ {
			c := labels[i]
			counts[c]++
			for j := 0; j < cols; j++ {
				newCenters[c][j] += X.At(i, j)
			}
		}
		for c := 0; c < km.nClusters; c++ {
			if counts[c] == 0 {
				// 空クラスタは自分の中心から最も遠いサンプルに再配置する
				newCenters[c] = km.farthestSample(X, centers, labels)
				continue
			}
			for j := 0; j < cols; j++ {
				newCenters[c][j] /= float64(counts[c])
			}
		}

		// 収束判定: 中心の移動量
		shift := 0.0
		for c := 0; c < km.nClusters; c++ {
			shift += km.distance(centers[c], newCenters[c])
		}
		centers = newCenters

		if shift < km.tol {
			break
		}
	}

	// 最終的なラベルと慣性
	for i := 0; i < rows; i++ {
		sample := mat.Row(nil, i, X)
		labels[i] = km.findNearestCluster(sample, centers)
	}
	return centers, labels, km.computeInertia(X, centers), finalIter
}

// FitPredict は学習と予測を同時に行い、クラスタ割り当てを返す
func (km *KMeans) FitPredict(X mat.Matrix) ([]int, error) {
	if err := km.Fit(X); err != nil {
		return nil, err
	}

	labels := make([]int, len(km.labels_))
	copy(labels, km.labels_)
	return labels, nil
}

// Predict は入力データに対するクラスタ予測を行う
func (km *KMeans) Predict(X mat.Matrix) ([]int, error) {
	if !km.IsFitted() {
		return nil, errors.NewNotFittedError("KMeans", "Predict")
	}

	rows, cols := X.Dims()
	if cols != km.nFeatures_ {
		return nil, errors.NewDimensionError("KMeans.Predict", km.nFeatures_, cols, 1)
	}

	labels := make([]int, rows)
	for i := 0; i < rows; i++ {
		sample := mat.Row(nil, i, X)
		labels[i] = km.findNearestCluster(sample, km.clusterCenters_)
	}
	return labels, nil
}

// ClusterCenters は学習されたクラスタ中心を返す
func (km *KMeans) ClusterCenters() [][]float64 {
	centers := make([][]float64, len(km.clusterCenters_))
	for i := range km.clusterCenters_ {
		centers[i] = make([]float64, len(km.clusterCenters_[i]))
		copy(centers[i], km.clusterCenters_[i])
	}
	return centers
}

// Inertia は慣性（クラスタ内平方和誤差）を返す
func (km *KMeans) Inertia() float64 {
	return km.inertia_
}

// NIterations は採用された実行の学習イテレーション数を返す
func (km *KMeans) NIterations() int {
	return km.nIter_
}

// initKMeansPlusPlus はk-means++初期化を実行する
func (km *KMeans) initKMeansPlusPlus(X mat.Matrix) [][]float64 {
	rows, cols := X.Dims()
	centers := make([][]float64, km.nClusters)

	// 最初のクラスタ中心をランダムに選択
	centers[0] = make([]float64, cols)
	idx := km.rng.Intn(rows)
	sample := mat.Row(nil, idx, X)
	copy(centers[0], sample)

	// 残りの中心を距離二乗に比例した確率で選択
	for c := 1; c < km.nClusters; c++ {
		distances := make([]float64, rows)
		totalDistance := 0.0

		for i := 0; i < rows; i++ {
			sample := mat.Row(nil, i, X)
			minDist := math.Inf(1)
			for j := 0; j < c; j++ {
				if dist := km.distance(sample, centers[j]); dist < minDist {
					minDist = dist
				}
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		target := km.rng.Float64() * totalDistance
		cumSum := 0.0
		selectedIdx := 0
		for i := 0; i < rows; i++ {
			cumSum += distances[i]
			if cumSum >= target {
				selectedIdx = i
				break
			}
		}

		centers[c] = make([]float64, cols)
		sample = mat.Row(nil, selectedIdx, X)
		copy(centers[c], sample)
	}

	return centers
}

// findNearestCluster は最近傍クラスタを検索する
func (km *KMeans) findNearestCluster(sample []float64, centers [][]float64) int {
	minDist := math.Inf(1)
	nearestCluster := 0

	for c, center := range centers {
		if dist := km.distance(sample, center); dist < minDist {
			minDist = dist
			nearestCluster = c
		}
	}
	return nearestCluster
}

// farthestSample は自分の割り当て中心から最も遠いサンプルを返す
func (km *KMeans) farthestSample(X mat.Matrix, centers [][]float64, labels []int) []float64 {
	rows, _ := X.Dims()
	maxDist := -1.0
	var farthest []float64

	for i := 0; i < rows; i++ {
		sample := mat.Row(nil, i, X)
		if dist := km.distance(sample, centers[labels[i]]); dist > maxDist {
			maxDist = dist
			farthest = sample
		}
	}
	return farthest
}

// computeInertia は慣性（クラスタ内平方和誤差）を計算する
func (km *KMeans) computeInertia(X mat.Matrix, centers [][]float64) float64 {
	rows, _ := X.Dims()
	inertia := 0.0

	for i := 0; i < rows; i++ {
		sample := mat.Row(nil, i, X)
		dist := km.distance(sample, centers[km.findNearestCluster(sample, centers)])
		inertia += dist * dist
	}
	return inertia
}
