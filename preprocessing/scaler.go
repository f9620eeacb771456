// Package preprocessing はスケーリング実験で比較される変換ライブラリを提供する。
//
// 各変換は model.Transformer 契約に従う: Fitは参照行列から統計量を学習し、
// Transformは学習済みパラメータで同じ特徴量数の任意の行列を写像する。
// Fitは一度しか呼び出せない（再fitは新しいインスタンスの作成に相当する）。
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scalebench/core/model"
	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// StandardScaler はz-score標準化を行う変換。
// 各特徴量を独立に平均0、標準偏差1（母標準偏差、÷n）に変換する。
//
// 分散ゼロの特徴量に対するポリシー:
//
//   - デフォルト: スケールを1に固定し、標準化後の出力を全て0と定義する。
//     DegenerateFeatureWarningが警告ハンドラに送られる。
//   - strict (WithStrictVariance(true)): FitがDegenerateFeatureErrorを返す。
//
// いずれのポリシーでもゼロ除算は発生しない。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の母標準偏差（縮退特徴量では1に固定）
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	strict bool
}

// ScalerOption はStandardScalerの設定オプション
type ScalerOption func(*StandardScaler)

// WithStrictVariance は分散ゼロの特徴量をエラーとして扱うstrictポリシーを設定する
func WithStrictVariance(strict bool) ScalerOption {
	return func(s *StandardScaler) {
		s.strict = strict
	}
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	err := scaler.Fit(XTrain)
//	XScaled, err := scaler.Transform(XEval)
func NewStandardScaler(opts ...ScalerOption) *StandardScaler {
	s := &StandardScaler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name は変換の名前を返す
func (s *StandardScaler) Name() string { return "zscore" }

// Fit は訓練データから各特徴量の平均と母標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	if s.IsFitted() {
		return errors.Wrap(errors.ErrAlreadyFitted, "StandardScaler.Fit")
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "StandardScaler.Fit")
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		s.Mean[j] = stat.Mean(col, nil)

		// 母標準偏差（÷n）。fitした行列自身に適用したとき厳密に標準偏差1になる
		sumSquares := 0.0
		for _, v := range col {
			diff := v - s.Mean[j]
			sumSquares += diff * diff
		}
		s.Scale[j] = math.Sqrt(sumSquares / float64(r))

		if s.Scale[j] < 1e-8 {
			if s.strict {
				return errors.NewDegenerateFeatureError("StandardScaler.Fit", j)
			}
			// デフォルトポリシー: (v - mean) / 1 = 0 で出力を全て0に定義する
			errors.Warn(errors.NewDegenerateFeatureWarning("StandardScaler.Fit", j))
			s.Scale[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計量でデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return result, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(strict=%t)", s.strict)
	}
	return fmt.Sprintf("StandardScaler(strict=%t, n_features=%d)", s.strict, s.NFeatures)
}
