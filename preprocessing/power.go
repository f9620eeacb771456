package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scalebench/core/model"
	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// lambdaSearchMin/Max はλの探索区間。[-2, 2]で実用上の変換は全て覆える
const (
	lambdaSearchMin = -2.0
	lambdaSearchMax = 2.0
	lambdaSearchTol = 1e-5
)

// BoxCoxTransformer はBox-Cox族のべき変換。
// 各特徴量ごとに形状パラメータλをプロファイル対数尤度の最大化で推定し、
//
//	y = (v^λ - 1) / λ   (λ ≠ 0)
//	y = ln(v)           (λ = 0)
//
// で写像する。デフォルトでは変換後にz-score標準化を重ねる。
//
// 非正の入力に対するポリシー: Box-Cox変換は厳密に正の値にのみ定義される。
// v ≤ 0 はfit時・変換時のいずれでもDomainErrorになる。暗黙のシフトは行わない
// （ゼロや負値を含むデータには log1p など別の変換を選ぶこと）。
type BoxCoxTransformer struct {
	model.BaseEstimator

	// Lambdas は各特徴量の推定された（または固定された）形状パラメータ
	Lambdas []float64

	// NFeatures は特徴量の数
	NFeatures int

	standardize bool
	fixedLambda *float64

	scaler *StandardScaler
}

// BoxCoxOption はBoxCoxTransformerの設定オプション
type BoxCoxOption func(*BoxCoxTransformer)

// WithLambda は全特徴量で共通の固定λを設定する（最尤探索を省略する）
func WithLambda(lambda float64) BoxCoxOption {
	return func(t *BoxCoxTransformer) {
		t.fixedLambda = &lambda
	}
}

// WithStandardize はべき変換後にz-score標準化を重ねるかどうかを設定する（デフォルト: true）
func WithStandardize(standardize bool) BoxCoxOption {
	return func(t *BoxCoxTransformer) {
		t.standardize = standardize
	}
}

// NewBoxCoxTransformer は新しいBoxCoxTransformerを作成する
func NewBoxCoxTransformer(opts ...BoxCoxOption) *BoxCoxTransformer {
	t := &BoxCoxTransformer{standardize: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name は変換の名前を返す
func (t *BoxCoxTransformer) Name() string { return "boxcox" }

// checkPositive は全ての値が厳密に正であることを検証する
func checkPositive(op string, X mat.Matrix) error {
	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := X.At(i, j); v <= 0 {
				return errors.NewDomainError(op, j, i, v, "Box-Cox requires strictly positive values")
			}
		}
	}
	return nil
}

// Fit は各特徴量のλを推定し、standardize有効時は変換後の統計量も学習する
func (t *BoxCoxTransformer) Fit(X mat.Matrix) error {
	if t.IsFitted() {
		return errors.Wrap(errors.ErrAlreadyFitted, "BoxCoxTransformer.Fit")
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "BoxCoxTransformer.Fit")
	}
	if err := checkPositive("BoxCoxTransformer.Fit", X); err != nil {
		return err
	}

	t.NFeatures = c
	t.Lambdas = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		if t.fixedLambda != nil {
			t.Lambdas[j] = *t.fixedLambda
		} else {
			t.Lambdas[j] = maximizeLogLikelihood(col)
		}
	}

	if t.standardize {
		powered := t.applyPower(X)
		t.scaler = NewStandardScaler()
		if err := t.scaler.Fit(powered); err != nil {
			return err
		}
	}

	t.SetFitted()
	return nil
}

// Transform は学習済みのλ（と標準化統計量）でデータを写像する
func (t *BoxCoxTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("BoxCoxTransformer", "Transform")
	}

	_, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("BoxCoxTransformer.Transform", t.NFeatures, c, 1)
	}
	if err := checkPositive("BoxCoxTransformer.Transform", X); err != nil {
		return nil, err
	}

	powered := t.applyPower(X)
	if !t.standardize {
		return powered, nil
	}
	return t.scaler.Transform(powered)
}

// FitTransform はFitとTransformを同時に実行する
func (t *BoxCoxTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// applyPower は学習済みのλでべき写像のみを適用する
func (t *BoxCoxTransformer) applyPower(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, boxCox(X.At(i, j), t.Lambdas[j]))
		}
	}
	return result
}

// String は変換の文字列表現を返す
func (t *BoxCoxTransformer) String() string {
	if !t.IsFitted() {
		return fmt.Sprintf("BoxCoxTransformer(standardize=%t)", t.standardize)
	}
	return fmt.Sprintf("BoxCoxTransformer(standardize=%t, lambdas=%v)", t.standardize, t.Lambdas)
}

// boxCox は単一値のBox-Cox写像
func boxCox(v, lambda float64) float64 {
	if math.Abs(lambda) < 1e-8 {
		return math.Log(v)
	}
	return (math.Pow(v, lambda) - 1) / lambda
}

// boxCoxLogLikelihood はλに対するプロファイル対数尤度を計算する。
// 定数項を除いて llf(λ) = -(n/2)·ln(σ²_λ) + (λ-1)·Σ ln(x)
func boxCoxLogLikelihood(xs []float64, lambda float64) float64 {
	n := len(xs)
	transformed := make([]float64, n)
	logSum := 0.0
	for i, v := range xs {
		transformed[i] = boxCox(v, lambda)
		logSum += math.Log(v)
	}

	variance := stat.PopVariance(transformed, nil)
	if variance <= 0 {
		return math.Inf(-1)
	}
	return -float64(n)/2*math.Log(variance) + (lambda-1)*logSum
}

// maximizeLogLikelihood は黄金分割探索で[-2, 2]上の尤度最大点を求める
func maximizeLogLikelihood(xs []float64) float64 {
	const phi = 0.618033988749895 // (√5 - 1) / 2

	a, b := lambdaSearchMin, lambdaSearchMax
	c := b - phi*(b-a)
	d := a + phi*(b-a)
	fc := boxCoxLogLikelihood(xs, c)
	fd := boxCoxLogLikelihood(xs, d)

	for b-a > lambdaSearchTol {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - phi*(b-a)
			fc = boxCoxLogLikelihood(xs, c)
		} else {
			a, c, fc = c, d, fd
			d = a + phi*(b-a)
			fd = boxCoxLogLikelihood(xs, d)
		}
	}
	return (a + b) / 2
}
