package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/core/model"
	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// Log1pTransformer は各値vをln(1+v)に写像する変換。
// 大きな値と右の重い裾を圧縮するため、右に歪んだ非負データに適する。
//
// 前提条件: 全ての値は-1より大きいこと。-1以下の値はfit時・変換時の
// いずれでもDomainErrorになり、問題の行と特徴量が報告される。
type Log1pTransformer struct {
	model.BaseEstimator

	// NFeatures は特徴量の数
	NFeatures int
}

// NewLog1pTransformer は新しいLog1pTransformerを作成する
func NewLog1pTransformer() *Log1pTransformer {
	return &Log1pTransformer{}
}

// Name は変換の名前を返す
func (t *Log1pTransformer) Name() string { return "log1p" }

// checkDomain は全ての値が-1より大きいことを検証する
func checkDomain(op string, X mat.Matrix) error {
	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := X.At(i, j); v <= -1 {
				return errors.NewDomainError(op, j, i, v, "all values must be > -1")
			}
		}
	}
	return nil
}

// Fit は前提条件を検証し、特徴量数を記録する。
// 学習する統計量はない。
func (t *Log1pTransformer) Fit(X mat.Matrix) error {
	if t.IsFitted() {
		return errors.Wrap(errors.ErrAlreadyFitted, "Log1pTransformer.Fit")
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Log1pTransformer.Fit")
	}
	if err := checkDomain("Log1pTransformer.Fit", X); err != nil {
		return err
	}

	t.NFeatures = c
	t.SetFitted()
	return nil
}

// Transform は各値をln(1+v)に写像する
func (t *Log1pTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("Log1pTransformer", "Transform")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("Log1pTransformer.Transform", t.NFeatures, c, 1)
	}
	if err := checkDomain("Log1pTransformer.Transform", X); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, math.Log1p(X.At(i, j)))
		}
	}
	return result, nil
}

// FitTransform はFitとTransformを同時に実行する
func (t *Log1pTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// InverseTransform は各値をexp(v)-1に写像して元のスケールに戻す
func (t *Log1pTransformer) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("Log1pTransformer", "InverseTransform")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("Log1pTransformer.InverseTransform", t.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, math.Expm1(X.At(i, j)))
		}
	}
	return result, nil
}
