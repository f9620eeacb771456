package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/core/model"
	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// Identity は入力をそのまま返す変換。「スケーリングなし」のベースラインとして使う。
// Fitは特徴量数を記録するだけで統計量は学習しない。
type Identity struct {
	model.BaseEstimator

	// NFeatures は特徴量の数
	NFeatures int
}

// NewIdentity は新しいIdentity変換を作成する
func NewIdentity() *Identity {
	return &Identity{}
}

// Name は変換の名前を返す
func (t *Identity) Name() string { return "identity" }

// Fit は特徴量数を記録する
func (t *Identity) Fit(X mat.Matrix) error {
	if t.IsFitted() {
		return errors.Wrap(errors.ErrAlreadyFitted, "Identity.Fit")
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Identity.Fit")
	}

	t.NFeatures = c
	t.SetFitted()
	return nil
}

// Transform は入力のコピーを返す。
// 呼び出し元が結果を変更しても元の行列に影響しないようコピーを返す。
func (t *Identity) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("Identity", "Transform")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("Identity.Transform", t.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	result.Copy(X)
	return result, nil
}

// FitTransform はFitとTransformを同時に実行する
func (t *Identity) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// InverseTransform は入力のコピーを返す（恒等変換の逆は恒等変換）
func (t *Identity) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("Identity", "InverseTransform")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("Identity.InverseTransform", t.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	result.Copy(X)
	return result, nil
}
