package model

import "gonum.org/v1/gonum/mat"

// Transformer はデータ変換のインターフェース。
// Fitは一度だけ呼び出せる。Fit前のTransformはNotFittedErrorを返す。
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)

	// Name は変換の名前を返す（レポート用）
	Name() string
}

// InvertibleTransformer は逆変換が定義されている変換のインターフェース
type InvertibleTransformer interface {
	Transformer

	// InverseTransform は変換されたデータを元のスケールに戻す
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}
