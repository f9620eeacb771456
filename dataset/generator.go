package dataset

import (
	"log/slog"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scalebench/pkg/errors"
	scilog "github.com/YuminosukeSato/scalebench/pkg/log"
)

// Column は行列の一列を生成する仕様とサンプル数の組
type Column struct {
	Spec Spec
	N    int
}

// PCGの第2語をストリーム識別子として使い分ける。特徴量サンプリングは
// 下位領域（クラスインデックス<<32 | 列インデックス）を占め、ラベルノイズは
// 最上位ビット領域を使うため、シードが同じでも両者のストリームは重ならない。
const noiseStream = uint64(1) << 63

// Generate は独立に生成された特徴量を列方向に結合して一つの行列を作る。
//
// 各列はシードと列インデックスから導出された独立したPCGストリームから
// サンプリングされるため、列間に相関はなく、同じ(仕様, シード)の組は
// 常に同じ行列を返す。全ての列は同じサンプル数を持たなければならない。
func Generate(seed uint64, cols ...Column) (*mat.Dense, error) {
	return generate(seed, 0, cols...)
}

// generate は列jにストリーム語 stream|j を割り当てて各列を生成する
func generate(seed, stream uint64, cols ...Column) (*mat.Dense, error) {
	if len(cols) == 0 {
		return nil, errors.NewConfigurationError("cols", "at least one column spec is required", 0)
	}

	n := cols[0].N
	for i, col := range cols {
		if col.N <= 0 {
			return nil, errors.NewConfigurationError("n", "sample count must be positive", col.N)
		}
		if col.N != n {
			return nil, errors.NewDimensionError("dataset.Generate", n, col.N, 0)
		}
		if col.Spec == nil {
			return nil, errors.NewConfigurationError("spec", "column spec must not be nil", i)
		}
		if err := col.Spec.Validate(); err != nil {
			return nil, err
		}
	}

	X := mat.NewDense(n, len(cols), nil)
	for j, col := range cols {
		src := rand.NewPCG(seed, stream|uint64(j))
		X.SetCol(j, col.Spec.sample(n, src))
	}

	slog.Debug("generated feature matrix",
		scilog.OperationKey, "generate",
		scilog.SamplesKey, n,
		scilog.FeaturesKey, len(cols),
		scilog.SeedKey, seed,
	)
	return X, nil
}

// GenerateVector は単一の特徴量をベクトルとして生成する。
// 形状診断やヒストグラム描画のための補助関数。
func GenerateVector(seed uint64, spec Spec, n int) ([]float64, error) {
	X, err := Generate(seed, Column{Spec: spec, N: n})
	if err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, X), nil
}

// ClassSpec は合成分類問題の一クラス分の仕様。
// Featuresの各要素が一つの特徴量列を生成する。
type ClassSpec struct {
	Label    int
	N        int
	Features []Spec
}

// GenerateLabeled は複数クラスの行ブロックを縦に積み、
// 行ごとに対応するラベルを返す。全クラスは同じ特徴量数を持つこと。
// クラスkの行ブロックはストリーム語の上位にクラスインデックスを
// 埋め込んだ独立したストリームでサンプリングされる。
func GenerateLabeled(seed uint64, classes ...ClassSpec) (*mat.Dense, []int, error) {
	if len(classes) == 0 {
		return nil, nil, errors.NewConfigurationError("classes", "at least one class spec is required", 0)
	}

	nFeatures := len(classes[0].Features)
	total := 0
	for _, c := range classes {
		if c.N <= 0 {
			return nil, nil, errors.NewConfigurationError("n", "class sample count must be positive", c.N)
		}
		if len(c.Features) != nFeatures {
			return nil, nil, errors.NewDimensionError("dataset.GenerateLabeled", nFeatures, len(c.Features), 1)
		}
		total += c.N
	}

	X := mat.NewDense(total, nFeatures, nil)
	y := make([]int, 0, total)
	row := 0
	for k, c := range classes {
		cols := make([]Column, nFeatures)
		for j, spec := range c.Features {
			cols[j] = Column{Spec: spec, N: c.N}
		}
		// クラスごとに独立したストリーム領域を使う
		block, err := generate(seed, uint64(k+1)<<32, cols...)
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < c.N; i++ {
			X.SetRow(row, mat.Row(nil, i, block))
			row++
			y = append(y, c.Label)
		}
	}
	return X, y, nil
}
