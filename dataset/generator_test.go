package dataset

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// TestGenerate_Deterministic は同じ(仕様, シード)の組が常に同じ行列を返すことを確認する
func TestGenerate_Deterministic(t *testing.T) {
	cols := []Column{
		{Spec: Gaussian{Mean: 0, StdDev: 1}, N: 200},
		{Spec: Exponential{Scale: 10}, N: 200},
		{Spec: UniformMixture{Segments: []Uniform{{0, 4}, {6, 10}}}, N: 200},
	}

	X1, err := Generate(42, cols...)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	X2, err := Generate(42, cols...)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !mat.Equal(X1, X2) {
		t.Error("same spec and seed must yield identical matrices")
	}

	// 異なるシードは異なる行列を返すはず
	X3, err := Generate(43, cols...)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if mat.Equal(X1, X3) {
		t.Error("different seeds should yield different matrices")
	}
}

func TestGenerate_Shape(t *testing.T) {
	X, err := Generate(7,
		Column{Spec: Uniform{0, 1}, N: 50},
		Column{Spec: Gaussian{Mean: 5, StdDev: 2}, N: 50},
	)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	r, c := X.Dims()
	if r != 50 || c != 2 {
		t.Errorf("expected shape (50, 2), got (%d, %d)", r, c)
	}
}

// TestGenerate_UniformMixture はセグメントの入力順が保存され、
// 各サンプルがいずれかのセグメント区間に入ることを確認する
func TestGenerate_UniformMixture(t *testing.T) {
	mix := UniformMixture{Segments: []Uniform{{0, 4}, {6, 10}}}
	xs, err := GenerateVector(1, mix, 100)
	if err != nil {
		t.Fatalf("GenerateVector failed: %v", err)
	}

	// 前半50サンプルは[0,4)、後半50サンプルは[6,10)
	for i, v := range xs[:50] {
		if v < 0 || v >= 4 {
			t.Errorf("sample %d = %g, expected in [0, 4)", i, v)
		}
	}
	for i, v := range xs[50:] {
		if v < 6 || v >= 10 {
			t.Errorf("sample %d = %g, expected in [6, 10)", 50+i, v)
		}
	}
}

// TestGenerate_UniformMixture_Remainder は余りが最後のセグメントに割り当てられることを確認する
func TestGenerate_UniformMixture_Remainder(t *testing.T) {
	mix := UniformMixture{Segments: []Uniform{{0, 1}, {2, 3}, {4, 5}}}
	xs, err := GenerateVector(1, mix, 101)
	if err != nil {
		t.Fatalf("GenerateVector failed: %v", err)
	}
	if len(xs) != 101 {
		t.Fatalf("expected 101 samples, got %d", len(xs))
	}

	// 101 / 3 = 33, 最後のセグメントが 101 - 66 = 35 を受け取る
	inLast := 0
	for _, v := range xs {
		if v >= 4 && v < 5 {
			inLast++
		}
	}
	if inLast != 35 {
		t.Errorf("last segment should hold the remainder: expected 35 samples, got %d", inLast)
	}
}

func TestGenerate_Exponential_NonNegative(t *testing.T) {
	xs, err := GenerateVector(3, Exponential{Scale: 10}, 1000)
	if err != nil {
		t.Fatalf("GenerateVector failed: %v", err)
	}
	for i, v := range xs {
		if v < 0 {
			t.Errorf("sample %d = %g, exponential draws must be non-negative", i, v)
		}
	}
}

func TestGenerate_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
	}{
		{"no columns", nil},
		{"negative sample count", []Column{{Spec: Uniform{0, 1}, N: -5}}},
		{"zero sample count", []Column{{Spec: Uniform{0, 1}, N: 0}}},
		{"invalid uniform", []Column{{Spec: Uniform{5, 1}, N: 10}}},
		{"invalid exponential", []Column{{Spec: Exponential{Scale: -1}, N: 10}}},
		{"invalid gaussian", []Column{{Spec: Gaussian{Mean: 0, StdDev: 0}, N: 10}}},
		{"empty mixture", []Column{{Spec: UniformMixture{}, N: 10}}},
		{"nil spec", []Column{{Spec: nil, N: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(1, tt.cols...)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
		})
	}
}

func TestGenerate_MismatchedColumnLengths(t *testing.T) {
	_, err := Generate(1,
		Column{Spec: Uniform{0, 1}, N: 50},
		Column{Spec: Uniform{0, 1}, N: 60},
	)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}

	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("expected DimensionError, got %T: %v", err, err)
	}
}

// TestGenerateLabeled_NoiseStreamIndependent はラベルノイズ用ストリームが
// どのクラスの特徴量サンプリングストリームとも一致しないことを確認する
func TestGenerateLabeled_NoiseStreamIndependent(t *testing.T) {
	const seed = 42
	X, _, err := GenerateLabeled(seed,
		ClassSpec{Label: 0, N: 10, Features: []Spec{Uniform{Low: 0, High: 1}}},
		ClassSpec{Label: 1, N: 10, Features: []Spec{Uniform{Low: 0, High: 1}}},
	)
	if err != nil {
		t.Fatalf("GenerateLabeled failed: %v", err)
	}

	// FlipLabelsと同じソースから一様乱数を引き、クラス0・特徴量0の列と
	// ビット単位で一致しないことを確認する
	noise := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewPCG(seed, noiseStream)}
	identical := true
	for i := 0; i < 10; i++ {
		if X.At(i, 0) != noise.Rand() {
			identical = false
			break
		}
	}
	if identical {
		t.Error("label noise stream reproduces the class 0 feature sampling draws")
	}
}

func TestGenerateLabeled(t *testing.T) {
	X, y, err := GenerateLabeled(11,
		ClassSpec{Label: 0, N: 30, Features: []Spec{Gaussian{Mean: 0, StdDev: 1}, Gaussian{Mean: 0, StdDev: 1}}},
		ClassSpec{Label: 1, N: 20, Features: []Spec{Gaussian{Mean: 5, StdDev: 1}, Gaussian{Mean: 5, StdDev: 1}}},
	)
	if err != nil {
		t.Fatalf("GenerateLabeled failed: %v", err)
	}

	r, c := X.Dims()
	if r != 50 || c != 2 {
		t.Errorf("expected shape (50, 2), got (%d, %d)", r, c)
	}
	if len(y) != 50 {
		t.Fatalf("expected 50 labels, got %d", len(y))
	}
	for i := 0; i < 30; i++ {
		if y[i] != 0 {
			t.Fatalf("label %d = %d, want 0", i, y[i])
		}
	}
	for i := 30; i < 50; i++ {
		if y[i] != 1 {
			t.Fatalf("label %d = %d, want 1", i, y[i])
		}
	}
}
