// Package metrics は実験結果の評価指標を提供する。
package metrics

import (
	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// Accuracy は正解率（正しく予測されたラベルの割合）を計算する
func Accuracy(yTrue, yPred []int) (float64, error) {
	// 入力検証
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label vector")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(yPred), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}
