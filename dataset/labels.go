package dataset

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// FlipLabels はラベル観測誤差をモデル化するノイズ注入を行う。
//
// 入力のコピーに対して、ちょうど floor(fraction*n) 個のインデックスを
// シード付き順列から非復元抽出し、そのラベルを反転（0↔1）する。
// 反転されたコピーと反転インデックス（昇順）を返す。入力は変更しない。
func FlipLabels(y []int, fraction float64, seed uint64) ([]int, []int, error) {
	if fraction < 0 || fraction > 1 {
		return nil, nil, errors.NewConfigurationError("fraction", "noise fraction must be in [0, 1]", fraction)
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return nil, nil, errors.NewConfigurationError("y", "labels must be binary (0 or 1)",
				map[string]int{"index": i, "label": label})
		}
	}

	n := len(y)
	flipped := make([]int, n)
	copy(flipped, y)

	count := int(math.Floor(fraction * float64(n)))
	if count == 0 {
		return flipped, nil, nil
	}

	// ノイズ専用のストリーム語を使い、特徴量サンプリングと重ならないようにする
	rng := rand.New(rand.NewPCG(seed, noiseStream))
	perm := rng.Perm(n)
	indices := perm[:count]
	for _, idx := range indices {
		flipped[idx] = 1 - flipped[idx]
	}

	sorted := make([]int, count)
	copy(sorted, indices)
	sort.Ints(sorted)
	return flipped, sorted, nil
}
