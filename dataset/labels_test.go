package dataset

import (
	"testing"
)

// TestFlipLabels_ExactCount はノイズ注入が近似ではなく厳密な個数を反転することを確認する
func TestFlipLabels_ExactCount(t *testing.T) {
	y := make([]int, 1000)
	for i := 500; i < 1000; i++ {
		y[i] = 1
	}

	flipped, indices, err := FlipLabels(y, 0.1, 42)
	if err != nil {
		t.Fatalf("FlipLabels failed: %v", err)
	}

	if len(indices) != 100 {
		t.Errorf("fraction 0.1 over 1000 labels must flip exactly 100, got %d", len(indices))
	}

	changed := 0
	for i := range y {
		if y[i] != flipped[i] {
			changed++
		}
	}
	if changed != 100 {
		t.Errorf("expected exactly 100 changed labels, got %d", changed)
	}

	// 報告されたインデックスと実際の変更箇所が一致すること
	for _, idx := range indices {
		if y[idx] == flipped[idx] {
			t.Errorf("index %d reported as flipped but unchanged", idx)
		}
	}
}

// TestFlipLabels_SeedsDisjoint は異なるシードによる反転集合がほぼ独立である
// ことを確認する。1000サンプル中100反転なら独立な集合の期待重複は約10個。
// 半数を超える重複はストリーム分離の失敗を意味する。
func TestFlipLabels_SeedsDisjoint(t *testing.T) {
	y := make([]int, 1000)

	_, idx1, err := FlipLabels(y, 0.1, 1)
	if err != nil {
		t.Fatalf("FlipLabels failed: %v", err)
	}
	_, idx2, err := FlipLabels(y, 0.1, 2)
	if err != nil {
		t.Fatalf("FlipLabels failed: %v", err)
	}

	set1 := make(map[int]bool, len(idx1))
	for _, i := range idx1 {
		set1[i] = true
	}
	overlap := 0
	for _, i := range idx2 {
		if set1[i] {
			overlap++
		}
	}
	if overlap*2 >= len(idx1) {
		t.Errorf("flip sets for different seeds overlap on %d of %d indices", overlap, len(idx1))
	}
}

func TestFlipLabels_Deterministic(t *testing.T) {
	y := make([]int, 500)

	_, idx1, _ := FlipLabels(y, 0.2, 7)
	_, idx2, _ := FlipLabels(y, 0.2, 7)

	if len(idx1) != len(idx2) {
		t.Fatalf("flip counts differ: %d vs %d", len(idx1), len(idx2))
	}
	for i := range idx1 {
		if idx1[i] != idx2[i] {
			t.Fatal("same seed must flip the same indices")
		}
	}
}

func TestFlipLabels_ZeroFraction(t *testing.T) {
	y := []int{0, 1, 0, 1}
	flipped, indices, err := FlipLabels(y, 0, 1)
	if err != nil {
		t.Fatalf("FlipLabels failed: %v", err)
	}
	if len(indices) != 0 {
		t.Errorf("fraction 0 must flip nothing, got %d flips", len(indices))
	}
	for i := range y {
		if flipped[i] != y[i] {
			t.Error("labels changed with fraction 0")
		}
	}
}

func TestFlipLabels_InvalidInputs(t *testing.T) {
	if _, _, err := FlipLabels([]int{0, 1}, -0.1, 1); err == nil {
		t.Error("negative fraction must be rejected")
	}
	if _, _, err := FlipLabels([]int{0, 1}, 1.5, 1); err == nil {
		t.Error("fraction above 1 must be rejected")
	}
	if _, _, err := FlipLabels([]int{0, 2}, 0.5, 1); err == nil {
		t.Error("non-binary labels must be rejected")
	}
}

func TestFlipLabels_InputUntouched(t *testing.T) {
	y := []int{0, 0, 1, 1, 0, 1, 0, 1, 0, 1}
	orig := make([]int, len(y))
	copy(orig, y)

	if _, _, err := FlipLabels(y, 0.5, 3); err != nil {
		t.Fatalf("FlipLabels failed: %v", err)
	}
	for i := range y {
		if y[i] != orig[i] {
			t.Fatal("FlipLabels must not mutate its input")
		}
	}
}
