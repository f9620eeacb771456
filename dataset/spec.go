// Package dataset は形状を制御可能な合成特徴量分布を生成する。
// 全ての生成は明示的なシードに従い、同じ仕様と同じシードは常に同じ行列を返す。
package dataset

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/scalebench/pkg/errors"
)

// Spec は分布仕様のタグ付きバリアント。
// Uniform / UniformMixture / Exponential / Gaussian のいずれか。
// sampleが非公開であるためバリアントの集合はこのパッケージ内で閉じている。
type Spec interface {
	// Validate は仕様のパラメータを検証する
	Validate() error

	// String は仕様の文字列表現を返す（レポート用）
	String() string

	sample(n int, src rand.Source) []float64
}

// Uniform は区間[Low, High)の一様分布
type Uniform struct {
	Low  float64
	High float64
}

// Validate は仕様のパラメータを検証する
func (u Uniform) Validate() error {
	if u.Low >= u.High {
		return errors.NewConfigurationError("uniform", "low must be less than high",
			fmt.Sprintf("[%g, %g)", u.Low, u.High))
	}
	return nil
}

func (u Uniform) String() string {
	return fmt.Sprintf("Uniform(%g, %g)", u.Low, u.High)
}

func (u Uniform) sample(n int, src rand.Source) []float64 {
	dist := distuv.Uniform{Min: u.Low, Max: u.High, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// UniformMixture は互いに素な一様区間の混合。
// 要求されたサンプル数を入力順にセグメントへ分配し、連結する。
// 一つの軸に沿って視覚的に分離する二峰性の特徴量を作るために使う。
type UniformMixture struct {
	Segments []Uniform
}

// Validate は仕様のパラメータを検証する
func (m UniformMixture) Validate() error {
	if len(m.Segments) == 0 {
		return errors.NewConfigurationError("segments", "uniform mixture requires at least one segment", 0)
	}
	for _, seg := range m.Segments {
		if err := seg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (m UniformMixture) String() string {
	return fmt.Sprintf("UniformMixture(%d segments)", len(m.Segments))
}

// sample はnをセグメント数で均等に分割し、余りは最後のセグメントに割り当てる。
// セグメントの入力順が出力の行順に保存される。
func (m UniformMixture) sample(n int, src rand.Source) []float64 {
	k := len(m.Segments)
	per := n / k
	out := make([]float64, 0, n)
	for i, seg := range m.Segments {
		count := per
		if i == k-1 {
			count = n - per*(k-1)
		}
		out = append(out, seg.sample(count, src)...)
	}
	return out
}

// Exponential はスケールパラメータで指定される指数分布。
// 構成上、非負で右に裾の重い分布を生成する。
type Exponential struct {
	Scale float64
}

// Validate は仕様のパラメータを検証する
func (e Exponential) Validate() error {
	if e.Scale <= 0 {
		return errors.NewConfigurationError("scale", "exponential scale must be positive", e.Scale)
	}
	return nil
}

func (e Exponential) String() string {
	return fmt.Sprintf("Exponential(scale=%g)", e.Scale)
}

func (e Exponential) sample(n int, src rand.Source) []float64 {
	dist := distuv.Exponential{Rate: 1 / e.Scale, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// Gaussian は平均と標準偏差で指定される正規分布。
// 対称で単峰性の分布を生成する。
type Gaussian struct {
	Mean   float64
	StdDev float64
}

// Validate は仕様のパラメータを検証する
func (g Gaussian) Validate() error {
	if g.StdDev <= 0 {
		return errors.NewConfigurationError("std_dev", "gaussian standard deviation must be positive", g.StdDev)
	}
	return nil
}

func (g Gaussian) String() string {
	return fmt.Sprintf("Gaussian(mean=%g, std=%g)", g.Mean, g.StdDev)
}

func (g Gaussian) sample(n int, src rand.Source) []float64 {
	dist := distuv.Normal{Mu: g.Mean, Sigma: g.StdDev, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}
