// Package vectormath 提供口味向量与 Embedding 计算所需的基础数值运算。
// 所有函数都作用于定长 []float64，维度校验由调用方（embedding.Index）负责。
package vectormath

import "math"

// Epsilon 是归一化时的零向量保护值。
// 归一化统一除以 (norm + Epsilon)，避免除零，同时保持接近单位范数。
const Epsilon = 1e-8

// Dot 计算两个向量的点积。长度不一致时返回 0（调用方应先做维度校验）。
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm 计算向量的 L2 范数。
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalize 返回 v 的单位化副本：v / (‖v‖ + Epsilon)。
// 零向量经保护后返回全零向量，不会产生 NaN。
func Normalize(v []float64) []float64 {
	norm := Norm(v) + Epsilon
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Mean 计算一组同维向量的均值向量。空输入返回 nil。
// 维度以首个向量为准，长度不一致的向量被跳过。
func Mean(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	out := make([]float64, dim)
	n := 0
	for _, v := range vectors {
		if len(v) != dim {
			continue
		}
		for i, x := range v {
			out[i] += x
		}
		n++
	}
	if n == 0 {
		return nil
	}
	for i := range out {
		out[i] /= float64(n)
	}
	return out
}

// Scale 返回 v * factor 的副本。
func Scale(v []float64, factor float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * factor
	}
	return out
}

// Sub 返回 a - b 的副本。长度不一致时返回 nil。
func Sub(a, b []float64) []float64 {
	if len(a) != len(b) {
		return nil
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
