package utils

import "math"

// 插值与平滑函数
//
// 旅程中的所有连续运动（车辆、镜头）都基于"每帧向目标靠近固定比例"的指数平滑，
// 而不是基于时长的补间动画。

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Approach 指数平滑：current 向 target 靠近 alpha 比例
//
// 公式：current + alpha*(target-current)
// alpha ∈ (0, 1] 时结果单调逼近目标，不会越过目标。
func Approach(current, target, alpha float64) float64 {
	return current + alpha*(target-current)
}

// Clamp01 将值限制在 [0, 1] 范围内
// NaN 视为 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// InOpenRange 判断 v 是否在开区间 (lo, hi) 内
func InOpenRange(v, lo, hi float64) bool {
	return v > lo && v < hi
}
