package utils

import (
	"math"
	"testing"
)

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0, -100, 0, 0},
		{"终点", 0, -100, 1, -100},
		{"中点", 0, -100, 0.5, -50},
		{"正向区间", 10, 20, 0.25, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestApproachMonotonic 测试指数平滑单调逼近且不越过目标
func TestApproachMonotonic(t *testing.T) {
	current := 0.0
	target := -40.0
	prevDist := math.Abs(target - current)

	for i := 0; i < 1000; i++ {
		current = Approach(current, target, 0.05)
		dist := math.Abs(target - current)
		if dist > prevDist {
			t.Fatalf("第 %d 帧距离增大: %v -> %v", i, prevDist, dist)
		}
		if current < target {
			t.Fatalf("第 %d 帧越过目标: %v < %v", i, current, target)
		}
		prevDist = dist
	}

	if math.Abs(current-target) > 1e-9 {
		t.Errorf("1000 帧后未收敛: %v, 期望 %v", current, target)
	}
}

// TestClamp01 测试范围限制
func TestClamp01(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"负数", -0.5, 0},
		{"零", 0, 0},
		{"中间值", 0.42, 0.42},
		{"一", 1, 1},
		{"超出", 1.3, 1},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.input); got != tt.expected {
				t.Errorf("Clamp01(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestInOpenRange 测试开区间边界
func TestInOpenRange(t *testing.T) {
	if InOpenRange(0.01, 0.01, 0.9) {
		t.Error("下边界应不在开区间内")
	}
	if InOpenRange(0.9, 0.01, 0.9) {
		t.Error("上边界应不在开区间内")
	}
	if !InOpenRange(0.5, 0.01, 0.9) {
		t.Error("0.5 应在 (0.01, 0.9) 内")
	}
}
