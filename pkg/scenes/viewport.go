package scenes

import (
	"math"
)

// Viewport 虚拟文档视口
//
// 文档高度为 pages × clientHeight，可滚动距离为
// 文档高度减去一屏，偏移量始终限制在 [0, MaxOffset]。
type Viewport struct {
	pages        float64
	clientHeight float64
	offset       float64
}

// NewViewport 创建视口
func NewViewport(pages float64, clientHeight int) *Viewport {
	return &Viewport{
		pages:        math.Max(0, pages),
		clientHeight: math.Max(0, float64(clientHeight)),
	}
}

// DocumentHeight 返回文档总高度
func (v *Viewport) DocumentHeight() float64 {
	return v.pages * v.clientHeight
}

// ClientHeight 返回一屏的高度
func (v *Viewport) ClientHeight() float64 {
	return v.clientHeight
}

// MaxOffset 返回最大滚动偏移
func (v *Viewport) MaxOffset() float64 {
	return math.Max(0, v.DocumentHeight()-v.clientHeight)
}

// Offset 返回当前滚动偏移
func (v *Viewport) Offset() float64 {
	return v.offset
}

// ScrollBy 相对滚动，返回偏移是否改变
func (v *Viewport) ScrollBy(delta float64) bool {
	return v.ScrollTo(v.offset + delta)
}

// ScrollTo 绝对滚动，返回偏移是否改变
func (v *Viewport) ScrollTo(offset float64) bool {
	if math.IsNaN(offset) {
		return false
	}
	clamped := math.Max(0, math.Min(offset, v.MaxOffset()))
	if clamped == v.offset {
		return false
	}
	v.offset = clamped
	return true
}

// Fraction 返回偏移占可滚动距离的比例
func (v *Viewport) Fraction() float64 {
	maxOffset := v.MaxOffset()
	if maxOffset <= 0 {
		return 0
	}
	return v.offset / maxOffset
}

// ScrollToFraction 滚动到可滚动距离的指定比例
func (v *Viewport) ScrollToFraction(f float64) bool {
	return v.ScrollTo(f * v.MaxOffset())
}

// Resize 更新一屏高度，保持滚动比例不变
func (v *Viewport) Resize(clientHeight int) {
	f := v.Fraction()
	v.clientHeight = math.Max(0, float64(clientHeight))
	v.offset = 0
	v.ScrollToFraction(f)
}
