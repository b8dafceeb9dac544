// Package journey 实现滚动驱动的旅程动画核心
//
// 核心由三部分组成：
//   - ScrollMapper: 文档滚动位置 → 归一化进度 + 行驶标志
//   - NarrativeSelector / CaptionBoard: 进度 → 唯一可见的字幕
//   - Driver: 每帧根据进度和时间推进车辆、镜头、车轮、雪花、角色和终章星星
//
// 所有状态由同一个 goroutine 拥有：滚动处理和帧回调从不交错执行，因此不需要锁。
package journey

import (
	"math"

	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/utils"
)

// State 旅程共享状态
// 只由 ScrollMapper 写入，由 Driver 每帧读取
type State struct {
	// Progress 归一化滚动进度，0 ≤ Progress ≤ 1
	Progress float64
	// Driving 进度位于行驶区间内时为 true
	Driving bool
}

// MapScroll 将滚动偏移转换为进度
//
// maxOffset ≤ 0（文档不可滚动）时返回 0，不做除法。
// 偶发的越界偏移会被限制在 [0, 1]。
func MapScroll(offset, maxOffset float64) float64 {
	if maxOffset <= 0 || math.IsNaN(maxOffset) {
		return 0
	}
	return utils.Clamp01(offset / maxOffset)
}

// ScrollMapper 滚动映射器
type ScrollMapper struct {
	state    *State
	driving  config.RangeConfig
	selector *NarrativeSelector
	board    *CaptionBoard
}

// NewScrollMapper 创建滚动映射器
//
// 参数：
//   - state: 共享状态
//   - driving: 行驶区间（开区间）
//   - selector: 字幕选择器
//   - board: 字幕面板，可为 nil（不显示字幕）
func NewScrollMapper(state *State, driving config.RangeConfig, selector *NarrativeSelector, board *CaptionBoard) *ScrollMapper {
	return &ScrollMapper{
		state:    state,
		driving:  driving,
		selector: selector,
		board:    board,
	}
}

// Update 处理一次滚动事件
//
// 计算并保存进度与行驶标志，随后立即选择字幕并更新字幕面板。
func (m *ScrollMapper) Update(offset, maxOffset float64) (progress float64, driving bool) {
	progress = MapScroll(offset, maxOffset)
	driving = m.driving.Contains(progress)

	m.state.Progress = progress
	m.state.Driving = driving

	if m.board != nil {
		m.board.Show(m.selector.Select(progress))
	}
	return progress, driving
}

// State 返回共享状态
func (m *ScrollMapper) State() *State {
	return m.state
}
