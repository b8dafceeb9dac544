package journey

import (
	"fmt"
	"log"

	"github.com/gonewx/xmasdrive/pkg/config"
)

// CaptionID 字幕编号（1..6）
type CaptionID int

const (
	Caption1 CaptionID = iota + 1
	Caption2
	Caption3
	Caption4
	Caption5
	Caption6
)

// ElementID 返回字幕容器的稳定标识（scene-1 .. scene-6）
func (id CaptionID) ElementID() string {
	return fmt.Sprintf("scene-%d", int(id))
}

// Valid 判断编号是否在 1..6 范围内
func (id CaptionID) Valid() bool {
	return id >= Caption1 && id <= Caption6
}

// String 实现 fmt.Stringer
func (id CaptionID) String() string {
	return id.ElementID()
}

// defaultCaptionStarts 各字幕区间的起点（左闭右开，最后一段包含 1.0）
var defaultCaptionStarts = [config.CaptionCount]float64{0, 0.08, 0.25, 0.45, 0.65, 0.85}

// NarrativeSelector 进度 → 字幕的纯映射
type NarrativeSelector struct {
	starts [config.CaptionCount]float64
}

// NewNarrativeSelector 根据字幕配置创建选择器
// 配置已由 config 包校验（6 条、从 0 开始、严格递增）
func NewNarrativeSelector(captions []config.CaptionConfig) *NarrativeSelector {
	s := &NarrativeSelector{starts: defaultCaptionStarts}
	if len(captions) == config.CaptionCount {
		for i, c := range captions {
			s.starts[i] = c.From
		}
	}
	return s
}

// Select 返回 progress 对应的字幕
// 小于 0 视为第 1 段，大于 1 视为第 6 段
func (s *NarrativeSelector) Select(progress float64) CaptionID {
	id := Caption1
	for i := 1; i < len(s.starts); i++ {
		if progress >= s.starts[i] {
			id = CaptionID(i + 1)
		}
	}
	return id
}

var defaultSelector = &NarrativeSelector{starts: defaultCaptionStarts}

// SelectCaption 使用默认区间表选择字幕
//
//	[0, 0.08) → 1, [0.08, 0.25) → 2, [0.25, 0.45) → 3,
//	[0.45, 0.65) → 4, [0.65, 0.85) → 5, [0.85, 1.0] → 6
func SelectCaption(progress float64) CaptionID {
	return defaultSelector.Select(progress)
}

// CaptionBoard 六个字幕容器的可见性
// 任意时刻恰好一个字幕可见
type CaptionBoard struct {
	visible  [config.CaptionCount]bool
	active   CaptionID
	captions []config.CaptionConfig
}

// NewCaptionBoard 创建字幕面板，初始显示第 1 条
func NewCaptionBoard(captions []config.CaptionConfig) *CaptionBoard {
	b := &CaptionBoard{captions: captions}
	b.visible[0] = true
	b.active = Caption1
	return b
}

// Show 显示指定字幕
// 先隐藏全部，再显示目标；无效编号被忽略
func (b *CaptionBoard) Show(id CaptionID) {
	if !id.Valid() {
		return
	}
	for i := range b.visible {
		b.visible[i] = false
	}
	b.visible[id-1] = true

	if id != b.active {
		log.Printf("[Narrative] %s -> %s", b.active.ElementID(), id.ElementID())
	}
	b.active = id
}

// Active 返回当前可见的字幕
func (b *CaptionBoard) Active() CaptionID {
	return b.active
}

// IsVisible 按容器标识查询可见性
func (b *CaptionBoard) IsVisible(elementID string) bool {
	for i, v := range b.visible {
		if CaptionID(i+1).ElementID() == elementID {
			return v
		}
	}
	return false
}

// VisibleCount 返回可见字幕的数量
func (b *CaptionBoard) VisibleCount() int {
	n := 0
	for _, v := range b.visible {
		if v {
			n++
		}
	}
	return n
}

// Caption 返回字幕内容，缺失时返回空配置
func (b *CaptionBoard) Caption(id CaptionID) config.CaptionConfig {
	if !id.Valid() || int(id) > len(b.captions) {
		return config.CaptionConfig{}
	}
	return b.captions[id-1]
}
