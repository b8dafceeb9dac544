package journey

import (
	"testing"

	"github.com/gonewx/xmasdrive/pkg/config"
)

// TestSelectCaption 测试区间表及边界
func TestSelectCaption(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		expected CaptionID
	}{
		{"起点", 0, Caption1},
		{"第一段内", 0.079, Caption1},
		{"0.08 属于第二段", 0.08, Caption2},
		{"第二段内", 0.2, Caption2},
		{"0.25 属于第三段", 0.25, Caption3},
		{"0.45 属于第四段", 0.45, Caption4},
		{"第四段末尾", 0.6499, Caption4},
		{"0.65 属于第五段", 0.65, Caption5},
		{"0.85 属于第六段", 0.85, Caption6},
		{"终点包含在第六段", 1.0, Caption6},
		{"负数视为第一段", -0.1, Caption1},
		{"越界视为第六段", 1.2, Caption6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectCaption(tt.progress); got != tt.expected {
				t.Errorf("SelectCaption(%v) = %v, 期望 %v", tt.progress, got, tt.expected)
			}
		})
	}
}

// TestSelectCaptionExhaustive 测试 [0, 1] 上每个进度恰好映射到一个有效字幕，且单调不减
func TestSelectCaptionExhaustive(t *testing.T) {
	prev := Caption1
	for i := 0; i <= 10000; i++ {
		p := float64(i) / 10000
		id := SelectCaption(p)
		if !id.Valid() {
			t.Fatalf("SelectCaption(%v) = %v 无效", p, id)
		}
		if id < prev {
			t.Fatalf("SelectCaption(%v) = %v 小于前一个 %v", p, id, prev)
		}
		prev = id
	}
	if prev != Caption6 {
		t.Errorf("最终字幕 = %v, 期望 %v", prev, Caption6)
	}
}

// TestNarrativeSelectorFromConfig 测试配置驱动的区间
func TestNarrativeSelectorFromConfig(t *testing.T) {
	captions := []config.CaptionConfig{
		{From: 0}, {From: 0.1}, {From: 0.2}, {From: 0.3}, {From: 0.4}, {From: 0.5},
	}
	s := NewNarrativeSelector(captions)

	if got := s.Select(0.15); got != Caption2 {
		t.Errorf("Select(0.15) = %v, 期望 %v", got, Caption2)
	}
	if got := s.Select(0.9); got != Caption6 {
		t.Errorf("Select(0.9) = %v, 期望 %v", got, Caption6)
	}

	// 数量不对时回退到默认区间
	fallback := NewNarrativeSelector(captions[:2])
	if got := fallback.Select(0.45); got != Caption4 {
		t.Errorf("fallback Select(0.45) = %v, 期望 %v", got, Caption4)
	}
}

// TestCaptionBoardExclusive 测试任意时刻恰好一个字幕可见
func TestCaptionBoardExclusive(t *testing.T) {
	board := NewCaptionBoard(config.DefaultJourneyConfig().Captions)

	if board.Active() != Caption1 || !board.IsVisible("scene-1") {
		t.Fatal("scene-1 should be visible initially")
	}
	if board.VisibleCount() != 1 {
		t.Fatalf("initial visible count = %d, 期望 1", board.VisibleCount())
	}

	sequence := []CaptionID{Caption3, Caption3, Caption6, Caption2, Caption5, Caption1, Caption4}
	for _, id := range sequence {
		board.Show(id)
		if board.VisibleCount() != 1 {
			t.Fatalf("after Show(%v): visible count = %d", id, board.VisibleCount())
		}
		if !board.IsVisible(id.ElementID()) {
			t.Fatalf("after Show(%v): %s not visible", id, id.ElementID())
		}
		if board.Active() != id {
			t.Fatalf("Active() = %v, 期望 %v", board.Active(), id)
		}
	}

	// 无效编号不改变状态
	board.Show(CaptionID(0))
	board.Show(CaptionID(7))
	if board.Active() != Caption4 || board.VisibleCount() != 1 {
		t.Errorf("invalid ids changed board: active=%v count=%d", board.Active(), board.VisibleCount())
	}
	if board.IsVisible("scene-7") {
		t.Error("unknown element should not be visible")
	}
}

// TestCaptionBoardContent 测试字幕内容查询
func TestCaptionBoardContent(t *testing.T) {
	captions := config.DefaultJourneyConfig().Captions
	board := NewCaptionBoard(captions)

	if got := board.Caption(Caption6); got != captions[5] {
		t.Errorf("Caption(6) = %+v", got)
	}
	if got := board.Caption(CaptionID(9)); got != (config.CaptionConfig{}) {
		t.Errorf("Caption(9) = %+v, 期望空", got)
	}
	empty := NewCaptionBoard(nil)
	if got := empty.Caption(Caption1); got != (config.CaptionConfig{}) {
		t.Errorf("empty board Caption(1) = %+v", got)
	}
}

// TestCaptionElementID 测试容器标识
func TestCaptionElementID(t *testing.T) {
	if got := Caption1.ElementID(); got != "scene-1" {
		t.Errorf("Caption1.ElementID() = %q", got)
	}
	if got := Caption6.String(); got != "scene-6" {
		t.Errorf("Caption6.String() = %q", got)
	}
}
