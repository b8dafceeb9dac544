package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/journey"
	"github.com/gonewx/xmasdrive/pkg/scene"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(cols, rows)
	return s
}

// rowText 读取一行字符
func rowText(s tcell.Screen, y, cols int) string {
	var b strings.Builder
	for x := 0; x < cols; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

// TestProgressBar 测试文本进度条
func TestProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		expected string
	}{
		{"起点", 0, "[----------] 0%"},
		{"三成", 0.3, "[###-------] 30%"},
		{"终点", 1, "[##########] 100%"},
		{"越界钳制", 1.7, "[##########] 100%"},
		{"负数钳制", -0.2, "[----------] 0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressBar(tt.progress, 10); got != tt.expected {
				t.Errorf("progressBar(%v) = %q, 期望 %q", tt.progress, got, tt.expected)
			}
		})
	}
}

// TestLineGlyph 测试线段字形
func TestLineGlyph(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		expected rune
	}{
		{"水平", 10, 0, '-'},
		{"反向水平", -10, 1, '-'},
		{"垂直", 0, 5, '|'},
		{"右上", 5, -5, '/'},
		{"右下", 5, 5, '\\'},
		{"单点", 0, 0, '+'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lineGlyph(tt.dx, tt.dy); got != tt.expected {
				t.Errorf("lineGlyph(%v, %v) = %q, 期望 %q", tt.dx, tt.dy, got, tt.expected)
			}
		})
	}
}

// TestRendererStatusRow 测试最后一行显示字幕与进度
func TestRendererStatusRow(t *testing.T) {
	const cols, rows = 100, 30
	s := newSimScreen(t, cols, rows)

	cfg := config.DefaultJourneyConfig()
	cfg.Snow.Count = 100
	cfg.Stars.Count = 10
	board := journey.NewCaptionBoard(cfg.Captions)
	state := &journey.State{Progress: 0.3, Driving: true}
	board.Show(journey.SelectCaption(state.Progress))

	r := New(s, board, state)
	if w, h := r.Size(); w != cols || h != (rows-1)*2 {
		t.Fatalf("Size() = %d,%d", w, h)
	}

	g := scene.Build(cfg)
	g.Camera.SetAspect(r.Size())
	r.Render(g)

	status := rowText(s, rows-1, cols)
	if !strings.Contains(status, "Snack break") {
		t.Errorf("status row %q missing caption title", status)
	}
	if !strings.Contains(status, "[###-------] 30%") {
		t.Errorf("status row %q missing progress", status)
	}

	drawn := 0
	for y := 0; y < rows-1; y++ {
		drawn += len(strings.TrimSpace(rowText(s, y, cols)))
	}
	if drawn == 0 {
		t.Error("scene area is empty")
	}
}

// TestRendererResize 测试尺寸变化
func TestRendererResize(t *testing.T) {
	s := newSimScreen(t, 40, 10)
	r := New(s, nil, nil)
	r.Resize(60, 21)
	if w, h := r.Size(); w != 60 || h != 40 {
		t.Errorf("Size() = %d,%d, 期望 60,40", w, h)
	}
	// 无字幕板与状态时仍可绘制
	r.Render(scene.Build(config.DefaultJourneyConfig()))
}
