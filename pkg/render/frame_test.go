package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/scene"
	"github.com/gonewx/xmasdrive/pkg/utils"
)

func testGraph(t *testing.T) *scene.Graph {
	t.Helper()
	cfg := config.DefaultJourneyConfig()
	cfg.Snow.Count = 200
	cfg.Stars.Count = 50
	return scene.Build(cfg)
}

// TestRGB 测试 0xRRGGBB 转换
func TestRGB(t *testing.T) {
	got := RGB(0x0a0a1a)
	expected := color.RGBA{R: 0x0a, G: 0x0a, B: 0x1a, A: 0xff}
	if got != expected {
		t.Errorf("RGB(0x0a0a1a) = %v, 期望 %v", got, expected)
	}
}

// TestFogFactor 测试线性雾
func TestFogFactor(t *testing.T) {
	fog := config.FogConfig{Color: 0x0a0a1a, Near: 10, Far: 50}
	tests := []struct {
		name     string
		depth    float64
		expected float64
	}{
		{"近处无雾", 5, 0},
		{"近平面", 10, 0},
		{"中间", 30, 0.5},
		{"远平面", 50, 1},
		{"远处全雾", 80, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fogFactor(fog, tt.depth); got != tt.expected {
				t.Errorf("fogFactor(%v) = %v, 期望 %v", tt.depth, got, tt.expected)
			}
		})
	}

	if got := fogFactor(config.FogConfig{Near: 10, Far: 10}, 30); got != 0 {
		t.Errorf("degenerate fog = %v, 期望 0", got)
	}
}

// TestMix 测试颜色插值保留 alpha
func TestMix(t *testing.T) {
	a := color.RGBA{R: 200, G: 100, B: 0, A: 128}
	b := color.RGBA{R: 0, G: 0, B: 200, A: 255}
	if got := mix(a, b, 0); got != a {
		t.Errorf("mix(t=0) = %v", got)
	}
	got := mix(a, b, 0.5)
	expected := color.RGBA{R: 100, G: 50, B: 100, A: 128}
	if got != expected {
		t.Errorf("mix(t=0.5) = %v, 期望 %v", got, expected)
	}
}

// TestProjectInitialScene 测试初始场景的投影内容
func TestProjectInitialScene(t *testing.T) {
	g := testGraph(t)
	p := NewProjector(800, 600)
	frame := p.Project(g, nil)

	if frame.Width != 800 || frame.Height != 600 {
		t.Errorf("frame size = %dx%d", frame.Width, frame.Height)
	}
	if frame.Background != RGB(g.Fog.Color) {
		t.Errorf("background = %v", frame.Background)
	}
	if len(frame.Lines) == 0 {
		t.Fatal("expected car and road lines")
	}
	for i := 1; i < len(frame.Lines); i++ {
		if frame.Lines[i].Depth > frame.Lines[i-1].Depth {
			t.Fatalf("lines not sorted far to near at %d", i)
		}
	}
	for _, pt := range frame.Points {
		if pt.X < 0 || pt.Y < 0 || pt.X >= 800 || pt.Y >= 600 {
			t.Fatalf("point outside frame: %+v", pt)
		}
		if pt.Size < 1 {
			t.Fatalf("point size = %v, 期望 >= 1", pt.Size)
		}
	}
}

// TestProjectSkipsHiddenNodes 测试隐藏节点不产生任何线段
func TestProjectSkipsHiddenNodes(t *testing.T) {
	g := testGraph(t)
	// 相机对准终点星，排除其它远处几何
	g.Camera.Position = utils.V3(0, 5, -90)
	g.Camera.Target = g.FinaleStar.Position

	p := NewProjector(640, 480)
	hidden := len(p.Project(g, nil).Lines)

	g.FinaleStar.Visible = true
	shown := len(p.Project(g, nil).Lines)
	if shown <= hidden {
		t.Errorf("visible star lines = %d, hidden = %d, 期望更多", shown, hidden)
	}
}

// TestProjectFogCulls 测试超出雾远端的几何被剔除，自发光几何保留
func TestProjectFogCulls(t *testing.T) {
	g := testGraph(t)
	p := NewProjector(640, 480)
	clear := len(p.Project(g, nil).Lines)

	g.Fog.Near = 0
	g.Fog.Far = 0.001
	lines := p.Project(g, nil).Lines
	if len(lines) >= clear {
		t.Errorf("lines with opaque fog = %d, clear fog = %d, 期望更少", len(lines), clear)
	}
	for _, l := range lines {
		if l.Width != 2 {
			t.Fatalf("non-emissive line survived opaque fog: %+v", l)
		}
	}
}

// TestProjectClipsNearPlane 测试一端位于相机后方的线段被裁剪到近平面后保留
func TestProjectClipsNearPlane(t *testing.T) {
	g := testGraph(t)
	g.Camera.Position = utils.V3(0, 0, 0)
	g.Camera.Target = utils.V3(0, 0, -1)
	g.Fog.Near, g.Fog.Far = 500, 1000

	root := scene.NewNode("root")
	root.Segments = []scene.Segment{
		{A: utils.V3(1, 0, 5), B: utils.V3(1, 0, -20), Color: 0xffffff},
		{A: utils.V3(1, 0, 5), B: utils.V3(-1, 0, 2), Color: 0xffffff},
	}
	g.Root = root

	p := NewProjector(640, 480)
	lines := p.Project(g, nil).Lines
	if len(lines) != 1 {
		t.Fatalf("lines = %d, 期望 1（完全位于相机后方的线段应被丢弃）", len(lines))
	}

	sx, sy, _, ok := g.Camera.Project(utils.V3(1, 0, -20), 640, 480)
	if !ok {
		t.Fatal("far endpoint should be projectable")
	}
	l := lines[0]
	if math.Abs(float64(l.X1)-sx) > 1e-3 || math.Abs(float64(l.Y1)-sy) > 1e-3 {
		t.Errorf("far endpoint = (%v,%v), 期望 (%v,%v)", l.X1, l.Y1, sx, sy)
	}
	if l.Depth <= g.Camera.Near || l.Depth >= 20 {
		t.Errorf("depth = %v, 期望介于近平面与 20 之间", l.Depth)
	}
}

// TestClipSegment 测试近远裁剪面
func TestClipSegment(t *testing.T) {
	cam := &scene.Camera{
		Target: utils.V3(0, 0, -1), FOV: 75, Aspect: 1, Near: 0.1, Far: 100,
	}
	tests := []struct {
		name    string
		a, b    utils.Vec3
		visible bool
		za, zb  float64
	}{
		{"完全可见", utils.V3(0, 0, -1), utils.V3(0, 0, -50), true, -1, -50},
		{"起点在相机后方", utils.V3(0, 0, 10), utils.V3(0, 0, -10), true, -0.1, -10},
		{"终点在相机后方", utils.V3(0, 0, -10), utils.V3(0, 0, 10), true, -10, -0.1},
		{"穿过近远两面", utils.V3(0, 0, 10), utils.V3(0, 0, -300), true, -0.1, -100},
		{"完全在相机后方", utils.V3(0, 0, 1), utils.V3(0, 0, 5), false, 0, 0},
		{"完全超出远平面", utils.V3(0, 0, -200), utils.V3(0, 0, -300), false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, visible := clipSegment(cam, tt.a, tt.b)
			if visible != tt.visible {
				t.Fatalf("visible = %v, 期望 %v", visible, tt.visible)
			}
			if !visible {
				return
			}
			if math.Abs(a.Z-tt.za) > 1e-4 || math.Abs(b.Z-tt.zb) > 1e-4 {
				t.Errorf("clipped z = %v, %v, 期望 %v, %v", a.Z, b.Z, tt.za, tt.zb)
			}
			for _, pt := range []utils.Vec3{a, b} {
				if _, _, _, ok := cam.Project(pt, 100, 100); !ok {
					t.Errorf("clipped endpoint %+v not projectable", pt)
				}
			}
		})
	}
}

// TestProjectRoadBehindCamera 测试路面从相机后方延伸时侧边仍被绘制
func TestProjectRoadBehindCamera(t *testing.T) {
	g := testGraph(t)
	g.Camera.Position = utils.V3(0, 5, -13)
	g.Camera.Target = utils.V3(0, 0, -23)
	g.Fog.Near, g.Fog.Far = 500, 1000

	root := scene.NewNode("root")
	root.Add(g.Road)
	g.Root = root

	lines := NewProjector(800, 600).Project(g, nil).Lines
	// 沿行驶方向的 4 条边各有一端在相机后方
	if len(lines) < 4 {
		t.Errorf("road lines = %d, 期望至少 4", len(lines))
	}
}

// TestProjectReusesFrame 测试复用 Frame
func TestProjectReusesFrame(t *testing.T) {
	g := testGraph(t)
	p := NewProjector(320, 240)
	first := p.Project(g, nil)
	n := len(first.Lines)
	second := p.Project(g, first)
	if second != first {
		t.Error("Project should reuse the given frame")
	}
	if len(second.Lines) != n {
		t.Errorf("lines after reuse = %d, 期望 %d", len(second.Lines), n)
	}
}

// TestProjectLabels 测试山峰标签
func TestProjectLabels(t *testing.T) {
	g := testGraph(t)
	g.Camera.Position = utils.V3(0, 10, -40)
	g.Camera.Target = utils.V3(0, 5, -70)

	frame := NewProjector(1280, 720).Project(g, nil)
	found := map[string]bool{}
	for _, l := range frame.Labels {
		found[l.Text] = true
	}
	if !found["HELVELLYN"] && !found["LANGDALE"] {
		t.Errorf("labels = %+v, 期望包含山峰名称", frame.Labels)
	}
}

// TestResizeClamps 测试尺寸下限
func TestResizeClamps(t *testing.T) {
	p := NewProjector(0, -5)
	if w, h := p.Size(); w != 1 || h != 1 {
		t.Errorf("Size() = %d,%d, 期望 1,1", w, h)
	}
}

// TestRecorder 测试记录渲染器
func TestRecorder(t *testing.T) {
	r := NewRecorder(320, 240)
	if r.Last() != nil || r.Frames() != 0 {
		t.Fatal("new recorder should be empty")
	}
	g := testGraph(t)
	r.Render(g)
	r.Resize(640, 480)
	r.Render(g)
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, 期望 2", r.Frames())
	}
	if last := r.Last(); last == nil || last.Width != 640 {
		t.Errorf("Last() = %+v", last)
	}
}
