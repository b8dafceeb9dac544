// Package render 将场景图投影为二维绘制列表
//
// Projector 负责相机投影、雾效和深度排序，输出与后端无关的 Frame；
// screen 子包用 Ebitengine 光栅化 Frame，term 子包把它画到终端字符格上。
package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/scene"
	"github.com/gonewx/xmasdrive/pkg/utils"
)

// Point 屏幕上的点精灵
type Point struct {
	X, Y  float32
	Size  float32
	Color color.RGBA
}

// Line 屏幕上的线段
type Line struct {
	X0, Y0, X1, Y1 float32
	Width          float32
	Color          color.RGBA
	Depth          float64
}

// Label 屏幕上的文字标签
type Label struct {
	X, Y  float64
	Text  string
	Color color.RGBA
	Depth float64
}

// Frame 一帧的绘制列表
type Frame struct {
	Width, Height int
	Background    color.RGBA
	Points        []Point
	Lines         []Line // 由远及近排序
	Labels        []Label
}

// RGB 将 0xRRGGBB 转换为不透明颜色
func RGB(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

// mix 按 t 在两种颜色间插值
func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(utils.Lerp(float64(x), float64(y), t)))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: a.A}
}

// Projector 场景 → Frame 投影器
type Projector struct {
	width, height int
}

// NewProjector 创建投影器
func NewProjector(width, height int) *Projector {
	p := &Projector{}
	p.Resize(width, height)
	return p
}

// Resize 更新输出尺寸
func (p *Projector) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	p.width, p.height = width, height
}

// Size 返回输出尺寸
func (p *Projector) Size() (int, int) {
	return p.width, p.height
}

// fogFactor 线性雾：near 之前为 0，far 之后为 1
func fogFactor(fog config.FogConfig, depth float64) float64 {
	if fog.Far <= fog.Near {
		return 0
	}
	return utils.Clamp01((depth - fog.Near) / (fog.Far - fog.Near))
}

// Project 投影场景图
// frame 不为 nil 时复用其切片，避免每帧分配
func (p *Projector) Project(g *scene.Graph, frame *Frame) *Frame {
	if frame == nil {
		frame = &Frame{}
	}
	frame.Width, frame.Height = p.width, p.height
	frame.Background = RGB(g.Fog.Color)
	frame.Points = frame.Points[:0]
	frame.Lines = frame.Lines[:0]
	frame.Labels = frame.Labels[:0]

	cam := g.Camera
	focal := 1 / math.Tan(cam.FOV*math.Pi/360)

	g.Root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		p.projectBoxes(g, n, frame)
		p.projectSegments(g, n, frame)
		if n.Label != "" {
			if sx, sy, depth, ok := cam.Project(n.WorldPosition(), p.width, p.height); ok {
				frame.Labels = append(frame.Labels, Label{
					X: sx, Y: sy, Text: n.Label, Depth: depth,
					Color: mix(RGB(0xffffff), frame.Background, fogFactor(g.Fog, depth)),
				})
			}
		}
		return true
	})

	for _, field := range []*scene.PointField{g.Stars, g.Snow} {
		if field != nil && field.Node.IsVisible() {
			p.projectPoints(g, field, focal, frame)
		}
	}

	sort.SliceStable(frame.Lines, func(i, j int) bool {
		return frame.Lines[i].Depth > frame.Lines[j].Depth
	})
	return frame
}

// clipEpsilon 裁剪后端点向内收缩的距离，避免舍入误差落到裁剪面外
const clipEpsilon = 1e-6

// clipSegment 将线段裁剪到相机近远裁剪面之间
// 整段位于同一裁剪面外侧时返回 false
func clipSegment(cam *scene.Camera, a, b utils.Vec3) (utils.Vec3, utils.Vec3, bool) {
	_, _, forward := cam.Basis()
	da := a.Sub(cam.Position).Dot(forward)
	db := b.Sub(cam.Position).Dot(forward)

	near, far := cam.Near+clipEpsilon, cam.Far-clipEpsilon
	if (da < near && db < near) || (da > far && db > far) {
		return a, b, false
	}
	// 按 a→b 的参数 t 裁剪两端
	at := func(plane float64) float64 { return (plane - da) / (db - da) }
	t0, t1 := 0.0, 1.0
	switch {
	case da < near:
		t0 = at(near)
	case da > far:
		t0 = at(far)
	}
	switch {
	case db < near:
		t1 = at(near)
	case db > far:
		t1 = at(far)
	}
	dir := b.Sub(a)
	return a.Add(dir.Scale(t0)), a.Add(dir.Scale(t1)), true
}

func (p *Projector) addLine(g *scene.Graph, a, b utils.Vec3, c uint32, emissive bool, frame *Frame) {
	a, b, visible := clipSegment(g.Camera, a, b)
	if !visible {
		return
	}
	x0, y0, d0, ok0 := g.Camera.Project(a, p.width, p.height)
	x1, y1, d1, ok1 := g.Camera.Project(b, p.width, p.height)
	if !ok0 || !ok1 {
		return
	}
	depth := (d0 + d1) / 2
	width := float32(1)
	f := fogFactor(g.Fog, depth)
	if emissive {
		// 自发光几何穿透雾
		width, f = 2, 0
	}
	if f >= 1 {
		return
	}
	frame.Lines = append(frame.Lines, Line{
		X0: float32(x0), Y0: float32(y0), X1: float32(x1), Y1: float32(y1),
		Width: width,
		Color: mix(RGB(c), frame.Background, f),
		Depth: depth,
	})
}

func (p *Projector) projectBoxes(g *scene.Graph, n *scene.Node, frame *Frame) {
	for _, box := range n.Boxes {
		local := box.Corners()
		var world [8]utils.Vec3
		for i, c := range local {
			world[i] = n.LocalToWorld(c)
		}
		for _, e := range scene.BoxEdges {
			p.addLine(g, world[e[0]], world[e[1]], box.Color, box.Emissive, frame)
		}
	}
}

func (p *Projector) projectSegments(g *scene.Graph, n *scene.Node, frame *Frame) {
	for _, s := range n.Segments {
		p.addLine(g, n.LocalToWorld(s.A), n.LocalToWorld(s.B), s.Color, s.Emissive, frame)
	}
}

func (p *Projector) projectPoints(g *scene.Graph, field *scene.PointField, focal float64, frame *Frame) {
	base := RGB(field.Color)
	base.A = uint8(math.Round(255 * utils.Clamp01(field.Opacity)))
	halfH := float64(p.height) / 2

	for i := range field.Points {
		sx, sy, depth, ok := g.Camera.Project(field.WorldPoint(i), p.width, p.height)
		if !ok {
			continue
		}
		if sx < 0 || sy < 0 || sx >= float64(p.width) || sy >= float64(p.height) {
			continue
		}
		f := fogFactor(g.Fog, depth)
		if f >= 1 {
			continue
		}
		size := field.Size * focal * halfH / depth
		if size < 1 {
			size = 1
		}
		frame.Points = append(frame.Points, Point{
			X: float32(sx), Y: float32(sy),
			Size:  float32(size),
			Color: mix(base, frame.Background, f),
		})
	}
}
