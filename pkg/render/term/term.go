// Package term 基于 tcell 的终端预览渲染器
//
// 每个字符格在垂直方向对应两个投影像素，
// 相机宽高比按 Size() 返回的像素尺寸设置即可保持比例。
package term

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/xmasdrive/pkg/journey"
	"github.com/gonewx/xmasdrive/pkg/render"
	"github.com/gonewx/xmasdrive/pkg/scene"
	"github.com/gonewx/xmasdrive/pkg/utils"
)

// Renderer 终端渲染器
type Renderer struct {
	screen    tcell.Screen
	projector *render.Projector
	frame     *render.Frame
	board     *journey.CaptionBoard
	state     *journey.State

	cols, rows int
}

// New 创建终端渲染器，尺寸取自 screen
func New(screen tcell.Screen, board *journey.CaptionBoard, state *journey.State) *Renderer {
	r := &Renderer{
		screen:    screen,
		projector: render.NewProjector(1, 1),
		board:     board,
		state:     state,
	}
	r.Resize(screen.Size())
	return r
}

// Resize 按字符格尺寸更新投影区域，最后一行留给字幕
func (r *Renderer) Resize(cols, rows int) {
	r.cols, r.rows = cols, rows
	r.projector.Resize(cols, (rows-1)*2)
}

// Size 返回投影像素尺寸
func (r *Renderer) Size() (int, int) {
	return r.projector.Size()
}

// Render 实现 journey.Renderer：投影并刷新终端
func (r *Renderer) Render(g *scene.Graph) {
	r.frame = r.projector.Project(g, r.frame)
	r.Draw()
}

// Draw 将最近一帧绘制到终端
func (r *Renderer) Draw() {
	if r.frame == nil {
		return
	}
	bg := tcellColor(r.frame.Background)
	base := tcell.StyleDefault.Background(bg)

	r.screen.Fill(' ', base)
	for _, l := range r.frame.Lines {
		r.drawLine(l, base)
	}
	for _, p := range r.frame.Points {
		glyph := '·'
		if p.Size >= 2 {
			glyph = '*'
		}
		r.set(int(p.X), int(p.Y)/2, glyph, base.Foreground(tcellColor(p.Color)))
	}
	for _, l := range r.frame.Labels {
		x := int(l.X) - len(l.Text)/2
		style := base.Foreground(tcellColor(l.Color)).Bold(true)
		for i, ch := range l.Text {
			r.set(x+i, int(l.Y)/2, ch, style)
		}
	}
	r.drawStatus()
	r.screen.Show()
}

// drawLine 以 DDA 在字符格上画线，字形按斜率选择
func (r *Renderer) drawLine(l render.Line, base tcell.Style) {
	x0, y0 := float64(l.X0), float64(l.Y0)/2
	x1, y1 := float64(l.X1), float64(l.Y1)/2
	dx, dy := x1-x0, y1-y0

	glyph := lineGlyph(dx, dy)
	style := base.Foreground(tcellColor(l.Color))

	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		r.set(int(x0), int(y0), glyph, style)
		return
	}
	// 屏幕外的超长线段只画可见部分附近
	if steps > 4*(r.cols+r.rows) {
		steps = 4 * (r.cols + r.rows)
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.set(int(math.Round(x0+dx*t)), int(math.Round(y0+dy*t)), glyph, style)
	}
}

// lineGlyph 根据屏幕方向选择字符
func lineGlyph(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return '+'
	}
	angle := math.Atan2(-dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return '-'
	case angle < 67.5:
		return '/'
	case angle < 112.5:
		return '|'
	default:
		return '\\'
	}
}

// drawStatus 最后一行：字幕与进度
func (r *Renderer) drawStatus() {
	y := r.rows - 1
	if y < 0 {
		return
	}
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	for x := 0; x < r.cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	line := ""
	if r.board != nil {
		c := r.board.Caption(r.board.Active())
		line = c.Title
		if c.Text != "" {
			line += ": " + c.Text
		}
	}
	r.putString(1, y, line, style.Bold(true))

	if r.state != nil {
		status := progressBar(r.state.Progress, 10)
		r.putString(r.cols-len([]rune(status))-1, y, status, style)
	}
}

// progressBar 文本进度条，如 [###-------] 30%
func progressBar(progress float64, width int) string {
	progress = utils.Clamp01(progress)
	filled := int(math.Round(progress * float64(width)))
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("#", filled), strings.Repeat("-", width-filled),
		int(math.Round(progress*100)))
}

func (r *Renderer) putString(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		if x >= 0 && x < r.cols && y >= 0 && y < r.rows {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

// set 写入场景区域的单个字符格，越界或落在状态行上时忽略
func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows-1 {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
