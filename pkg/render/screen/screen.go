// Package screen 基于 Ebitengine 的窗口渲染器
package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/journey"
	"github.com/gonewx/xmasdrive/pkg/render"
	"github.com/gonewx/xmasdrive/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// 字幕背板颜色
var captionBackdrop = color.RGBA{R: 0, G: 0, B: 0, A: 0x99}

// Renderer Ebitengine 渲染器
//
// Render 在逻辑 tick 中被调用，只做投影；
// Draw 在 ebiten.Game.Draw 中被调用，将最近一次的投影结果光栅化。
// 循环暂停时 Draw 持续绘制最后一帧。
type Renderer struct {
	projector *render.Projector
	frame     *render.Frame

	board *journey.CaptionBoard
	state *journey.State

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace
	labelFace *text.GoTextFace

	// 点精灵批量绘制用的纹理和顶点缓冲
	pixel    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16

	showHUD bool
}

// New 创建窗口渲染器
//
// 参数：
//   - board: 字幕板，Draw 时绘制当前可见字幕
//   - state: 共享进度状态，HUD 使用
//   - width, height: 初始逻辑尺寸
func New(board *journey.CaptionBoard, state *journey.State, width, height int) (*Renderer, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load caption font: %w", err)
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	r := &Renderer{
		projector: render.NewProjector(width, height),
		board:     board,
		state:     state,
		titleFace: &text.GoTextFace{Source: source, Size: config.CaptionFontSize},
		bodyFace:  &text.GoTextFace{Source: source, Size: config.CaptionFontSize * 0.65},
		labelFace: &text.GoTextFace{Source: source, Size: config.CaptionFontSize * 0.5},
		pixel:     white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
	log.Printf("[Render] Screen renderer ready (%dx%d)", width, height)
	return r, nil
}

// Render 实现 journey.Renderer
func (r *Renderer) Render(g *scene.Graph) {
	r.frame = r.projector.Project(g, r.frame)
}

// Resize 更新逻辑尺寸
func (r *Renderer) Resize(width, height int) {
	r.projector.Resize(width, height)
}

// Size 返回逻辑尺寸
func (r *Renderer) Size() (int, int) {
	return r.projector.Size()
}

// SetHUD 开关调试信息
func (r *Renderer) SetHUD(show bool) {
	r.showHUD = show
}

// HUD 返回调试信息是否可见
func (r *Renderer) HUD() bool {
	return r.showHUD
}

// Draw 绘制最近一帧、字幕和 HUD
func (r *Renderer) Draw(screen *ebiten.Image) {
	if r.frame == nil {
		screen.Fill(color.Black)
		return
	}
	screen.Fill(r.frame.Background)

	r.drawPoints(screen)
	for _, l := range r.frame.Lines {
		vector.StrokeLine(screen, l.X0, l.Y0, l.X1, l.Y1, l.Width, l.Color, true)
	}
	for _, l := range r.frame.Labels {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(l.X, l.Y)
		op.ColorScale.ScaleWithColor(l.Color)
		text.Draw(screen, l.Text, r.labelFace, op)
	}

	r.drawCaption(screen)
	if r.showHUD {
		r.drawHUD(screen)
	}
}

// drawPoints 将点精灵合批为四边形绘制
// uint16 索引每批最多 16384 个点
func (r *Renderer) drawPoints(screen *ebiten.Image) {
	const maxPointsPerBatch = (1 << 16) / 4

	flush := func() {
		if len(r.vertices) == 0 {
			return
		}
		screen.DrawTriangles(r.vertices, r.indices, r.pixel, &ebiten.DrawTrianglesOptions{})
		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for i, p := range r.frame.Points {
		if i > 0 && i%maxPointsPerBatch == 0 {
			flush()
		}
		half := p.Size / 2
		cr := float32(p.Color.R) / 0xff
		cg := float32(p.Color.G) / 0xff
		cb := float32(p.Color.B) / 0xff
		ca := float32(p.Color.A) / 0xff

		base := uint16(len(r.vertices))
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX: p.X + corner[0]*half, DstY: p.Y + corner[1]*half,
				SrcX: 1, SrcY: 1,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
		r.indices = append(r.indices,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	flush()
}

// drawCaption 在屏幕下方居中绘制当前字幕
func (r *Renderer) drawCaption(screen *ebiten.Image) {
	if r.board == nil {
		return
	}
	caption := r.board.Caption(r.board.Active())
	if caption.Title == "" && caption.Text == "" {
		return
	}

	width, height := r.projector.Size()
	maxWidth := float64(width) * config.CaptionMaxWidthRatio
	lines := wrapText(caption.Text, maxWidth, func(s string) float64 {
		return text.Advance(s, r.bodyFace)
	})

	titleHeight := r.titleFace.Size * 1.3
	lineHeight := r.bodyFace.Size * 1.4
	boxHeight := titleHeight + lineHeight*float64(len(lines)) + 24
	boxTop := float64(height) - config.CaptionMarginBottom - boxHeight
	boxLeft := (float64(width)-maxWidth)/2 - 16

	vector.DrawFilledRect(screen, float32(boxLeft), float32(boxTop),
		float32(maxWidth+32), float32(boxHeight), captionBackdrop, false)

	cx := float64(width) / 2
	y := boxTop + 12
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, caption.Title, r.titleFace, op)

	y += titleHeight
	for _, line := range lines {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(cx, y)
		op.ColorScale.ScaleWithColor(color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff})
		text.Draw(screen, line, r.bodyFace, op)
		y += lineHeight
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image) {
	var b strings.Builder
	if r.state != nil {
		fmt.Fprintf(&b, "progress: %.3f\ndriving: %v\n", r.state.Progress, r.state.Driving)
	}
	if r.board != nil {
		fmt.Fprintf(&b, "caption: %s\n", r.board.Active())
	}
	if r.frame != nil {
		fmt.Fprintf(&b, "points: %d lines: %d\n", len(r.frame.Points), len(r.frame.Lines))
	}
	fmt.Fprintf(&b, "TPS: %.1f FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, b.String(), 8, 8)
}

// wrapText 按单词折行，使每行宽度不超过 maxWidth
// 单个超长单词独占一行
func wrapText(s string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}
