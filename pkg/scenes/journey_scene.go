// Package scenes 宿主场景：把窗口输入翻译为滚动事件并驱动旅程
package scenes

import (
	"log"

	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/game"
	"github.com/gonewx/xmasdrive/pkg/journey"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 方向键按住后的自动重复（tick）
const (
	keyRepeatDelay    = 15
	keyRepeatInterval = 3
)

// SceneRenderer 场景使用的渲染器
type SceneRenderer interface {
	journey.Renderer
	Resize(width, height int)
	Draw(screen *ebiten.Image)
	SetHUD(show bool)
	HUD() bool
}

// inputState 一个 tick 内收集到的输入
type inputState struct {
	wheelY      float64 // 正值表示滚轮向上
	lines       int     // 方向键：正值向下
	pages       int     // PageUp/PageDown/Space：正值向下
	home, end   bool
	togglePause bool
	toggleHUD   bool
}

// scrollDelta 计算本 tick 的滚动量（文档像素）
func (in inputState) scrollDelta(sensitivity, clientHeight float64) float64 {
	delta := -in.wheelY * config.WheelStepPixels
	delta += float64(in.lines) * config.ArrowStepPixels
	delta += float64(in.pages) * clientHeight * config.PageStepRatio
	return delta * sensitivity
}

// JourneyScene 旅程场景
type JourneyScene struct {
	journey  *journey.Journey
	renderer SceneRenderer
	viewport *Viewport
	settings *game.SettingsManager
	progress *game.ProgressStore
}

// NewJourneyScene 创建旅程场景并启动帧循环
//
// 参数：
//   - j: 已组装的旅程，渲染器应已设置为 renderer
//   - renderer: 窗口渲染器
//   - settings: 设置管理器
//   - progress: 进度存储，非零进度会恢复滚动位置
//   - width, height: 初始逻辑尺寸
func NewJourneyScene(j *journey.Journey, renderer SceneRenderer, settings *game.SettingsManager, progress *game.ProgressStore, width, height int) *JourneyScene {
	s := &JourneyScene{
		journey:  j,
		renderer: renderer,
		viewport: NewViewport(j.Config.Pages, height),
		settings: settings,
		progress: progress,
	}

	j.Graph.Camera.SetAspect(width, height)
	renderer.Resize(width, height)
	renderer.SetHUD(settings.GetSettings().ShowHUD)

	if p := progress.Progress(); p > 0 {
		s.viewport.ScrollToFraction(p)
		log.Printf("[JourneyScene] Resuming at progress %.3f", p)
	}
	s.syncScroll()

	j.Loop.Start()
	log.Printf("[JourneyScene] Started: %g pages, viewport %dx%d", j.Config.Pages, width, height)
	return s
}

// Update 处理输入并推进一帧
func (s *JourneyScene) Update(deltaTime float64) {
	s.handleInput(readInput())
	s.journey.Loop.Step()
}

// Draw 绘制场景
func (s *JourneyScene) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen)
	if !s.journey.Loop.Running() {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		ebitenutil.DebugPrintAt(screen, "PAUSED (P to resume)", w/2-60, h/2)
	}
}

// Resize 实现 game.Resizable
func (s *JourneyScene) Resize(width, height int) {
	s.viewport.Resize(height)
	s.journey.Graph.Camera.SetAspect(width, height)
	s.renderer.Resize(width, height)
	s.syncScroll()
}

// SaveOnExit 实现 game.Saveable：保存进度和设置
func (s *JourneyScene) SaveOnExit() bool {
	ok := true
	s.progress.SetProgress(s.journey.State.Progress)
	if err := s.progress.Save(); err != nil {
		log.Printf("[JourneyScene] Warning: %v", err)
		ok = false
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[JourneyScene] Warning: %v", err)
		ok = false
	}
	return ok
}

// Viewport 返回视口
func (s *JourneyScene) Viewport() *Viewport {
	return s.viewport
}

// handleInput 应用一个 tick 的输入
func (s *JourneyScene) handleInput(in inputState) {
	if in.togglePause {
		s.togglePause()
	}
	if in.toggleHUD {
		show := !s.renderer.HUD()
		s.renderer.SetHUD(show)
		s.settings.SetShowHUD(show)
	}

	changed := false
	switch {
	case in.home:
		changed = s.viewport.ScrollTo(0)
	case in.end:
		changed = s.viewport.ScrollTo(s.viewport.MaxOffset())
	}
	delta := in.scrollDelta(s.settings.GetSettings().ScrollSensitivity, s.viewport.ClientHeight())
	if delta != 0 && s.viewport.ScrollBy(delta) {
		changed = true
	}
	if changed {
		s.syncScroll()
	}
}

func (s *JourneyScene) togglePause() {
	if s.journey.Loop.Running() {
		s.journey.Loop.Stop()
		log.Printf("[JourneyScene] Paused")
		return
	}
	s.journey.Loop.Start()
	log.Printf("[JourneyScene] Resumed")
}

// syncScroll 把视口偏移交给滚动映射器
func (s *JourneyScene) syncScroll() {
	s.journey.Scroll(s.viewport.Offset(), s.viewport.MaxOffset())
}

// readInput 从 Ebitengine 读取本 tick 的输入
func readInput() inputState {
	var in inputState
	_, in.wheelY = ebiten.Wheel()

	if keyRepeat(ebiten.KeyArrowDown) {
		in.lines++
	}
	if keyRepeat(ebiten.KeyArrowUp) {
		in.lines--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		in.pages++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			in.pages--
		} else {
			in.pages++
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		in.pages--
	}
	in.home = inpututil.IsKeyJustPressed(ebiten.KeyHome)
	in.end = inpututil.IsKeyJustPressed(ebiten.KeyEnd)
	in.togglePause = inpututil.IsKeyJustPressed(ebiten.KeyP)
	in.toggleHUD = inpututil.IsKeyJustPressed(ebiten.KeyH)
	return in
}

// keyRepeat 按下的第一帧触发，按住超过延迟后按间隔重复
func keyRepeat(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}
