// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载旅程配置、打开持久化存储、
// 构建场景图并组装 Journey，最后交给 JourneyScene 驱动。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/game"
	"github.com/gonewx/xmasdrive/pkg/journey"
	"github.com/gonewx/xmasdrive/pkg/render/screen"
	"github.com/gonewx/xmasdrive/pkg/scene"
	"github.com/gonewx/xmasdrive/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 旅程配置文件路径，为空则使用内嵌的 data/journey.yaml
	ConfigPath string
	// Fresh 忽略保存的进度，从头开始
	Fresh bool
	// HUD 启动时显示调试信息
	HUD bool
}

// App 应用包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	journeyCfg, err := config.LoadJourneyConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("旅程配置加载失败: %w", err)
	}
	log.Printf("[Config] Journey config loaded: %g pages, %d captions, %d characters",
		journeyCfg.Pages, len(journeyCfg.Captions), len(journeyCfg.Characters))

	storage := game.OpenStorage(game.AppName)
	settings := game.NewSettingsManager(storage)
	if cfg.HUD {
		settings.SetShowHUD(true)
	}
	progress := game.NewProgressStore(storage)
	if cfg.Fresh {
		if err := progress.Reset(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
		log.Printf("[App] Fresh start requested, saved progress cleared")
	}

	graph := scene.Build(journeyCfg)
	j := journey.New(journeyCfg, graph, nil)

	renderer, err := screen.New(j.Board, j.State, config.GameWindowWidth, config.GameWindowHeight)
	if err != nil {
		return nil, fmt.Errorf("渲染器初始化失败: %w", err)
	}
	j.Driver.SetRenderer(renderer)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewJourneyScene(j, renderer, settings, progress,
		config.GameWindowWidth, config.GameWindowHeight))

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑，每个 tick 调用一次
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / config.TicksPerSecond)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制缩放时的滤波和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑尺寸跟随窗口尺寸，相当于浏览器的 resize 事件
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = config.GameWindowWidth, config.GameWindowHeight
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// SaveOnExit 保存进度与设置
func (a *App) SaveOnExit() bool {
	return a.sceneManager.SaveOnExit()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
